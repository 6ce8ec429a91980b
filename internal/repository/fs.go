package repository

import "github.com/spf13/afero"

// FileSystemRepository is the filesystem seam used by the flavor sources.
// Production wiring passes an OS-backed afero.Fs; tests use a MemMapFs.

type FileSystemRepository interface {
	afero.Fs
}

package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/caverna/vbump/internal/domain"
)

// DefaultVersionFile is the file a plain project keeps its version in.
const DefaultVersionFile = "version"

// plainSource reads and writes a raw version string in a standalone file.
type plainSource struct {
	fs   afero.Fs
	path string
}

// NewPlainSource creates the version source for a plain project. An empty
// filename selects DefaultVersionFile.
func NewPlainSource(fsys afero.Fs, dir, filename string) VersionSource {
	if filename == "" {
		filename = DefaultVersionFile
	}
	return &plainSource{fs: fsys, path: filepath.Join(dir, filename)}
}

func (s *plainSource) Flavor() domain.Flavor { return domain.FlavorPlain }

func (s *plainSource) Path() string { return s.path }

func (s *plainSource) Extract(_ context.Context) (*domain.Version, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingVersionFile, s.path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return domain.ParseVersion(strings.TrimSpace(string(data)))
}

func (s *plainSource) Write(_ context.Context, v *domain.Version) error {
	if err := afero.WriteFile(s.fs, s.path, []byte(v.String()+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

package service

import (
	"context"

	"github.com/caverna/vbump/internal/domain"
)

// VersionSource is the per-flavor capability for reading and persisting a
// project's version. One implementation exists per flavor and is selected
// once by Detect; operations never branch on the flavor again.

type VersionSource interface {
	Flavor() domain.Flavor
	// Path returns the absolute path of the file carrying the version, or
	// empty when the flavor has no version file.
	Path() string
	// Extract reads the current version. A nil version with a nil error
	// means the flavor genuinely has no version yet (Ansible without tags).
	Extract(ctx context.Context) (*domain.Version, error)
	// Write persists the version. Flavors without a version file return
	// domain.ErrUnknownFlavorOperation.
	Write(ctx context.Context, v *domain.Version) error
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/caverna/vbump/internal/domain"
)

// nodeSource reads and writes the version field of a package.json manifest.
// Writes re-marshal the whole document, which normalizes it to sorted keys
// and 4-space indentation.
type nodeSource struct {
	fs   afero.Fs
	path string
}

// NewNodeSource creates the version source for a Node package.
func NewNodeSource(fsys afero.Fs, dir string) VersionSource {
	return &nodeSource{fs: fsys, path: filepath.Join(dir, nodeManifestName)}
}

func (s *nodeSource) Flavor() domain.Flavor { return domain.FlavorNode }

func (s *nodeSource) Path() string { return s.path }

func (s *nodeSource) Extract(_ context.Context) (*domain.Version, error) {
	manifest, err := s.readManifest()
	if err != nil {
		return nil, err
	}
	raw, ok := manifest["version"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no version field", domain.ErrInvalidVersion, s.path)
	}
	return domain.ParseVersion(raw)
}

func (s *nodeSource) Write(_ context.Context, v *domain.Version) error {
	manifest, err := s.readManifest()
	if err != nil {
		return err
	}
	manifest["version"] = v.String()
	data, err := json.MarshalIndent(manifest, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", s.path, err)
	}
	data = append(data, '\n')
	if err := afero.WriteFile(s.fs, s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

func (s *nodeSource) readManifest() (map[string]any, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingManifest, s.path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	var manifest map[string]any
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return manifest, nil
}

package usecase

import (
	"context"
	"fmt"

	"github.com/caverna/vbump/internal/domain"
	"github.com/caverna/vbump/internal/repository"
	"github.com/caverna/vbump/internal/service"
)

// ResolveSourceUseCase detects the project flavor and constructs the
// matching version source. Detection runs once; every later operation goes
// through the returned source.

type ResolveSourceUseCase struct {
	Fs repository.FileSystemRepository
}

// ResolveSourceInput carries the per-invocation parameters for source
// resolution. OpenTags is invoked only when the flavor turns out to be
// Ansible, so non-git directories work for file-backed flavors.
type ResolveSourceInput struct {
	Dir       string
	Filename  string
	TagPrefix string
	OpenTags  func() (service.TagLister, error)
}

// Execute resolves the version source for a directory.
func (uc *ResolveSourceUseCase) Execute(_ context.Context, in ResolveSourceInput) (service.VersionSource, error) {
	flavor, err := service.Detect(uc.Fs, in.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to detect project flavor: %w", err)
	}
	switch flavor {
	case domain.FlavorNode:
		return service.NewNodeSource(uc.Fs, in.Dir), nil
	case domain.FlavorAnsible:
		if in.OpenTags == nil {
			return nil, fmt.Errorf("%w: ansible roles need a repository", domain.ErrNoRepository)
		}
		tags, err := in.OpenTags()
		if err != nil {
			return nil, err
		}
		return service.NewAnsibleSource(tags, in.TagPrefix), nil
	case domain.FlavorErlang:
		path, ok := service.ErlangResourceFile(uc.Fs, in.Dir)
		if !ok {
			// Detection just saw exactly one match; losing it between the
			// two globs means the directory changed underneath us.
			return nil, fmt.Errorf("%w: resource file disappeared", domain.ErrMalformedResourceFile)
		}
		return service.NewErlangSource(uc.Fs, path), nil
	default:
		return service.NewPlainSource(uc.Fs, in.Dir, in.Filename), nil
	}
}

package orchestrator

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/caverna/vbump/internal/domain"
	"github.com/caverna/vbump/internal/repository"
	"github.com/caverna/vbump/internal/service"
	"github.com/caverna/vbump/internal/usecase"
)

// ShowConfig contains configuration for the show operation.
type ShowConfig struct {
	Dir      string
	Filename string
	// Build appends the git revision (and build number, when set) to the
	// build metadata for display. PreBuild does the same on the prerelease
	// sequence. The two are mutually exclusive.
	Build       bool
	PreBuild    bool
	BuildNumber string
}

// ShowOrchestrator prints the current version of a project. It never
// mutates state and touches git only for tag enumeration and the optional
// revision stamp.
type ShowOrchestrator struct {
	fs       repository.FileSystemRepository
	openRepo RepoOpener
	out      io.Writer
	log      *log.Logger
}

// NewShowOrchestrator creates a new show orchestrator.
func NewShowOrchestrator(
	fs repository.FileSystemRepository,
	openRepo RepoOpener,
	out io.Writer,
	lg *log.Logger,
) *ShowOrchestrator {
	return &ShowOrchestrator{fs: fs, openRepo: openRepo, out: out, log: lg}
}

// Execute resolves and prints the project version.
func (o *ShowOrchestrator) Execute(ctx context.Context, cfg ShowConfig) error {
	if cfg.Build && cfg.PreBuild {
		return fmt.Errorf("%w: --build and --pre-build are mutually exclusive", domain.ErrConflictingOptions)
	}
	// The repository is opened lazily: only Ansible detection or a
	// revision stamp needs it.
	var repo repository.GitRepository
	openOnce := func() (repository.GitRepository, error) {
		if repo != nil {
			return repo, nil
		}
		r, err := o.openRepo(cfg.Dir)
		if err != nil {
			return nil, err
		}
		repo = r
		return repo, nil
	}
	uc := &usecase.ResolveSourceUseCase{Fs: o.fs}
	src, err := uc.Execute(ctx, usecase.ResolveSourceInput{
		Dir:      cfg.Dir,
		Filename: cfg.Filename,
		OpenTags: func() (service.TagLister, error) {
			r, err := openOnce()
			if err != nil {
				return nil, err
			}
			return r, nil
		},
	})
	if err != nil {
		return err
	}
	o.log.Debug("detected flavor", "flavor", src.Flavor())
	v, err := src.Extract(ctx)
	if err != nil {
		return err
	}
	if v == nil {
		fmt.Fprintln(o.out, "no version")
		return nil
	}
	if cfg.Build || cfg.PreBuild {
		r, err := openOnce()
		if err != nil {
			return err
		}
		rev, err := r.HeadRevision(ctx)
		if err != nil {
			return err
		}
		if cfg.Build {
			v, err = v.AppendBuild(rev, cfg.BuildNumber)
		} else {
			v, err = v.AppendPrerelease(rev, cfg.BuildNumber)
		}
		if err != nil {
			return err
		}
	}
	fmt.Fprintln(o.out, v.String())
	return nil
}

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

// SetConfig contains configuration for the set workflow.
type SetConfig struct {
	Dir      string
	Version  string
	Filename string
	Git      GitOptions
}

// SetOrchestrator writes an explicitly supplied version and synchronizes
// the repository around the change.
type SetOrchestrator struct {
	fs       repository.FileSystemRepository
	openRepo RepoOpener
	out      io.Writer
	log      *log.Logger
}

// NewSetOrchestrator creates a new set orchestrator.
func NewSetOrchestrator(
	fs repository.FileSystemRepository,
	openRepo RepoOpener,
	out io.Writer,
	lg *log.Logger,
) *SetOrchestrator {
	return &SetOrchestrator{fs: fs, openRepo: openRepo, out: out, log: lg}
}

// Execute runs the complete set workflow: validate and sync the
// repository, parse the supplied version, persist it, then commit, push
// and tag.
func (o *SetOrchestrator) Execute(ctx context.Context, cfg SetConfig) error {
	lg := o.log.With("op", shortOpID())
	version, err := domain.ParseVersion(cfg.Version)
	if err != nil {
		return err
	}
	repo, err := o.openRepo(cfg.Dir)
	if err != nil {
		return err
	}
	wf := &gitWorkflow{repo: repo, opts: cfg.Git, log: lg}
	if err := wf.validateAndSync(ctx); err != nil {
		return err
	}
	uc := &usecase.ResolveSourceUseCase{Fs: o.fs}
	src, err := uc.Execute(ctx, usecase.ResolveSourceInput{
		Dir:       cfg.Dir,
		Filename:  cfg.Filename,
		TagPrefix: cfg.Git.TagPrefix,
		OpenTags:  func() (service.TagLister, error) { return repo, nil },
	})
	if err != nil {
		return err
	}
	if !cfg.Git.DryRun && src.Flavor() != domain.FlavorAnsible {
		if err := src.Write(ctx, version); err != nil {
			return err
		}
	}
	fmt.Fprintf(o.out, "Version set to %s\n", version)
	return wf.finalize(ctx, version, src)
}

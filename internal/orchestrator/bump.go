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

// BumpConfig contains configuration for the bump workflow.
type BumpConfig struct {
	Dir      string
	Kind     domain.BumpKind
	Filename string
	Git      GitOptions
}

// BumpOrchestrator advances a project's version by one semantic step and
// synchronizes the repository around the change.
type BumpOrchestrator struct {
	fs       repository.FileSystemRepository
	openRepo RepoOpener
	out      io.Writer
	log      *log.Logger
}

// NewBumpOrchestrator creates a new bump orchestrator.
func NewBumpOrchestrator(
	fs repository.FileSystemRepository,
	openRepo RepoOpener,
	out io.Writer,
	lg *log.Logger,
) *BumpOrchestrator {
	return &BumpOrchestrator{fs: fs, openRepo: openRepo, out: out, log: lg}
}

// Execute runs the complete bump workflow: validate and sync the
// repository, compute the next version, persist it, then commit, push and
// tag.
func (o *BumpOrchestrator) Execute(ctx context.Context, cfg BumpConfig) error {
	lg := o.log.With("op", shortOpID())
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
	current, err := src.Extract(ctx)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("no version found for %s project in %s", src.Flavor(), cfg.Dir)
	}
	next, err := current.Bump(cfg.Kind)
	if err != nil {
		return err
	}
	// Ansible roles have no version file; the tag created below is the
	// only mutation.
	if !cfg.Git.DryRun && src.Flavor() != domain.FlavorAnsible {
		if err := src.Write(ctx, next); err != nil {
			return err
		}
	}
	fmt.Fprintf(o.out, "Version updated from %s to %s\n", current, next)
	return wf.finalize(ctx, next, src)
}

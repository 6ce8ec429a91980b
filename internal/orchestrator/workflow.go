package orchestrator

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/caverna/vbump/internal/domain"
	"github.com/caverna/vbump/internal/repository"
	"github.com/caverna/vbump/internal/service"
)

// RepoOpener resolves the git repository containing a directory.
type RepoOpener func(dir string) (repository.GitRepository, error)

// GitOptions configures the synchronization workflow around a version
// mutation.
type GitOptions struct {
	Branch    string
	Remote    string
	TagPrefix string
	DryRun    bool
}

// gitWorkflow drives the validate/sync/commit/push/tag sequence for one
// mutating operation. Failures are terminal; partial effects are not
// rolled back.
type gitWorkflow struct {
	repo repository.GitRepository
	opts GitOptions
	log  *log.Logger
}

// validateAndSync covers the validate and sync stages. The tree must be
// clean and the configured branch and remote must exist before anything is
// touched. Dry-run mode stops after validation and reports the sync it
// would have done.
func (w *gitWorkflow) validateAndSync(ctx context.Context) error {
	clean, err := w.repo.IsClean(ctx)
	if err != nil {
		return err
	}
	if !clean {
		return fmt.Errorf("%w: %s", domain.ErrDirtyWorkingTree, w.repo.Root())
	}
	ok, err := w.repo.BranchExists(ctx, w.opts.Branch)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrBranchNotFound, w.opts.Branch)
	}
	ok, err = w.repo.RemoteExists(ctx, w.opts.Remote)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrRemoteNotFound, w.opts.Remote)
	}
	current, err := w.repo.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if w.opts.DryRun {
		if current != w.opts.Branch {
			w.log.Info("dry run: would checkout", "branch", w.opts.Branch)
		}
		w.log.Info("dry run: would pull", "remote", w.opts.Remote, "branch", w.opts.Branch)
		return nil
	}
	if current != w.opts.Branch {
		w.log.Debug("switching branch", "from", current, "to", w.opts.Branch)
		if err := w.repo.CheckoutBranch(ctx, w.opts.Branch); err != nil {
			return err
		}
	}
	w.log.Debug("pulling", "remote", w.opts.Remote, "branch", w.opts.Branch)
	return w.repo.Pull(ctx, w.opts.Remote, w.opts.Branch)
}

// finalize covers the commit, push and tag stages once the new version has
// been persisted. The commit is skipped for Ansible roles, which carry no
// version file; the tag is skipped for versions carrying build metadata,
// which are transient and not releasable. Dry-run mode only reports.
func (w *gitWorkflow) finalize(ctx context.Context, v *domain.Version, src service.VersionSource) error {
	tag := w.tagName(v, src.Flavor())
	message := fmt.Sprintf("Version bumped to %s", v)
	if w.opts.DryRun {
		if src.Flavor() != domain.FlavorAnsible {
			w.log.Info("dry run: would commit", "file", src.Path(), "message", message)
		}
		w.log.Info("dry run: would push", "remote", w.opts.Remote, "branch", w.opts.Branch)
		if v.Metadata() == "" {
			w.log.Info("dry run: would tag", "tag", tag)
		}
		return nil
	}
	if src.Flavor() != domain.FlavorAnsible {
		if err := w.repo.AddFile(ctx, src.Path()); err != nil {
			return err
		}
		if err := w.repo.Commit(ctx, message); err != nil {
			return err
		}
		w.log.Debug("committed", "message", message)
	}
	if err := w.repo.PushBranch(ctx, w.opts.Remote, w.opts.Branch); err != nil {
		return err
	}
	if v.Metadata() != "" {
		w.log.Debug("skipping tag for build-tagged version", "version", v.String())
		return nil
	}
	if err := w.repo.CreateTag(ctx, tag); err != nil {
		return err
	}
	w.log.Debug("tagged", "tag", tag)
	return w.repo.PushTag(ctx, w.opts.Remote, tag)
}

// tagName builds the tag for a version. Ansible roles force the v prefix
// when none is configured.
func (w *gitWorkflow) tagName(v *domain.Version, flavor domain.Flavor) string {
	prefix := w.opts.TagPrefix
	if prefix == "" && flavor == domain.FlavorAnsible {
		prefix = service.AnsibleTagPrefix
	}
	return prefix + v.String()
}

// shortOpID returns the identifier stamped on a mutating operation's log
// lines.
func shortOpID() string {
	return uuid.NewString()[:8]
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/caverna/vbump/internal/domain"
)

const headRevisionLen = 8

// gitRepository is the go-git backed implementation of GitRepository.

type gitRepository struct {
	repo *git.Repository
	root string
	// progress receives transfer output from remote operations so stdout
	// stays reserved for version output.
	progress io.Writer
}

// OpenGitRepository resolves the repository containing dir, searching parent
// directories the way the git CLI does. The progress writer receives remote
// transfer output; pass io.Discard to silence it.
func OpenGitRepository(dir string, progress io.Writer) (GitRepository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: searched from %s", domain.ErrNoRepository, dir)
	}
	w, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	if progress == nil {
		progress = io.Discard
	}
	return &gitRepository{
		repo:     repo,
		root:     w.Filesystem.Root(),
		progress: progress,
	}, nil
}

// Root returns the absolute path of the working tree.
func (r *gitRepository) Root() string {
	return r.root
}

// IsClean reports whether the working tree has no uncommitted changes.
func (r *gitRepository) IsClean(_ context.Context) (bool, error) {
	w, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to get worktree: %w", err)
	}
	status, err := w.Status()
	if err != nil {
		return false, fmt.Errorf("failed to get status: %w", err)
	}
	return status.IsClean(), nil
}

// BranchExists checks for a local branch with the given name.
func (r *gitRepository) BranchExists(_ context.Context, name string) (bool, error) {
	_, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true)
	if err == plumbing.ErrReferenceNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to resolve branch %s: %w", name, err)
	}
	return true, nil
}

// RemoteExists checks for a configured remote with the given name.
func (r *gitRepository) RemoteExists(_ context.Context, name string) (bool, error) {
	_, err := r.repo.Remote(name)
	if err == git.ErrRemoteNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to resolve remote %s: %w", name, err)
	}
	return true, nil
}

// CurrentBranch returns the name of the branch HEAD points at.
func (r *gitRepository) CurrentBranch(_ context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return head.Name().Short(), nil
}

// CheckoutBranch switches the working tree to the given branch.
func (r *gitRepository) CheckoutBranch(_ context.Context, name string) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	err = w.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
	})
	if err != nil {
		return fmt.Errorf("failed to checkout %s: %w", name, err)
	}
	return nil
}

// Pull fetches and integrates the branch from the remote. Transfer output
// goes to the progress writer, never to stdout.
func (r *gitRepository) Pull(ctx context.Context, remote, branch string) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	err = w.PullContext(ctx, &git.PullOptions{
		RemoteName:    remote,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		Progress:      r.progress,
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return fmt.Errorf("failed to pull %s from %s: %w", branch, remote, err)
	}
	return nil
}

// AddFile stages the file at the given absolute path.
func (r *gitRepository) AddFile(_ context.Context, path string) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		return fmt.Errorf("file %s is outside the working tree: %w", path, err)
	}
	if _, err := w.Add(filepath.ToSlash(rel)); err != nil {
		return fmt.Errorf("failed to stage %s: %w", rel, err)
	}
	return nil
}

// Commit creates a commit with the given message.
func (r *gitRepository) Commit(_ context.Context, message string) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	if _, err := w.Commit(message, &git.CommitOptions{}); err != nil {
		return fmt.Errorf("failed to create commit: %w", err)
	}
	return nil
}

// CreateTag creates a lightweight tag at HEAD.
func (r *gitRepository) CreateTag(_ context.Context, tag string) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to get HEAD: %w", err)
	}
	if _, err := r.repo.CreateTag(tag, head.Hash(), nil); err != nil {
		return fmt.Errorf("failed to create tag %s: %w", tag, err)
	}
	return nil
}

// PushBranch pushes the branch head to the remote.
func (r *gitRepository) PushBranch(ctx context.Context, remote, branch string) error {
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs: []config.RefSpec{
			config.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch)),
		},
		Progress: r.progress,
	})
	return classifyPushError(err)
}

// PushTag pushes a single tag ref to the remote.
func (r *gitRepository) PushTag(ctx context.Context, remote, tag string) error {
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs: []config.RefSpec{
			config.RefSpec(fmt.Sprintf("refs/tags/%s:refs/tags/%s", tag, tag)),
		},
		Progress: r.progress,
	})
	return classifyPushError(err)
}

// classifyPushError maps remote rejection outcomes onto ErrGitPushRejected
// and treats an already-up-to-date push as success.
func classifyPushError(err error) error {
	if err == nil || err == git.NoErrAlreadyUpToDate {
		return nil
	}
	if errors.Is(err, git.ErrForceNeeded) ||
		strings.Contains(err.Error(), "non-fast-forward") ||
		strings.Contains(err.Error(), "rejected") {
		return fmt.Errorf("%w: %v", domain.ErrGitPushRejected, err)
	}
	return fmt.Errorf("failed to push: %w", err)
}

// ListTags returns the short names of all tags in the repository.
func (r *gitRepository) ListTags(_ context.Context) ([]string, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	return tags, nil
}

// HeadRevision returns the abbreviated hex hash of HEAD.
func (r *gitRepository) HeadRevision(_ context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return head.Hash().String()[:headRevisionLen], nil
}

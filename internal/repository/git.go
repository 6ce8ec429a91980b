package repository

import "context"

// GitRepository defines the git operations the version workflow needs. One
// handle is opened per invocation and discarded at process exit.

type GitRepository interface {
	// Root returns the absolute path of the working tree.
	Root() string
	// IsClean reports whether the working tree has no uncommitted changes.
	IsClean(ctx context.Context) (bool, error)
	BranchExists(ctx context.Context, name string) (bool, error)
	RemoteExists(ctx context.Context, name string) (bool, error)
	CurrentBranch(ctx context.Context) (string, error)
	CheckoutBranch(ctx context.Context, name string) error
	Pull(ctx context.Context, remote, branch string) error
	// AddFile stages a single file given by absolute path.
	AddFile(ctx context.Context, path string) error
	Commit(ctx context.Context, message string) error
	CreateTag(ctx context.Context, tag string) error
	PushBranch(ctx context.Context, remote, branch string) error
	PushTag(ctx context.Context, remote, tag string) error
	ListTags(ctx context.Context) ([]string, error)
	// HeadRevision returns the abbreviated hex hash of HEAD.
	HeadRevision(ctx context.Context) (string, error)
}

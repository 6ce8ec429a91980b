package domain

import "errors"

// Sentinel errors for every terminal failure the tool can report. Callers
// wrap these with context via fmt.Errorf and %w; nothing is retried.
var (
	ErrInvalidVersion         = errors.New("invalid version")
	ErrMissingVersionFile     = errors.New("version file not found")
	ErrMissingManifest        = errors.New("package manifest not found")
	ErrMalformedResourceFile  = errors.New("no vsn entry in resource file")
	ErrNoRepository           = errors.New("no git repository found")
	ErrDirtyWorkingTree       = errors.New("working tree has uncommitted changes")
	ErrBranchNotFound         = errors.New("branch not found")
	ErrRemoteNotFound         = errors.New("remote not found")
	ErrGitPushRejected        = errors.New("push rejected by remote")
	ErrConflictingOptions     = errors.New("conflicting options")
	ErrUnsupportedPrerelease  = errors.New("unsupported prerelease shape")
	ErrUnknownFlavorOperation = errors.New("operation not supported for this project flavor")
)

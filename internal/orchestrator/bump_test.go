package orchestrator

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/caverna/vbump/internal/domain"
	"github.com/caverna/vbump/internal/repository"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func openerFor(repo repository.GitRepository) RepoOpener {
	return func(string) (repository.GitRepository, error) {
		return repo, nil
	}
}

// expectCleanRepo arms the validate/sync expectations for a repository that
// is already on the configured branch and up to date.
func expectCleanRepo(repo *mockGitRepository, branch, remote string) {
	repo.On("IsClean", mock.Anything).Return(true, nil)
	repo.On("BranchExists", mock.Anything, branch).Return(true, nil)
	repo.On("RemoteExists", mock.Anything, remote).Return(true, nil)
	repo.On("CurrentBranch", mock.Anything).Return(branch, nil)
	repo.On("Pull", mock.Anything, remote, branch).Return(nil)
}

func defaultGitOptions() GitOptions {
	return GitOptions{Branch: "master", Remote: "origin"}
}

func TestBumpOrchestrator_Execute(t *testing.T) {
	ctx := context.Background()
	t.Run("Should bump a plain project and run the full git sequence", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/proj/version", []byte("0.0.1\n"), 0o644))
		repo := new(mockGitRepository)
		expectCleanRepo(repo, "master", "origin")
		repo.On("AddFile", mock.Anything, "/proj/version").Return(nil)
		repo.On("Commit", mock.Anything, "Version bumped to 0.0.2").Return(nil)
		repo.On("PushBranch", mock.Anything, "origin", "master").Return(nil)
		repo.On("CreateTag", mock.Anything, "0.0.2").Return(nil)
		repo.On("PushTag", mock.Anything, "origin", "0.0.2").Return(nil)

		var out bytes.Buffer
		orch := NewBumpOrchestrator(fsys, openerFor(repo), &out, testLogger())
		err := orch.Execute(ctx, BumpConfig{
			Dir:  "/proj",
			Kind: domain.BumpPatch,
			Git:  defaultGitOptions(),
		})
		require.NoError(t, err)
		assert.Equal(t, "Version updated from 0.0.1 to 0.0.2\n", out.String())
		data, err := afero.ReadFile(fsys, "/proj/version")
		require.NoError(t, err)
		assert.Equal(t, "0.0.2\n", string(data))
		repo.AssertExpectations(t)
	})
	t.Run("Should start a prerelease with a pre bump", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/proj/version", []byte("0.0.1\n"), 0o644))
		repo := new(mockGitRepository)
		expectCleanRepo(repo, "master", "origin")
		repo.On("AddFile", mock.Anything, "/proj/version").Return(nil)
		repo.On("Commit", mock.Anything, "Version bumped to 0.0.1-1").Return(nil)
		repo.On("PushBranch", mock.Anything, "origin", "master").Return(nil)
		repo.On("CreateTag", mock.Anything, "0.0.1-1").Return(nil)
		repo.On("PushTag", mock.Anything, "origin", "0.0.1-1").Return(nil)

		var out bytes.Buffer
		orch := NewBumpOrchestrator(fsys, openerFor(repo), &out, testLogger())
		err := orch.Execute(ctx, BumpConfig{
			Dir:  "/proj",
			Kind: domain.BumpPre,
			Git:  defaultGitOptions(),
		})
		require.NoError(t, err)
		assert.Equal(t, "Version updated from 0.0.1 to 0.0.1-1\n", out.String())
		repo.AssertExpectations(t)
	})
	t.Run("Should checkout the configured branch when not current", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/proj/version", []byte("1.0.0\n"), 0o644))
		repo := new(mockGitRepository)
		repo.On("IsClean", mock.Anything).Return(true, nil)
		repo.On("BranchExists", mock.Anything, "main").Return(true, nil)
		repo.On("RemoteExists", mock.Anything, "origin").Return(true, nil)
		repo.On("CurrentBranch", mock.Anything).Return("feature/x", nil)
		repo.On("CheckoutBranch", mock.Anything, "main").Return(nil)
		repo.On("Pull", mock.Anything, "origin", "main").Return(nil)
		repo.On("AddFile", mock.Anything, "/proj/version").Return(nil)
		repo.On("Commit", mock.Anything, "Version bumped to 1.0.1").Return(nil)
		repo.On("PushBranch", mock.Anything, "origin", "main").Return(nil)
		repo.On("CreateTag", mock.Anything, "1.0.1").Return(nil)
		repo.On("PushTag", mock.Anything, "origin", "1.0.1").Return(nil)

		var out bytes.Buffer
		orch := NewBumpOrchestrator(fsys, openerFor(repo), &out, testLogger())
		err := orch.Execute(ctx, BumpConfig{
			Dir:  "/proj",
			Kind: domain.BumpPatch,
			Git:  GitOptions{Branch: "main", Remote: "origin"},
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
	t.Run("Should abort on a dirty working tree", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/proj/version", []byte("0.0.1\n"), 0o644))
		repo := new(mockGitRepository)
		repo.On("IsClean", mock.Anything).Return(false, nil)
		repo.On("Root").Return("/proj")

		var out bytes.Buffer
		orch := NewBumpOrchestrator(fsys, openerFor(repo), &out, testLogger())
		err := orch.Execute(ctx, BumpConfig{
			Dir:  "/proj",
			Kind: domain.BumpPatch,
			Git:  defaultGitOptions(),
		})
		assert.ErrorIs(t, err, domain.ErrDirtyWorkingTree)
		assert.Empty(t, out.String())
	})
	t.Run("Should abort when the branch does not exist", func(t *testing.T) {
		repo := new(mockGitRepository)
		repo.On("IsClean", mock.Anything).Return(true, nil)
		repo.On("BranchExists", mock.Anything, "release").Return(false, nil)

		var out bytes.Buffer
		orch := NewBumpOrchestrator(afero.NewMemMapFs(), openerFor(repo), &out, testLogger())
		err := orch.Execute(ctx, BumpConfig{
			Dir:  "/proj",
			Kind: domain.BumpPatch,
			Git:  GitOptions{Branch: "release", Remote: "origin"},
		})
		assert.ErrorIs(t, err, domain.ErrBranchNotFound)
	})
	t.Run("Should abort when the remote does not exist", func(t *testing.T) {
		repo := new(mockGitRepository)
		repo.On("IsClean", mock.Anything).Return(true, nil)
		repo.On("BranchExists", mock.Anything, "master").Return(true, nil)
		repo.On("RemoteExists", mock.Anything, "upstream").Return(false, nil)

		var out bytes.Buffer
		orch := NewBumpOrchestrator(afero.NewMemMapFs(), openerFor(repo), &out, testLogger())
		err := orch.Execute(ctx, BumpConfig{
			Dir:  "/proj",
			Kind: domain.BumpPatch,
			Git:  GitOptions{Branch: "master", Remote: "upstream"},
		})
		assert.ErrorIs(t, err, domain.ErrRemoteNotFound)
	})
	t.Run("Should surface a rejected push", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/proj/version", []byte("0.0.1\n"), 0o644))
		repo := new(mockGitRepository)
		expectCleanRepo(repo, "master", "origin")
		repo.On("AddFile", mock.Anything, "/proj/version").Return(nil)
		repo.On("Commit", mock.Anything, mock.Anything).Return(nil)
		repo.On("PushBranch", mock.Anything, "origin", "master").Return(domain.ErrGitPushRejected)

		var out bytes.Buffer
		orch := NewBumpOrchestrator(fsys, openerFor(repo), &out, testLogger())
		err := orch.Execute(ctx, BumpConfig{
			Dir:  "/proj",
			Kind: domain.BumpPatch,
			Git:  defaultGitOptions(),
		})
		assert.ErrorIs(t, err, domain.ErrGitPushRejected)
	})
	t.Run("Should fail a pre bump on an ambiguous prerelease", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/proj/version", []byte("0.0.1-rc.1\n"), 0o644))
		repo := new(mockGitRepository)
		expectCleanRepo(repo, "master", "origin")

		var out bytes.Buffer
		orch := NewBumpOrchestrator(fsys, openerFor(repo), &out, testLogger())
		err := orch.Execute(ctx, BumpConfig{
			Dir:  "/proj",
			Kind: domain.BumpPre,
			Git:  defaultGitOptions(),
		})
		assert.ErrorIs(t, err, domain.ErrUnsupportedPrerelease)
		assert.Empty(t, out.String())
	})
	t.Run("Should report without mutating in dry-run mode", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/proj/version", []byte("0.0.1\n"), 0o644))
		repo := new(mockGitRepository)
		repo.On("IsClean", mock.Anything).Return(true, nil)
		repo.On("BranchExists", mock.Anything, "master").Return(true, nil)
		repo.On("RemoteExists", mock.Anything, "origin").Return(true, nil)
		repo.On("CurrentBranch", mock.Anything).Return("master", nil)
		// No Pull, AddFile, Commit, Push or Tag expectations: any such call
		// fails the test.

		var out bytes.Buffer
		orch := NewBumpOrchestrator(fsys, openerFor(repo), &out, testLogger())
		opts := defaultGitOptions()
		opts.DryRun = true
		err := orch.Execute(ctx, BumpConfig{Dir: "/proj", Kind: domain.BumpPatch, Git: opts})
		require.NoError(t, err)
		assert.Equal(t, "Version updated from 0.0.1 to 0.0.2\n", out.String())
		data, err := afero.ReadFile(fsys, "/proj/version")
		require.NoError(t, err)
		assert.Equal(t, "0.0.1\n", string(data))
		repo.AssertExpectations(t)
	})
	t.Run("Should bump an ansible role through tags only", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/role/meta/main.yml", []byte("galaxy_info: {}\n"), 0o644))
		repo := new(mockGitRepository)
		expectCleanRepo(repo, "master", "origin")
		repo.On("ListTags", mock.Anything).Return([]string{"v0.1.0"}, nil)
		repo.On("PushBranch", mock.Anything, "origin", "master").Return(nil)
		repo.On("CreateTag", mock.Anything, "v0.2.0").Return(nil)
		repo.On("PushTag", mock.Anything, "origin", "v0.2.0").Return(nil)

		var out bytes.Buffer
		orch := NewBumpOrchestrator(fsys, openerFor(repo), &out, testLogger())
		err := orch.Execute(ctx, BumpConfig{
			Dir:  "/role",
			Kind: domain.BumpMinor,
			Git:  defaultGitOptions(),
		})
		require.NoError(t, err)
		assert.Equal(t, "Version updated from 0.1.0 to 0.2.0\n", out.String())
		repo.AssertExpectations(t)
	})
	t.Run("Should fail to bump an ansible role without tags", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/role/meta/main.yml", []byte("galaxy_info: {}\n"), 0o644))
		repo := new(mockGitRepository)
		expectCleanRepo(repo, "master", "origin")
		repo.On("ListTags", mock.Anything).Return([]string{}, nil)

		var out bytes.Buffer
		orch := NewBumpOrchestrator(fsys, openerFor(repo), &out, testLogger())
		err := orch.Execute(ctx, BumpConfig{
			Dir:  "/role",
			Kind: domain.BumpPatch,
			Git:  defaultGitOptions(),
		})
		assert.Error(t, err)
		assert.Empty(t, out.String())
	})
}

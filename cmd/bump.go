package cmd

import (
	"github.com/spf13/cobra"

	"github.com/caverna/vbump/internal/domain"
	"github.com/caverna/vbump/internal/orchestrator"
)

func newBumpCmd() *cobra.Command {
	var (
		bumpFilename  string
		bumpTagPrefix string
		bumpBranch    string
		bumpRemote    string
		bumpDryRun    bool
	)
	cmd := &cobra.Command{
		Use:   "bump <directory> <patch|minor|major|pre>",
		Short: "Bump the version of a project",
		Long: `Bump the version of a project by one semantic-versioning step.

The working tree must be clean, on the configured branch and up to date
with the configured remote. The new version is written to the project,
committed, pushed and tagged. With --dry-run, preconditions are checked
and the would-be actions reported, but nothing is changed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseBumpKind(args[1])
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			c, err := newContainer()
			if err != nil {
				return err
			}
			cfg := orchestrator.BumpConfig{
				Dir:      args[0],
				Kind:     kind,
				Filename: resolve(bumpFilename, c.cfg.Filename),
				Git: orchestrator.GitOptions{
					Branch:    resolve(bumpBranch, c.cfg.Branch),
					Remote:    resolve(bumpRemote, c.cfg.Remote),
					TagPrefix: resolve(bumpTagPrefix, c.cfg.TagPrefix),
					DryRun:    bumpDryRun,
				},
			}
			return c.bumpOrch.Execute(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&bumpFilename, "filename", "", "Version file name for plain projects")
	cmd.Flags().StringVar(&bumpTagPrefix, "tag-prefix", "", "Prefix for the created git tag")
	cmd.Flags().StringVar(&bumpBranch, "branch", "", "Branch to operate on")
	cmd.Flags().StringVar(&bumpRemote, "remote", "", "Remote to pull from and push to")
	cmd.Flags().BoolVar(&bumpDryRun, "dry-run", false, "Validate and report without making changes")
	return cmd
}

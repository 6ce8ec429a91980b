package cmd

import (
	"github.com/spf13/cobra"

	"github.com/caverna/vbump/internal/orchestrator"
)

func newSetCmd() *cobra.Command {
	var (
		setFilename  string
		setTagPrefix string
		setBranch    string
		setRemote    string
		setDryRun    bool
	)
	cmd := &cobra.Command{
		Use:   "set <directory> <version>",
		Short: "Set the version of a project explicitly",
		Long: `Set the version of a project to the given value.

The version must be a valid semantic version. The same git preconditions
and commit/push/tag sequence as bump apply.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			c, err := newContainer()
			if err != nil {
				return err
			}
			cfg := orchestrator.SetConfig{
				Dir:      args[0],
				Version:  args[1],
				Filename: resolve(setFilename, c.cfg.Filename),
				Git: orchestrator.GitOptions{
					Branch:    resolve(setBranch, c.cfg.Branch),
					Remote:    resolve(setRemote, c.cfg.Remote),
					TagPrefix: resolve(setTagPrefix, c.cfg.TagPrefix),
					DryRun:    setDryRun,
				},
			}
			return c.setOrch.Execute(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&setFilename, "filename", "", "Version file name for plain projects")
	cmd.Flags().StringVar(&setTagPrefix, "tag-prefix", "", "Prefix for the created git tag")
	cmd.Flags().StringVar(&setBranch, "branch", "", "Branch to operate on")
	cmd.Flags().StringVar(&setRemote, "remote", "", "Remote to pull from and push to")
	cmd.Flags().BoolVar(&setDryRun, "dry-run", false, "Validate and report without making changes")
	return cmd
}

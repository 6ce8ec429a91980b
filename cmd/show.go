package cmd

import (
	"github.com/spf13/cobra"

	"github.com/caverna/vbump/internal/orchestrator"
)

func newShowCmd() *cobra.Command {
	var (
		showBuild    bool
		showPreBuild bool
		showFilename string
	)
	cmd := &cobra.Command{
		Use:   "show <directory>",
		Short: "Print the current version of a project",
		Long: `Print the current version of a project to standard output.

With --build or --pre-build, the git revision of HEAD (and BUILD_NUMBER,
when set in the environment) is appended to the build metadata or the
prerelease sequence for display. Nothing is persisted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			c, err := newContainer()
			if err != nil {
				return err
			}
			cfg := orchestrator.ShowConfig{
				Dir:         args[0],
				Filename:    resolve(showFilename, c.cfg.Filename),
				Build:       showBuild,
				PreBuild:    showPreBuild,
				BuildNumber: c.cfg.BuildNumber,
			}
			return c.showOrch.Execute(cmd.Context(), cfg)
		},
	}
	cmd.Flags().BoolVar(&showBuild, "build", false, "Append the git revision as build metadata")
	cmd.Flags().BoolVar(&showPreBuild, "pre-build", false, "Append the git revision to the prerelease sequence")
	cmd.Flags().StringVar(&showFilename, "filename", "", "Version file name for plain projects")
	return cmd
}

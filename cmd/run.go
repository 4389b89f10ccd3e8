package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/simondoesstuff/python-case/internal/domain"
	m "github.com/simondoesstuff/python-case/internal/model"
)

var (
	runParallelFlag    int
	runDryRunFlag      bool
	runStdoutFlag      bool
	runRenameFilesFlag bool
)

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Rewrite Python sources to naming conventions",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui := buildUI(cmd, runStdoutFlag)
			workflow := buildWorkflow(ui)

			_, err := workflow.Run(cmd.Context(), domain.RunArgs{
				Paths:           parsePaths(args),
				DryRun:          runDryRunFlag,
				Stdout:          runStdoutFlag,
				RenameFiles:     runRenameFilesFlag,
				Parallel:        viper.GetInt(runParallelConfigKey),
				Exclude:         viper.GetStringSlice(excludeConfigKey),
				ExternalModules: viper.GetStringSlice(resolverExternalsKey),
				SitePackages:    viper.GetStringSlice(resolverSitePackagesKey),
				ReportsDir:      m.Path(viper.GetString(outputFlagName)),
			})

			return err
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&runParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of parallel workers for rewriting")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)

	cmd.Flags().BoolVarP(&runDryRunFlag, dryRunFlagName, "n", false, "show unified diffs without writing any file")
	cmd.Flags().BoolVar(&runStdoutFlag, stdoutFlagName, false, "print rewritten source to stdout (single file only)")
	cmd.Flags().BoolVarP(&runRenameFilesFlag, renameFilesFlagName, "r", false, "also rename non-compliant files and directories before rewriting")
}

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	m "github.com/simondoesstuff/python-case/internal/model"
)

var pathsApplyFlag bool

// pathsCmd represents the paths command.
var pathsCmd = newPathsCmd()

func newPathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths [root]",
		Short: "Plan or apply snake_case file and directory renames",
		Long:  pathsLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := m.Path(".")
			if len(args) == 1 {
				root = m.Path(args[0])
			}

			ui := buildUI(cmd, false)
			workflow := buildWorkflow(ui)

			plan, err := workflow.PlanPaths(root, viper.GetStringSlice(excludeConfigKey))
			if err != nil {
				return err
			}

			reports := workflow.ExecutePaths(plan, pathsApplyFlag)
			ui.DisplayRenamePlan(reports, pathsApplyFlag)

			return nil
		},
	}

	cmd.Flags().BoolVar(&pathsApplyFlag, applyFlagName, false, "perform the planned renames instead of only printing them")

	return cmd
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}

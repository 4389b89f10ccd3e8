package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/simondoesstuff/python-case/internal/adapter"
	m "github.com/simondoesstuff/python-case/internal/model"
)

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show the most recent run report",
		Long:  "Show the most recent run report from the reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := adapter.NewReportStore()

			report, err := store.LoadLatest(m.Path(viper.GetString(outputFlagName)))
			if err != nil {
				return err
			}

			buildUI(cmd, false).DisplayReport(report)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

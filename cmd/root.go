// Package cmd provides the root command and CLI setup for python-case.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/simondoesstuff/python-case/internal/adapter"
	"github.com/simondoesstuff/python-case/internal/controller"
	"github.com/simondoesstuff/python-case/internal/domain"
	m "github.com/simondoesstuff/python-case/internal/model"
)

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

// verboseFlag raises log level to debug and lists unchanged files too.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)
}

const rootLongDescription = `python-case rewrites Python sources to PEP 8 naming conventions:
variables and functions to snake_case, classes to PascalCase.

Names imported from third-party or standard-library modules are left
untouched, as are their attributes. Dunder names are never altered.`

const runLongDescription = `Rewrite the Python files under the given paths (default: current
directory) in place. A path may also be a single .py file.

Per-file parse or write failures are reported and skipped; the rest of
the batch still runs.`

const pathsLongDescription = `Plan snake_case renames for non-compliant .py files and package
directories under the given root (default: current directory).

Without --apply the plan is only printed. Renames execute deepest path
first so directory moves never invalidate pending entries.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "python-case",
		Short: "Python naming convention rewriter",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for run reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude paths matching gitignore-style pattern (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "verbose output (debug logging, list unchanged files)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// buildUI picks the interactive UI on a terminal and the plain one otherwise.
// Raw source output always goes through the plain UI so it can be piped.
func buildUI(cmd *cobra.Command, rawOutput bool) controller.UI {
	if !rawOutput && controller.IsTTY(os.Stdout) {
		return controller.NewTUI(cmd.OutOrStdout())
	}

	return controller.NewSimpleUI(cmd, verboseFlag)
}

// buildWorkflow assembles the workflow with its filesystem, parser, resolver,
// and reporting collaborators.
func buildWorkflow(ui controller.UI) domain.Workflow {
	return domain.NewWorkflow(domain.WorkflowDeps{
		Parser:   adapter.NewTreeSitterPythonAdapter(),
		FS:       adapter.NewLocalSourceFSAdapter(),
		Store:    adapter.NewReportStore(),
		Reporter: ui,
		Ignore: func(root m.Path, extra ...string) adapter.IgnoreMatcher {
			return adapter.NewGitignoreMatcher(root, extra...)
		},
		Resolver: func(root m.Path, externals, sitePackages []string) domain.ModuleResolver {
			return adapter.NewLocalModuleResolver(root,
				adapter.WithExternalModules(externals),
				adapter.WithSitePackages(sitePackages),
			)
		},
	})
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/minij/project"
)

const version = "0.1.0"

var log = commonlog.GetLogger("minij")

type globalFlags struct {
	verbose int
	logFile string
	config  project.Config
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{config: project.DefaultConfig()}

	rootCmd := &cobra.Command{
		Use:           "minij",
		Short:         "LL(1) syntax checker for a minimal Java-like teaching language",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			proj, err := project.Load()
			if err != nil {
				return fmt.Errorf("load project configuration: %w", err)
			}
			flags.config = proj.Config

			verbosity := flags.verbose
			if !cmd.Flags().Changed("verbose") {
				verbosity = proj.Config.Verbosity
			}
			var path *string
			if flags.logFile != "" {
				path = &flags.logFile
			}
			commonlog.Configure(verbosity, path)
			if proj.ConfigFile != "" {
				log.Debugf("using configuration %s", proj.ConfigFile)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().CountVarP(&flags.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&flags.logFile, "log", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newParseCmd(flags))
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newLSPCmd())

	return rootCmd
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

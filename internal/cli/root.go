package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/lcmvec/internal/config"
	"github.com/example/lcmvec/internal/logging"
	"github.com/example/lcmvec/internal/version"
)

// rootState is shared by the root command and its subcommands.
type rootState struct {
	configPath string
	manifest   string
	verbose    bool
	logger     *zap.Logger
}

// RootCmd returns the lcmvec command tree. The root command itself generates
// the artifacts of one vector; history, init and version are subcommands.
func RootCmd() *cobra.Command {
	state := &rootState{logger: zap.NewNop()}

	cmd := generateCmd(state)
	cmd.Version = version.String()
	cmd.SilenceErrors = true

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger, err := logging.New(state.verbose)
		if err != nil {
			return err
		}
		state.logger = logger
		return nil
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if state.logger != nil {
			_ = state.logger.Sync()
		}
	}

	cmd.PersistentFlags().StringVar(&state.configPath, "config", "", "project configuration file (default ./"+config.FileName+")")
	cmd.PersistentFlags().StringVar(&state.manifest, "manifest", "", "SQLite manifest recording each generation run")
	cmd.PersistentFlags().BoolVarP(&state.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(historyCmd(state))
	cmd.AddCommand(InitCmd())
	cmd.AddCommand(VersionCmd())

	return cmd
}

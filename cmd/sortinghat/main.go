// Command sortinghat partitions a class roster into balanced teams under
// a configurable bundle of hard and soft constraints, solved as a mixed
// integer program.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tk42/sortinghat/internal/config"
	"github.com/tk42/sortinghat/internal/logging"
)

// app holds the dependencies every subcommand's RunE closes over,
// mirroring the shared AppContext of jakec-github-ilford-drop-in's CLI.
type app struct {
	cliCfg config.CLIConfig
	logger *zap.Logger
}

var (
	cliConfigPath string
	a             app
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sortinghat",
		Short: "Partition a class roster into balanced teams",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&cliConfigPath, "config", "sortinghat.yaml", "path to the CLI config file")

	rootCmd.AddCommand(solveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initApp() error {
	var err error
	a.cliCfg, err = config.LoadCLIConfig(cliConfigPath)
	if err != nil {
		return err
	}

	a.logger, err = logging.Init(a.cliCfg.LogDir)
	if err != nil {
		return err
	}

	return nil
}

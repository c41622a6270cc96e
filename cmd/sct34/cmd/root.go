// Package cmd provides the CLI commands for sct34.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bibbank/sct34/internal/infrastructure/config"
	"github.com/bibbank/sct34/pkg/observability"
)

var (
	envFile string
	debug   bool

	cfg    config.Config
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sct34",
	Short: "Generate SEPA credit transfer files in the cuaderno 34.14 format",
	Long: `sct34 turns a payment order (ordering party plus beneficiaries) into the
fixed-width ISO-8859-1 file Spanish banks accept for SEPA credit transfers.

Example:
  sct34 generate --in nomina.yaml --out nomina.txt
  sct34 generate --in nomina.json --out - > nomina.txt
  sct34 inspect --in nomina.txt`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(envFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded

		logCfg := cfg.Logging()
		if debug {
			logCfg.Level = "debug"
		}
		logCfg.Output = cmd.ErrOrStderr()
		logger = observability.InitLogger(logCfg)
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). Errors are logged before being returned.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load (default is .env when present)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(inspectCmd)
}

package main

import (
	"fmt"
	"os"

	"github.com/QTest-hq/classscan/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var version = "dev"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	logLevel   string
	projectDir string
}

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "classscan",
		Short: "classscan - PHP class structure scanner",
		Long: `classscan reads a PHP file, or a dumped token stream, and reports the
classes and interfaces it declares along with their constants, properties
and methods.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(flags)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides CLASSSCAN_LOG_LEVEL")
	cmd.PersistentFlags().StringVar(&flags.projectDir, "project", ".", "Directory holding .classscan.yaml")

	// Add subcommands
	cmd.AddCommand(scanCmd(flags))
	cmd.AddCommand(membersCmd(flags))
	cmd.AddCommand(methodCmd(flags))
	cmd.AddCommand(tokensCmd())
	cmd.AddCommand(initCmd(flags))

	return cmd
}

func setupLogging(flags *globalFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogJSON {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return nil
}

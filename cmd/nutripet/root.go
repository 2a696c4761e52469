package nutripet

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/saadjs/nutripet/internal/config"
	"github.com/saadjs/nutripet/internal/logging"
	"github.com/spf13/cobra"
)

var (
	dbPath    string
	logLevel  string
	logFormat string

	// cfg is loaded once per invocation by the root PersistentPreRunE.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "nutripet",
	Short: "nutripet keeps a virtual pet fed by the meals you log",
	Long: "nutripet is a local-first nutrition tracker. Log meals, and a pet reflects\n" +
		"how close you are to today's calorie and macro goals.",
	SilenceUsage:      true,
	PersistentPreRunE: setupRuntime,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
}

func setupRuntime(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gnoswap-labs/fitch/check"
	"github.com/gnoswap-labs/fitch/internal"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool
	noColor bool
	timeout time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "fitch [script]",
	Short:            "fitch - a natural deduction proof assistant for propositional logic",
	TraverseChildren: true, // Prioritize subcommands
	SilenceUsage:     true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose)
		if err != nil {
			return fmt.Errorf("error creating logger: %w", err)
		}
		logger = logger.With(zap.String("session", uuid.NewString()))
		if noColor {
			color.NoColor = true
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	// Format: fitch [script] => starts an interactive session
	RunE: func(cmd *cobra.Command, args []string) error {
		return replCmd.RunE(replCmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", check.DefaultConfigFile, "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(latexCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(rulesCmd)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return config.Build()
}

// loadEngine builds the engine from the configuration file and applies
// the display settings.
func loadEngine() (*internal.Engine, check.Config, error) {
	engine, config, err := check.New(cfgFile, logger)
	if err != nil {
		return nil, config, err
	}
	if !config.Display.Color {
		color.NoColor = true
	}
	logger.Debug("Configuration loaded", zap.String("config", cfgFile), zap.String("name", config.Name))
	return engine, config, nil
}

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/gnoswap-labs/fitch/check"
	"github.com/gnoswap-labs/fitch/internal"
	tt "github.com/gnoswap-labs/fitch/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var forceInit bool

// initCmd: fitch init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfigurationFile(cfgFile, forceInit); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			os.Exit(1)
		}
		fmt.Printf("Configuration file created: %s\n", cfgFile)
	},
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing configuration file")
}

func initConfigurationFile(configurationPath string, force bool) error {
	if configurationPath == "" {
		configurationPath = check.DefaultConfigFile
	}
	if !force {
		if _, err := os.Stat(configurationPath); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite it", configurationPath)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	// spell out every diagnostic so the file documents what can be tuned
	config := check.Default()
	for _, name := range internal.RuleNames() {
		severity, _ := internal.DefaultSeverity(name)
		config.Rules[name] = tt.ConfigRule{Severity: severity}
	}
	return check.WriteConfig(configurationPath, config)
}

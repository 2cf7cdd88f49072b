package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/smasonuk/geomap3d/internal/config"
)

var (
	configPath string
	logLevel   string
	cfg        *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:               "geomap3d",
	Short:             "Interactive 3D province map",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.AddCommand(
		runCmd,
		inspectCmd,
		versionCmd,
	)
	// This flags are visible for all child commands
	rFlag := rootCmd.PersistentFlags()
	rFlag.StringVar(&configPath, "config", "config.yml", "filepath to config.yml")
	rFlag.StringVar(&logLevel, "log-level", "", "log level, overrides log.level from the config")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("Executing root command")
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, args []string) error {
	config.LoadEnv(".env")

	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.Log.Level = logLevel
		if err := c.Validate(); err != nil {
			return err
		}
	}
	log.SetLevel(c.LogLevel())
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	cfg = c
	return nil
}

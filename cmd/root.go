package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spaghettifunk/wireframe/engine/core"
)

const (
	appName = "wireframe"
	version = "v0.1.0"

	envPrefix = "WIREFRAME"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Software wireframe renderer",
	Long: `Wireframe projects triangle meshes through a perspective camera and draws
their edges as lines, either in a window or headless into PNG frames.

Settings come from flags, WIREFRAME_* environment variables and an optional
config file, in that order of precedence.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		if err := core.SetLogLevel(viper.GetString("log-level")); err != nil {
			return fmt.Errorf("invalid log level %q: %w", viper.GetString("log-level"), err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (toml, yaml or json)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(inspectCmd)
}

func initConfig() error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile == "" {
		return nil
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		return err
	}
	core.LogDebug("using config file: %s", viper.ConfigFileUsed())
	return nil
}

// Execute runs the command line and exits with a non-zero status on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		core.LogError("%s", err)
		os.Exit(1)
	}
}

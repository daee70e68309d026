package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/panclip/internal/clip"
	"go.klb.dev/panclip/internal/logging"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and PANCLIP_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → PANCLIP_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("panclip")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/panclip/")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "panclip"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("PANCLIP")
	v.SetEnvKeyReplacer(envKeys)
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("verbose", "v", false, "log adapter activity at debug level")
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error (default: warn, debug with --verbose)")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// addClipboardFlags adds the flags every clipboard command shares.
func addClipboardFlags(cmd *cobra.Command) {
	cmd.Flags().String("helper", "", "Linux selection helper binary (default: xclip on PATH)")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)
}

// openClipboard configures logging from v and returns the platform adapter.
func openClipboard(v *viper.Viper) clip.Adapter {
	logging.Setup(v.GetString("log-format"), v.GetString("log-level"), v.GetBool("verbose"))
	a := clip.New(clip.Options{Helper: v.GetString("helper")})
	slog.Debug("clipboard adapter", "name", a.Name())
	return a
}

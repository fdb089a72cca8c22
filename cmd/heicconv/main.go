// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the heicconv CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/heicconv/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Config keys shared by flags, the config file and HEICCONV_* variables.
// They follow the yaml layout of types.Config.
const (
	keyJPEGQuality    = "converter.jpeg_quality"
	keyHistoryEnabled = "history.enabled"
	keyHistoryDir     = "history.dir"
)

// rootCmd is the base command for the heicconv CLI.
var rootCmd = &cobra.Command{
	Use:   "heicconv",
	Short: "Convert HEIC images to JPG or PNG",
	Long: `heicconv converts a single HEIC image into a JPG or PNG file written next
to the original, with the same base name. Transparent images written as JPG
are flattened onto a white background; PNG output keeps transparency.

Conversions can optionally be logged to a local history database.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./heicconv.yaml or ~/.config/heicconv/heicconv.yaml)")

	viper.SetDefault(keyJPEGQuality, types.DefaultJPEGQuality)
	viper.SetDefault(keyHistoryEnabled, false)
	viper.SetDefault(keyHistoryDir, defaultHistoryDir())
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("heicconv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "heicconv"))
		}
	}

	viper.SetEnvPrefix("HEICCONV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// defaultHistoryDir returns ~/.config/heicconv, or .heicconv when the home
// directory cannot be determined.
func defaultHistoryDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".heicconv"
	}
	return filepath.Join(home, ".config", "heicconv")
}

// loadConfig assembles the effective configuration from viper.
func loadConfig() types.Config {
	return types.Config{
		Converter: types.ConverterConfig{
			JPEGQuality: viper.GetInt(keyJPEGQuality),
		},
		History: types.HistoryConfig{
			Enabled: viper.GetBool(keyHistoryEnabled),
			Dir:     viper.GetString(keyHistoryDir),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		report(os.Stderr, err)
		os.Exit(1)
	}
}

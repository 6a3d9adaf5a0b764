// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the clean-bible CLI. It downloads
// Bible texts from the Sefaria API, strips markup, and writes clean text
// files.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/clean-bible/internal/logging"
	"github.com/pdiddy/clean-bible/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg and logger are assembled once in PersistentPreRunE.
var (
	cfg    types.Config
	logger *slog.Logger
)

// rootCmd is the base command for the clean-bible CLI.
var rootCmd = &cobra.Command{
	Use:   "clean-bible",
	Short: "Download clean Bible texts from Sefaria",
	Long: `clean-bible fetches Bible texts from the public Sefaria API, removes HTML
markup from every verse, and writes plain text files: Hebrew only, English
only, or both side by side.

Use "books" to list the book names clean-bible knows, "info" to preview a
book, and "download" to fetch a chapter or a whole book.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		l, err := logging.New(cmd.ErrOrStderr(), c.LogLevel, isTerminal(os.Stderr))
		if err != nil {
			return err
		}
		cfg, logger = c, l
		logger.Debug("configuration loaded",
			"base_url", cfg.HTTP.BaseURL,
			"timeout", cfg.HTTP.Timeout,
			"chapter_delay", cfg.Download.ChapterDelay,
			"output_dir", cfg.Download.OutputDir)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./clean-bible.yaml or ~/.config/clean-bible/clean-bible.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default info)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	rootCmd.PersistentFlags().String("base-url", "", "Sefaria API base URL")

	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))

	setDefaults(viper.GetViper())
}

// setDefaults registers the built-in value of every configuration key.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault("base_url", d.HTTP.BaseURL)
	v.SetDefault("user_agent", d.HTTP.UserAgent)
	v.SetDefault("timeout", d.HTTP.Timeout)
	v.SetDefault("requests_per_second", d.HTTP.RequestsPerSecond)
	v.SetDefault("chapter_delay", d.Download.ChapterDelay)
	v.SetDefault("output_dir", d.Download.OutputDir)
	v.SetDefault("manifest", d.Download.WriteManifest)
	v.SetDefault("log_level", d.LogLevel)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("clean-bible")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "clean-bible"))
		}
	}

	viper.SetEnvPrefix("CLEAN_BIBLE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the immutable configuration from the global viper
// instance.
func loadConfig() (types.Config, error) {
	return configFrom(viper.GetViper())
}

// configFrom reads every key from v and validates the result.
func configFrom(v *viper.Viper) (types.Config, error) {
	c := types.Config{
		HTTP: types.HTTPConfig{
			BaseURL:           v.GetString("base_url"),
			Timeout:           v.GetDuration("timeout"),
			UserAgent:         v.GetString("user_agent"),
			RequestsPerSecond: v.GetFloat64("requests_per_second"),
		},
		Download: types.DownloadConfig{
			ChapterDelay:  v.GetDuration("chapter_delay"),
			OutputDir:     v.GetString("output_dir"),
			WriteManifest: v.GetBool("manifest"),
		},
		LogLevel:    v.GetString("log_level"),
		BookAliases: v.GetStringMapString("books"),
	}
	if err := c.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("configuration: %w", err)
	}
	return c, nil
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

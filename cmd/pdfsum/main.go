// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdfsum CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pdfsum/internal/logging"
	"github.com/pdiddy/pdfsum/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// logger is the diagnostic logger, built once flags and config are parsed.
var logger = zap.NewNop()

// errReported marks failures whose message was already printed.
var errReported = errors.New("already reported")

// rootCmd is the base command for the pdfsum CLI.
var rootCmd = &cobra.Command{
	Use:   "pdfsum",
	Short: "Summarize PDF documents",
	Long: `pdfsum extracts the text of PDF documents and summarizes it.

The run command selects the most representative sentences (LexRank) and
records the summary in summaries.json, keyed by file name. The abstract
command asks a pretrained model (BART through the Hugging Face Inference
API, or a local Ollama model) for a paraphrased summary and prints it.`,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New(os.Stderr, viper.GetBool("log.verbose"))

		s, err := secrets.Load(".secrets/", logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdfsum.yaml or ~/.config/pdfsum/pdfsum.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().String("store", defaultStorePath(), "JSON file the summaries are recorded in")
	rootCmd.PersistentFlags().String("index", defaultIndexPath(), "SQLite search index mirroring the store")

	bindFlag(rootCmd.PersistentFlags().Lookup("verbose"), "log.verbose")
	bindFlag(rootCmd.PersistentFlags().Lookup("store"), "store.path")
	bindFlag(rootCmd.PersistentFlags().Lookup("index"), "store.index_path")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdfsum")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdfsum"))
		}
	}

	viper.SetEnvPrefix("PDFSUM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		}
		stop()
		os.Exit(1)
	}
}

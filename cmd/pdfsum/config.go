// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfsum/internal/secrets"
	"github.com/pdiddy/pdfsum/pkg/types"
)

// bindFlag ties a flag to a viper key so the flag, PDFSUM_* environment
// variables and the config file all feed the same setting.
func bindFlag(f *pflag.Flag, key string) {
	if err := viper.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

// bindFlags returns a PreRunE binding the command's flags (flag name to
// viper key). Subcommands share keys, so binding waits until the command
// actually runs.
func bindFlags(keys map[string]string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		for name, key := range keys {
			if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
				return fmt.Errorf("binding --%s: %w", name, err)
			}
		}
		return nil
	}
}

func defaultStorePath() string { return types.DefaultStorePath }

func defaultIndexPath() string { return types.DefaultIndexPath }

// defaultDataDir is where the Punkt tables are installed.
func defaultDataDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "pdfsum", "nltk_data")
	}
	return filepath.Join(".pdfsum", "nltk_data")
}

func httpConfig() types.HTTPConfig {
	return types.HTTPConfig{
		Timeout:   viper.GetDuration("http.timeout"),
		UserAgent: viper.GetString("http.user_agent"),
	}
}

func storeConfig() types.StoreConfig {
	return types.StoreConfig{
		Path:      viper.GetString("store.path"),
		IndexPath: viper.GetString("store.index_path"),
	}
}

func extractConfig() types.ExtractConfig {
	return types.ExtractConfig{
		Backend:      types.ExtractBackend(viper.GetString("extract.backend")),
		PdftotextBin: viper.GetString("extract.pdftotext_bin"),
	}
}

func tokenizerConfig() types.TokenizerConfig {
	dataDir := viper.GetString("tokenizer.data_dir")
	if dataDir == "" {
		dataDir = defaultDataDir()
	}
	return types.TokenizerConfig{
		HTTPConfig:         httpConfig(),
		DataDir:            dataDir,
		URL:                viper.GetString("tokenizer.url"),
		InsecureSkipVerify: viper.GetBool("tokenizer.insecure_skip_verify"),
	}
}

func extractiveConfig() types.ExtractiveConfig {
	return types.ExtractiveConfig{
		Sentences: viper.GetInt("extractive.sentences"),
		Method:    types.ExtractiveMethod(viper.GetString("extractive.method")),
		Language:  viper.GetString("extractive.language"),
		Keywords:  viper.GetInt("extractive.keywords"),
	}
}

func abstractiveConfig() types.AbstractiveConfig {
	apiKey := viper.GetString("abstractive.api_key")
	if apiKey == "" {
		apiKey = secrets.HuggingFaceToken(loadedSecrets)
	}
	return types.AbstractiveConfig{
		HTTPConfig:      httpConfig(),
		Backend:         types.AbstractiveBackend(viper.GetString("abstractive.backend")),
		Model:           viper.GetString("abstractive.model"),
		Endpoint:        viper.GetString("abstractive.endpoint"),
		APIKey:          apiKey,
		MaxLength:       viper.GetInt("abstractive.max_length"),
		MinLength:       viper.GetInt("abstractive.min_length"),
		InputTokenLimit: viper.GetInt("abstractive.input_token_limit"),
		MaxRetries:      viper.GetInt("abstractive.max_retries"),
		PDFPath:         viper.GetString("abstractive.pdf_path"),
	}
}

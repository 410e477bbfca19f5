// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfsum/internal/tokenize"
)

var downloadCmd = &cobra.Command{
	Use:   "download-data",
	Short: "Download the sentence tokenizer data",
	Long: `Download-data fetches NLTK's punkt_tab archive and unpacks the
abbreviation and sentence-starter tables into the tokenizer data
directory. The run command does this on first use; download-data forces
a fresh copy.`,
	Args: cobra.NoArgs,
	PreRunE: bindFlags(map[string]string{
		"tokenizer-data-dir":   "tokenizer.data_dir",
		"url":                  "tokenizer.url",
		"insecure-skip-verify": "tokenizer.insecure_skip_verify",
	}),
	RunE: runDownload,
}

func runDownload(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	out := cmd.OutOrStdout()
	cfg := tokenizerConfig()

	fmt.Fprintln(out, "Downloading necessary tokenizer data...")
	if err := tokenize.NewInstaller(cfg, out, logger).Download(cmd.Context()); err != nil {
		return err
	}

	for code := range tokenize.Languages {
		lang, _ := tokenize.PunktLanguage(code)
		if !tokenize.Installed(cfg.DataDir, lang) {
			return fmt.Errorf("%w for %s", tokenize.ErrNoData, lang)
		}
	}
	fmt.Fprintf(out, "Tokenizer data installed in %s\n", cfg.DataDir)
	return nil
}

func init() {
	downloadCmd.Flags().String("tokenizer-data-dir", "", "directory for tokenizer data (default: user cache dir)")
	downloadCmd.Flags().String("url", "", "punkt_tab.zip location (default: NLTK data on GitHub)")
	downloadCmd.Flags().Bool("insecure-skip-verify", false, "skip TLS certificate verification for this download")

	rootCmd.AddCommand(downloadCmd)
}

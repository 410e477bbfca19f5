// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/pdfsum/internal/extractive"
	"github.com/pdiddy/pdfsum/internal/index"
	"github.com/pdiddy/pdfsum/internal/pdftext"
	"github.com/pdiddy/pdfsum/internal/pipeline"
	"github.com/pdiddy/pdfsum/internal/store"
	"github.com/pdiddy/pdfsum/internal/tokenize"
	"github.com/pdiddy/pdfsum/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run <pdf>",
	Short: "Summarize a PDF and record the summary in the store",
	Long: `Run extracts the text of a PDF, selects its most representative
sentences with LexRank and records them in the summary store under the
file's base name. Running again on the same file replaces its summary.

Tokenizer data is downloaded on first use. If the download fails a
built-in abbreviation list is used instead.`,
	Args: cobra.ExactArgs(1),
	PreRunE: bindFlags(map[string]string{
		"sentences":            "extractive.sentences",
		"method":               "extractive.method",
		"language":             "extractive.language",
		"extract-backend":      "extract.backend",
		"tokenizer-data-dir":   "tokenizer.data_dir",
		"insecure-skip-verify": "tokenizer.insecure_skip_verify",
		"keywords":             "extractive.keywords",
	}),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	out := cmd.OutOrStdout()
	path := args[0]

	cfg := extractiveConfig()
	if cfg.Sentences <= 0 {
		return fmt.Errorf("--sentences must be positive, got %d", cfg.Sentences)
	}
	if cfg.Keywords < 0 {
		return fmt.Errorf("--keywords must not be negative, got %d", cfg.Keywords)
	}
	if _, err := tokenize.PunktLanguage(cfg.Language); err != nil {
		return err
	}

	extractor, err := pdftext.New(extractConfig(), logger)
	if err != nil {
		return err
	}

	sc := storeConfig()
	tc := tokenizerConfig()
	p := &pipeline.Extractive{
		Config:    cfg,
		DataDir:   tc.DataDir,
		Installer: tokenize.NewInstaller(tc, out, logger),
		Extractor: extractor,
		Store:     store.New(sc.Path),
		Out:       out,
		Log:       logger,
	}

	if sc.IndexPath != "" {
		idx := index.NewLazy(sc.IndexPath, logger)
		defer idx.Close()
		p.Index = idx
	}

	res := p.Run(cmd.Context(), path)
	if !res.OK() {
		errOut := cmd.ErrOrStderr()
		fmt.Fprintln(errOut, color.RedString("Error:"), res.Err)
		fmt.Fprintln(out, "Failed to generate summary.")
		logger.Debug("run failed", zap.String("stage", string(res.Stage)), zap.Error(res.Err))
		return fmt.Errorf("%s: %w", res.Stage, errReported)
	}

	fmt.Fprintf(out, "Summary of %s has been %s in %s\n", path, color.GreenString("added/updated"), p.Store.Path())
	if len(res.Keywords) > 0 {
		fmt.Fprintf(out, "Keywords: %s\n", strings.Join(res.Keywords, ", "))
	}
	logger.Debug("summary stored", zap.String("action", string(res.Action)), zap.Int("chars", len(res.Summary)))
	return nil
}

func init() {
	runCmd.Flags().Int("sentences", types.DefaultSentences, "number of sentences in the summary")
	runCmd.Flags().String("method", string(types.MethodLexRank), "sentence ranking: lexrank or tfidf")
	runCmd.Flags().String("language", types.DefaultLanguage, "document language: en or es")
	runCmd.Flags().String("extract-backend", string(types.ExtractNative), "text extraction: native or pdftotext")
	runCmd.Flags().String("tokenizer-data-dir", "", "directory for tokenizer data (default: user cache dir)")
	runCmd.Flags().Bool("insecure-skip-verify", false, "skip TLS certificate verification when downloading tokenizer data")
	runCmd.Flags().Int("keywords", 0, "extract and store this many keywords (bare --keywords means 10)")
	runCmd.Flags().Lookup("keywords").NoOptDefVal = strconv.Itoa(extractive.DefaultKeywords)

	rootCmd.AddCommand(runCmd)
}

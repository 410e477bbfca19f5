// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/pdfsum/internal/abstractive"
	"github.com/pdiddy/pdfsum/internal/pdftext"
	"github.com/pdiddy/pdfsum/internal/pipeline"
	"github.com/pdiddy/pdfsum/pkg/types"
)

var abstractCmd = &cobra.Command{
	Use:   "abstract",
	Short: "Print a model-generated summary of a PDF",
	Long: `Abstract extracts the text of a PDF and asks a pretrained
summarization model for a paraphrased summary, which is printed to stdout.
Nothing is recorded in the store.

The default backend is the Hugging Face Inference API with
facebook/bart-large-cnn; set a token in .secrets/huggingface-api-key or
HF_TOKEN. With --backend ollama a local Ollama server is used instead.
The whole text is sent at once: only the first part of a long document
fits the model's input window.`,
	Args: cobra.NoArgs,
	PreRunE: bindFlags(map[string]string{
		"pdf":             "abstractive.pdf_path",
		"backend":         "abstractive.backend",
		"model":           "abstractive.model",
		"endpoint":        "abstractive.endpoint",
		"max-length":      "abstractive.max_length",
		"min-length":      "abstractive.min_length",
		"max-retries":     "abstractive.max_retries",
		"extract-backend": "extract.backend",
	}),
	RunE: runAbstract,
}

func runAbstract(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cfg := abstractiveConfig()

	extractor, err := pdftext.New(extractConfig(), logger)
	if err != nil {
		return err
	}
	summarizer, err := abstractive.New(cfg, logger)
	if err != nil {
		return err
	}

	p := &pipeline.Abstractive{
		Extractor:  extractor,
		Summarizer: summarizer,
		Log:        logger,
	}
	res := p.Run(cmd.Context(), cfg.PDFPath)
	if !res.OK() {
		logger.Debug("abstract failed", zap.String("stage", string(res.Stage)), zap.Error(res.Err))
		return fmt.Errorf("%s: %w", res.Stage, res.Err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Summary)
	return nil
}

func init() {
	abstractCmd.Flags().String("pdf", types.DefaultAbstractPDF, "PDF to summarize")
	abstractCmd.Flags().String("backend", string(types.BackendHuggingFace), "model host: huggingface or ollama")
	abstractCmd.Flags().String("model", types.DefaultModel, "model name")
	abstractCmd.Flags().String("endpoint", "", "model host base URL (default depends on backend)")
	abstractCmd.Flags().Int("max-length", types.DefaultMaxLength, "maximum summary length in tokens")
	abstractCmd.Flags().Int("min-length", types.DefaultMinLength, "minimum summary length in tokens")
	abstractCmd.Flags().Int("max-retries", 5, "retries while the model host is rate limiting or loading the model")
	abstractCmd.Flags().String("extract-backend", string(types.ExtractNative), "text extraction: native or pdftotext")

	rootCmd.AddCommand(abstractCmd)
}

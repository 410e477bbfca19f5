// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one PDF through validation, text extraction,
// summarization and (for extractive summaries) the summary store.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/pdiddy/pdfsum/internal/abstractive"
	"github.com/pdiddy/pdfsum/internal/extractive"
	"github.com/pdiddy/pdfsum/internal/index"
	"github.com/pdiddy/pdfsum/internal/pdftext"
	"github.com/pdiddy/pdfsum/internal/store"
	"github.com/pdiddy/pdfsum/internal/tokenize"
	"github.com/pdiddy/pdfsum/pkg/types"
)

// Stage names a pipeline step.
type Stage string

const (
	StageValidate  Stage = "validate"
	StageTokenizer Stage = "tokenizer"
	StageExtract   Stage = "extract"
	StageSummarize Stage = "summarize"
	StageStore     Stage = "store"
	StageDone      Stage = "done"
)

// Result is the outcome of one run. On failure Stage is the step that
// failed and Err says why; on success Stage is StageDone.
type Result struct {
	Document types.Document
	Stage    Stage
	Text     string
	Summary  string
	Keywords []string
	Action   store.Action
	Err      error
}

// OK reports whether the run completed.
func (r Result) OK() bool { return r.Err == nil }

func (r Result) fail(stage Stage, err error) Result {
	r.Stage = stage
	r.Err = err
	return r
}

// Installer makes sure tokenizer data is available for a language.
type Installer interface {
	Ensure(ctx context.Context, lang string) (bool, error)
}

// Indexer mirrors the store into a search index.
type Indexer interface {
	Sync(ctx context.Context, records []types.SummaryRecord) (index.SyncSummary, error)
}

// Extractive is the sentence-selection pipeline: tokenizer data, text,
// LexRank (or TF) summary, store upsert.
type Extractive struct {
	Config    types.ExtractiveConfig
	DataDir   string
	Installer Installer
	Extractor pdftext.Extractor
	Store     *store.Store
	Index     Indexer
	Out       io.Writer
	Log       *zap.Logger
}

// Run summarizes the PDF at path and upserts the result into the store.
// The store is written only when a non-empty summary was produced.
func (p *Extractive) Run(ctx context.Context, path string) Result {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	out := p.Out
	if out == nil {
		out = io.Discard
	}
	res := Result{Document: types.Document{Path: path}}

	if err := pdftext.Validate(path); err != nil {
		return res.fail(StageValidate, err)
	}

	n := p.Config.Sentences
	if n <= 0 {
		n = types.DefaultSentences
	}
	code := p.Config.Language
	if code == "" {
		code = types.DefaultLanguage
	}
	lang, err := tokenize.PunktLanguage(code)
	if err != nil {
		return res.fail(StageTokenizer, err)
	}
	if p.Installer != nil {
		if _, err := p.Installer.Ensure(ctx, lang); err != nil {
			if ctx.Err() != nil {
				return res.fail(StageTokenizer, ctx.Err())
			}
			fmt.Fprintf(out, "%s could not download tokenizer data (%v); using built-in abbreviations\n",
				color.YellowString("warning:"), err)
		}
	}
	splitter := tokenize.LoadOrDefault(p.DataDir, lang, log)

	text, err := p.Extractor.Extract(path)
	if err != nil {
		return res.fail(StageExtract, err)
	}
	res.Text = text
	log.Debug("extracted text", zap.String("file", res.Document.FileName()), zap.Int("chars", len(text)))

	summarizer, err := extractive.New(p.Config, splitter, log)
	if err != nil {
		return res.fail(StageSummarize, err)
	}
	summary, err := summarizer.Summarize(text, n)
	if err != nil {
		return res.fail(StageSummarize, err)
	}
	res.Summary = summary
	res.Keywords = extractive.Keywords(text, code, p.Config.Keywords)

	action, err := p.Store.Upsert(path, summary, res.Keywords...)
	if err != nil {
		return res.fail(StageStore, err)
	}
	res.Action = action

	if p.Index != nil {
		if err := p.syncIndex(ctx); err != nil {
			log.Warn("search index not updated", zap.Error(err))
		}
	}

	res.Stage = StageDone
	return res
}

func (p *Extractive) syncIndex(ctx context.Context) error {
	records, err := p.Store.Records()
	if err != nil {
		return err
	}
	_, err = p.Index.Sync(ctx, records)
	return err
}

// Abstractive is the model-generated summary pipeline. Nothing is stored.
type Abstractive struct {
	Extractor  pdftext.Extractor
	Summarizer *abstractive.Summarizer
	Log        *zap.Logger
}

// Run extracts the PDF at path and asks the model for a summary.
func (p *Abstractive) Run(ctx context.Context, path string) Result {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	res := Result{Document: types.Document{Path: path}}

	if err := pdftext.Validate(path); err != nil {
		return res.fail(StageValidate, err)
	}

	text, err := p.Extractor.Extract(path)
	if err != nil {
		return res.fail(StageExtract, err)
	}
	res.Text = text
	log.Debug("extracted text", zap.String("file", res.Document.FileName()), zap.Int("chars", len(text)))

	summary, err := p.Summarizer.Summarize(ctx, text)
	if err != nil {
		return res.fail(StageSummarize, err)
	}
	res.Summary = summary
	res.Stage = StageDone
	return res
}

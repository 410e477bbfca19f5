// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext extracts plain text from PDF files with pluggable backends.
// Page texts are concatenated in order with no separator; no layout or
// paragraph structure is kept.
package pdftext

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/pdiddy/pdfsum/pkg/types"
)

var (
	// ErrNotFound is returned when the input path does not exist.
	ErrNotFound = errors.New("file does not exist")

	// ErrNotPDF is returned when the input path does not end in .pdf.
	ErrNotPDF = errors.New("file is not a PDF")

	// ErrParse wraps failures reported by the PDF parser.
	ErrParse = errors.New("parsing PDF")
)

// Extractor turns a PDF into plain text. Backends (native Go parser,
// pdftotext) implement this interface.
type Extractor interface {
	// Extract returns the concatenated text of every page of the PDF at path.
	Extract(path string) (string, error)
}

// Validate checks that path exists and carries a .pdf extension. The
// existence check comes first so a missing file is reported as missing
// regardless of its name; neither check opens the file.
func Validate(path string) error {
	doc := types.Document{Path: path}
	if !doc.Exists() {
		return fmt.Errorf("the file '%s' does not exist: %w", path, ErrNotFound)
	}
	if !doc.IsPDF() {
		return fmt.Errorf("the file '%s' is not a PDF file: %w", path, ErrNotPDF)
	}
	return nil
}

// New returns the extractor selected by cfg.Backend.
func New(cfg types.ExtractConfig, log *zap.Logger) (Extractor, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch cfg.Backend {
	case types.ExtractNative, "":
		return &NativeExtractor{log: log}, nil
	case types.ExtractPdftotext:
		return NewPdftotextExtractor(cfg.PdftotextBin, log)
	default:
		return nil, fmt.Errorf("unsupported extract backend %q: use native or pdftotext", cfg.Backend)
	}
}

// NativeExtractor reads PDFs with github.com/ledongthuc/pdf.
type NativeExtractor struct {
	log *zap.Logger
}

// NewNativeExtractor creates an extractor backed by the pure Go parser.
func NewNativeExtractor(log *zap.Logger) *NativeExtractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &NativeExtractor{log: log}
}

// Extract validates path, opens it and concatenates the plain text of
// each page in order. Pages without content are skipped.
func (n *NativeExtractor) Extract(path string) (text string, err error) {
	if err := Validate(path); err != nil {
		return "", err
	}

	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w %s: %v", ErrParse, path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w %s: %v", ErrParse, path, err)
	}
	defer f.Close()

	var b strings.Builder
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w %s: page %d: %v", ErrParse, path, i, err)
		}
		b.WriteString(pageText)
	}

	n.log.Debug("extracted text",
		zap.String("path", path),
		zap.Int("pages", numPages),
		zap.Int("chars", b.Len()),
	)
	return b.String(), nil
}

// fileSize is used by backends that need to reject empty files early.
func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

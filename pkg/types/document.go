// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the configuration and data records shared by the
// pdfsum commands and pipeline stages.
package types

import (
	"os"
	"path/filepath"
	"strings"
)

// Document is a PDF on disk. It is read, never modified.
type Document struct {
	// Path is the filesystem path as given by the caller.
	Path string `json:"path" yaml:"path"`
}

// Exists reports whether the path names an existing file or directory.
func (d Document) Exists() bool {
	_, err := os.Stat(d.Path)
	return err == nil
}

// Ext returns the lower-cased file extension including the dot.
func (d Document) Ext() string {
	return strings.ToLower(filepath.Ext(d.Path))
}

// IsPDF reports whether the path ends in ".pdf", ignoring case.
func (d Document) IsPDF() bool {
	return d.Ext() == ".pdf"
}

// FileName is the base name used as the store key.
func (d Document) FileName() string {
	return filepath.Base(d.Path)
}

// SummaryRecord is one entry of the summary store. At most one record
// exists per FileName.
type SummaryRecord struct {
	FileName string `json:"file_name" yaml:"file_name"`
	Summary  string `json:"summary" yaml:"summary"`

	// Keywords is present only when keyword extraction was requested.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

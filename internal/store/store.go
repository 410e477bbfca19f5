// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists summaries as a JSON array of
// {"file_name", "summary"} records keyed by the PDF's base name.
//
// The file is read and rewritten whole on every update. There is no
// locking; concurrent writers race and the last one wins.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdfsum/pkg/types"
)

// ErrEmptySummary is returned by Upsert when there is nothing to store.
var ErrEmptySummary = errors.New("summary is empty")

// Action reports what Upsert did.
type Action string

const (
	Added   Action = "added"
	Updated Action = "updated"
)

// Store is a JSON summary file at a fixed path.
type Store struct {
	path string
}

// New returns a Store backed by path. The file need not exist.
func New(path string) *Store {
	if path == "" {
		path = types.DefaultStorePath
	}
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Records returns the stored records in file order. A missing file yields
// an empty slice.
func (s *Store) Records() ([]types.SummaryRecord, error) {
	return Load(s.path)
}

// Load reads the records in path. A missing or empty file yields an empty
// slice; a file that is not a JSON array of records is an error.
func Load(path string) ([]types.SummaryRecord, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []types.SummaryRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []types.SummaryRecord{}, nil
	}

	var records []types.SummaryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if records == nil {
		records = []types.SummaryRecord{}
	}
	return records, nil
}

// Upsert stores summary (and keywords, if any) under the base name of
// pdfPath, replacing an existing record in place or appending a new one.
func (s *Store) Upsert(pdfPath, summary string, keywords ...string) (Action, error) {
	if summary == "" {
		return "", ErrEmptySummary
	}

	records, err := s.Records()
	if err != nil {
		return "", err
	}

	name := types.Document{Path: pdfPath}.FileName()
	action := Added
	for i := range records {
		if records[i].FileName == name {
			records[i].Summary = summary
			records[i].Keywords = keywords
			action = Updated
			break
		}
	}
	if action == Added {
		records = append(records, types.SummaryRecord{FileName: name, Summary: summary, Keywords: keywords})
	}

	if err := s.write(records); err != nil {
		return "", err
	}
	return action, nil
}

func (s *Store) write(records []types.SummaryRecord) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating store directory: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := encodeJSON(&buf, records); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

// ExportJSON writes the records to w as indented JSON.
func (s *Store) ExportJSON(w io.Writer) error {
	records, err := s.Records()
	if err != nil {
		return err
	}
	return encodeJSON(w, records)
}

// ExportYAML writes the records to w as a YAML sequence.
func (s *Store) ExportYAML(w io.Writer) error {
	records, err := s.Records()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func encodeJSON(w io.Writer, records []types.SummaryRecord) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

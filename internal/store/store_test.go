// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdfsum/pkg/types"
)

func TestRecords_MissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "summaries.json"))
	records, err := s.Records()
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestUpsert_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summaries.json")
	s := New(path)

	action, err := s.Upsert("/data/papers/doc.pdf", "First. Second.")
	require.NoError(t, err)
	assert.Equal(t, Added, action)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "[\n  {\n    \"file_name\": \"doc.pdf\",\n    \"summary\": \"First. Second.\"\n  }\n]\n"
	assert.Equal(t, want, string(data))
}

func TestUpsert_Idempotent(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "summaries.json"))

	_, err := s.Upsert("doc.pdf", "old summary")
	require.NoError(t, err)
	action, err := s.Upsert("other/dir/doc.pdf", "new summary")
	require.NoError(t, err)
	assert.Equal(t, Updated, action)

	records, err := s.Records()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, types.SummaryRecord{FileName: "doc.pdf", Summary: "new summary"}, records[0])
}

func TestUpsert_PreservesOthers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summaries.json")
	seed := []types.SummaryRecord{
		{FileName: "a.pdf", Summary: "about A"},
		{FileName: "b.pdf", Summary: "about B"},
	}
	data, err := json.Marshal(seed)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	s := New(path)
	action, err := s.Upsert("c.pdf", "about C")
	require.NoError(t, err)
	assert.Equal(t, Added, action)

	records, err := s.Records()
	require.NoError(t, err)
	assert.Equal(t, append(seed, types.SummaryRecord{FileName: "c.pdf", Summary: "about C"}), records)

	_, err = s.Upsert("a.pdf", "A again")
	require.NoError(t, err)
	records, err = s.Records()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf", "b.pdf", "c.pdf"}, fileNames(records))
	assert.Equal(t, "A again", records[0].Summary)
	assert.Equal(t, "about B", records[1].Summary)
}

func TestUpsert_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		summary string
		wantErr string
	}{
		{name: "empty summary", summary: "", wantErr: "summary is empty"},
		{name: "corrupt file", content: "{not json", summary: "x", wantErr: "parsing"},
		{name: "object instead of array", content: `{"file_name":"a.pdf"}`, summary: "x", wantErr: "parsing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "summaries.json")
			if tt.content != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			}
			s := New(path)
			_, err := s.Upsert("doc.pdf", tt.summary)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			if tt.content != "" {
				data, readErr := os.ReadFile(path)
				require.NoError(t, readErr)
				assert.Equal(t, tt.content, string(data), "store must be untouched")
			} else {
				assert.NoFileExists(t, path)
			}
		})
	}
}

func TestUpsert_EmptyFileTreatedAsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summaries.json")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o644))

	_, err := New(path).Upsert("doc.pdf", "s")
	require.NoError(t, err)
	records, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestUpsert_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "summaries.json")
	_, err := New(path).Upsert("doc.pdf", "s")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestUpsert_NoHTMLEscaping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summaries.json")
	_, err := New(path).Upsert("doc.pdf", "A <b> & C")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"A <b> & C"`)
}

func TestExport(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "summaries.json"))
	_, err := s.Upsert("a.pdf", "about A")
	require.NoError(t, err)
	_, err = s.Upsert("b.pdf", "about B")
	require.NoError(t, err)

	var jsonBuf bytes.Buffer
	require.NoError(t, s.ExportJSON(&jsonBuf))
	var fromJSON []types.SummaryRecord
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &fromJSON))
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, fileNames(fromJSON))

	var yamlBuf bytes.Buffer
	require.NoError(t, s.ExportYAML(&yamlBuf))
	assert.Contains(t, yamlBuf.String(), "file_name: a.pdf")
	var fromYAML []types.SummaryRecord
	require.NoError(t, yaml.Unmarshal(yamlBuf.Bytes(), &fromYAML))
	assert.Equal(t, fromJSON, fromYAML)
}

func TestNew_DefaultPath(t *testing.T) {
	assert.Equal(t, types.DefaultStorePath, New("").Path())
}

func fileNames(records []types.SummaryRecord) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.FileName
	}
	return names
}

func TestUpsert_Keywords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summaries.json")
	s := New(path)

	_, err := s.Upsert("doc.pdf", "First.", "creature", "arctic")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "[\n  {\n    \"file_name\": \"doc.pdf\",\n    \"summary\": \"First.\",\n" +
		"    \"keywords\": [\n      \"creature\",\n      \"arctic\"\n    ]\n  }\n]\n"
	assert.Equal(t, want, string(data))

	// A later run without keywords drops them, restoring the plain format.
	_, err = s.Upsert("doc.pdf", "Second.")
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "keywords")

	var yamlBuf bytes.Buffer
	_, err = s.Upsert("b.pdf", "B.", "ice")
	require.NoError(t, err)
	require.NoError(t, s.ExportYAML(&yamlBuf))
	var fromYAML []types.SummaryRecord
	require.NoError(t, yaml.Unmarshal(yamlBuf.Bytes(), &fromYAML))
	assert.Equal(t, []types.SummaryRecord{
		{FileName: "doc.pdf", Summary: "Second."},
		{FileName: "b.pdf", Summary: "B.", Keywords: []string{"ice"}},
	}, fromYAML)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdfsum/internal/testpdf"
	"github.com/pdiddy/pdfsum/pkg/types"
)

var threePages = []string{
	"The first page introduces the creature.",
	"The second page follows the doctor north.",
	"The third page ends on the ice.",
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	pdfPath := testpdf.Write(t, dir, "doc.pdf", threePages[:1])
	upperPath := testpdf.Write(t, dir, "DOC.PDF", threePages[:1])
	txtPath := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("plain"), 0o644))
	// A directory cannot be read as a file, so reaching ErrNotPDF shows the
	// extension is checked without opening the path.
	txtDir := filepath.Join(dir, "folder.txt")
	require.NoError(t, os.Mkdir(txtDir, 0o755))

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "pdf", path: pdfPath},
		{name: "upper case extension", path: upperPath},
		{name: "missing file", path: filepath.Join(dir, "missing.pdf"), wantErr: ErrNotFound},
		{name: "wrong extension", path: txtPath, wantErr: ErrNotPDF},
		{name: "wrong extension is not opened", path: txtDir, wantErr: ErrNotPDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.path)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.path)
		})
	}
}

func TestNativeExtractor_Extract(t *testing.T) {
	dir := t.TempDir()
	path := testpdf.Write(t, dir, "doc.pdf", threePages)

	text, err := NewNativeExtractor(nil).Extract(path)
	require.NoError(t, err)

	for _, page := range threePages {
		assert.Contains(t, text, page)
	}
	// Pages are concatenated in order.
	assert.Less(t, strings.Index(text, "first page"), strings.Index(text, "second page"))
	assert.Less(t, strings.Index(text, "second page"), strings.Index(text, "third page"))
}

func TestNativeExtractor_LengthGrowsWithPages(t *testing.T) {
	dir := t.TempDir()
	ex := NewNativeExtractor(nil)

	prev := 0
	for n := 1; n <= len(threePages); n++ {
		path := testpdf.Write(t, dir, "doc"+strings.Repeat("x", n)+".pdf", threePages[:n])
		text, err := ex.Extract(path)
		require.NoError(t, err)
		assert.NotEmpty(t, text)
		assert.GreaterOrEqual(t, len(text), prev, "text length with %d pages", n)
		prev = len(text)
	}
}

func TestNativeExtractor_Errors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(garbage, []byte("this is not a pdf"), 0o644))

	// A directory named *.txt proves the extension check does not open the path.
	notPDF := filepath.Join(dir, "folder.txt")
	require.NoError(t, os.Mkdir(notPDF, 0o755))

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "missing", path: filepath.Join(dir, "nope.pdf"), wantErr: ErrNotFound},
		{name: "not a pdf", path: notPDF, wantErr: ErrNotPDF},
		{name: "unparseable", path: garbage, wantErr: ErrParse},
	}

	ex := NewNativeExtractor(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ex.Extract(tt.path)
			assert.Empty(t, text)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool
	output        string
	err           error
	gotArgs       []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	m.gotArgs = args
	if m.err != nil {
		return m.err
	}
	_, err := io.Copy(stdout, bytes.NewBufferString(m.output))
	return err
}

func TestPdftotextExtractor(t *testing.T) {
	dir := t.TempDir()
	path := testpdf.Write(t, dir, "doc.pdf", threePages)

	t.Run("binary missing", func(t *testing.T) {
		_, err := newPdftotextExtractor("", &mockExecutor{}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pdftotext not available")
	})

	t.Run("joins pages without separator", func(t *testing.T) {
		m := &mockExecutor{
			availableBins: map[string]bool{"pdftotext": true},
			output:        "Page one.\fPage two.\f",
		}
		ex, err := newPdftotextExtractor("", m, nil)
		require.NoError(t, err)

		text, err := ex.Extract(path)
		require.NoError(t, err)
		assert.Equal(t, "Page one.Page two.", text)
		assert.Equal(t, []string{"-enc", "UTF-8", path, "-"}, m.gotArgs)
	})

	t.Run("command failure is a parse error", func(t *testing.T) {
		m := &mockExecutor{
			availableBins: map[string]bool{"pdftotext": true},
			err:           errors.New("exit status 1"),
		}
		ex, err := newPdftotextExtractor("", m, nil)
		require.NoError(t, err)

		_, err = ex.Extract(path)
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("leading dash is not read as a flag", func(t *testing.T) {
		t.Chdir(dir)
		testpdf.Write(t, ".", "-doc.pdf", threePages)
		m := &mockExecutor{
			availableBins: map[string]bool{"pdftotext": true},
			output:        "Page one.\f",
		}
		ex, err := newPdftotextExtractor("", m, nil)
		require.NoError(t, err)

		_, err = ex.Extract("-doc.pdf")
		require.NoError(t, err)
		assert.Equal(t, []string{"-enc", "UTF-8", "./-doc.pdf", "-"}, m.gotArgs)
	})

	t.Run("validation runs before the command", func(t *testing.T) {
		m := &mockExecutor{availableBins: map[string]bool{"pdftotext": true}}
		ex, err := newPdftotextExtractor("", m, nil)
		require.NoError(t, err)

		_, err = ex.Extract(filepath.Join(dir, "missing.pdf"))
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, m.gotArgs)
	})
}

func TestNew(t *testing.T) {
	ex, err := New(types.ExtractConfig{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &NativeExtractor{}, ex)

	_, err = New(types.ExtractConfig{Backend: "ocr"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported extract backend")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tokenize

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdfsum/pkg/types"
)

// punktArchive builds a punkt_tab.zip with english tables plus extra entries.
func punktArchive(t *testing.T, extra map[string]string) []byte {
	t.Helper()
	files := map[string]string{
		"punkt_tab/english/abbrev_types.txt": "dr\nu.s\napprox\n",
		"punkt_tab/english/sent_starters.txt": "however\nthen\n",
		"punkt_tab/README":                   "Punkt tables",
		"other/ignored.txt":                  "not punkt",
	}
	for k, v := range extra {
		files[k] = v
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func archiveServer(t *testing.T, archive []byte, calls *int32) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/zip")
		w.Write(archive)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func testConfig(dataDir, url string) types.TokenizerConfig {
	return types.TokenizerConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second},
		DataDir:    dataDir,
		URL:        url,
	}
}

func TestInstaller_Ensure(t *testing.T) {
	var calls int32
	ts := archiveServer(t, punktArchive(t, nil), &calls)
	dataDir := t.TempDir()

	var out bytes.Buffer
	in := NewInstaller(testConfig(dataDir, ts.URL), &out, nil)

	downloaded, err := in.Ensure(context.Background(), "english")
	require.NoError(t, err)
	assert.True(t, downloaded)
	assert.True(t, Installed(dataDir, "english"))
	assert.Contains(t, out.String(), "Downloading necessary tokenizer data")

	_, err = os.Stat(filepath.Join(dataDir, "other", "ignored.txt"))
	assert.True(t, os.IsNotExist(err), "entries outside punkt_tab are not extracted")

	// Second call is a no-op.
	downloaded, err = in.Ensure(context.Background(), "english")
	require.NoError(t, err)
	assert.False(t, downloaded)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	tok, err := Load(dataDir, "english")
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"It weighed approx. Ten stone.", "Then it ran."},
		tok.Sentences("It weighed approx. Ten stone. Then it ran."))
}

func TestInstaller_MissingLanguage(t *testing.T) {
	var calls int32
	ts := archiveServer(t, punktArchive(t, nil), &calls)

	in := NewInstaller(testConfig(t.TempDir(), ts.URL), &bytes.Buffer{}, nil)
	_, err := in.Ensure(context.Background(), "spanish")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestInstaller_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	in := NewInstaller(testConfig(t.TempDir(), ts.URL), &bytes.Buffer{}, nil)
	_, err := in.Ensure(context.Background(), "english")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestInstaller_RejectsPathTraversal(t *testing.T) {
	var calls int32
	archive := punktArchive(t, map[string]string{"punkt_tab/../../escape.txt": "x"})
	ts := archiveServer(t, archive, &calls)

	parent := t.TempDir()
	dataDir := filepath.Join(parent, "a", "b")
	in := NewInstaller(testConfig(dataDir, ts.URL), &bytes.Buffer{}, nil)
	err := in.Download(context.Background())
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(parent, "a", "escape.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestUnzipPunkt_RelativeDataDir(t *testing.T) {
	archive := punktArchive(t, nil)

	tests := []struct {
		name string
		dest string
	}{
		{name: "working directory", dest: "."},
		{name: "dot slash", dest: "./"},
		{name: "relative subdirectory", dest: "data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())

			n, err := unzipPunkt(bytes.NewReader(archive), int64(len(archive)), tt.dest)
			require.NoError(t, err)
			assert.Equal(t, 3, n)
			assert.True(t, Installed(tt.dest, "english"))
		})
	}
}

func TestUnzipPunkt_RelativeDataDirStillGuarded(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.Mkdir("data", 0o755))
	archive := punktArchive(t, map[string]string{"punkt_tab/../../escape.txt": "x"})

	_, err := unzipPunkt(bytes.NewReader(archive), int64(len(archive)), "data")
	require.Error(t, err)
	assert.NoFileExists(t, "escape.txt")
}

func TestWithin(t *testing.T) {
	tests := []struct {
		dir, target string
		want        bool
	}{
		{".", "punkt_tab/english/abbrev_types.txt", true},
		{"data", "data/punkt_tab/x", true},
		{"/srv/nltk", "/srv/nltk/punkt_tab/x", true},
		{"data", "escape.txt", false},
		{".", "../escape.txt", false},
		{"/srv/nltk", "/srv/other/x", false},
		{"data", "data/..x/file", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, within(tt.dir, filepath.FromSlash(tt.target)), "%s in %s", tt.target, tt.dir)
	}
}

func TestInstaller_TLSVerification(t *testing.T) {
	archive := punktArchive(t, nil)
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(archive)
	}))
	defer ts.Close()

	t.Run("verification on by default", func(t *testing.T) {
		in := NewInstaller(testConfig(t.TempDir(), ts.URL), &bytes.Buffer{}, nil)
		_, err := in.Ensure(context.Background(), "english")
		require.Error(t, err)
	})

	t.Run("explicit opt-out", func(t *testing.T) {
		cfg := testConfig(t.TempDir(), ts.URL)
		cfg.InsecureSkipVerify = true
		in := NewInstaller(cfg, &bytes.Buffer{}, nil)
		downloaded, err := in.Ensure(context.Background(), "english")
		require.NoError(t, err)
		assert.True(t, downloaded)
	})
}

func TestLoad(t *testing.T) {
	_, err := Load(t.TempDir(), "english")
	assert.ErrorIs(t, err, ErrNoData)

	tok := LoadOrDefault(t.TempDir(), "english", nil)
	assert.Equal(t,
		[]string{"Dr. Jekyll stayed.", "Mr. Hyde left."},
		tok.Sentences("Dr. Jekyll stayed. Mr. Hyde left."))
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tokenize

import (
	"archive/zip"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/pdiddy/pdfsum/internal/httputil"
	"github.com/pdiddy/pdfsum/pkg/types"
)

const (
	punktDir     = "punkt_tab"
	abbrevFile   = "abbrev_types.txt"
	startersFile = "sent_starters.txt"
)

// ErrNoData is returned by Load when the Punkt tables for a language are
// not installed.
var ErrNoData = errors.New("punkt tables not installed")

// Installed reports whether the Punkt tables for lang exist under dataDir.
func Installed(dataDir, lang string) bool {
	_, err := os.Stat(filepath.Join(dataDir, punktDir, lang, abbrevFile))
	return err == nil
}

// Load builds a Tokenizer from the Punkt tables for lang under dataDir.
func Load(dataDir, lang string) (*Tokenizer, error) {
	dir := filepath.Join(dataDir, punktDir, lang)
	abbrevs, err := readLines(filepath.Join(dir, abbrevFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w for %s in %s", ErrNoData, lang, dataDir)
		}
		return nil, fmt.Errorf("reading abbreviations: %w", err)
	}
	// Sentence starters are optional.
	starters, err := readLines(filepath.Join(dir, startersFile))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading sentence starters: %w", err)
	}
	return New(abbrevs, starters), nil
}

// LoadOrDefault loads the installed tables for lang and falls back to the
// built-in abbreviation list when they are missing or unreadable.
func LoadOrDefault(dataDir, lang string, log *zap.Logger) *Tokenizer {
	t, err := Load(dataDir, lang)
	if err != nil {
		if log != nil {
			log.Warn("using built-in abbreviations", zap.String("language", lang), zap.Error(err))
		}
		return Default(lang)
	}
	return t
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

// Installer downloads punkt_tab.zip and unpacks it into the data directory.
type Installer struct {
	cfg    types.TokenizerConfig
	client *http.Client
	w      io.Writer
	log    *zap.Logger
}

// NewInstaller creates an installer. Progress is written to w. TLS
// verification is disabled only when cfg.InsecureSkipVerify is set, and
// only for the installer's own client.
func NewInstaller(cfg types.TokenizerConfig, w io.Writer, log *zap.Logger) *Installer {
	if cfg.URL == "" {
		cfg.URL = types.DefaultTokenizerURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = types.DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = types.DefaultUserAgent
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Installer{
		cfg:    cfg,
		client: httputil.NewClient(cfg.Timeout, cfg.InsecureSkipVerify),
		w:      w,
		log:    log,
	}
}

// Ensure installs the tables for lang unless they are already present.
// It reports whether a download took place.
func (in *Installer) Ensure(ctx context.Context, lang string) (bool, error) {
	if Installed(in.cfg.DataDir, lang) {
		in.log.Debug("punkt tables already installed", zap.String("language", lang), zap.String("dir", in.cfg.DataDir))
		return false, nil
	}
	if in.cfg.InsecureSkipVerify {
		in.log.Warn("TLS certificate verification disabled for tokenizer download", zap.String("url", in.cfg.URL))
	}
	fmt.Fprintln(in.w, "Downloading necessary tokenizer data...")
	if err := in.Download(ctx); err != nil {
		return false, err
	}
	if !Installed(in.cfg.DataDir, lang) {
		return true, fmt.Errorf("%w: archive has no tables for %s", ErrNoData, lang)
	}
	return true, nil
}

// Download fetches the archive and unpacks every punkt_tab entry into the
// data directory, replacing files already there.
func (in *Installer) Download(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, in.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", in.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, in.client, req, 0, in.log)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", in.cfg.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: HTTP %d", in.cfg.URL, resp.StatusCode)
	}

	if err := os.MkdirAll(in.cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Download to a temp file first: zip needs random access.
	tmp, err := os.CreateTemp(in.cfg.DataDir, "punkt-*.zip")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	bar := progressbar.NewOptions64(resp.ContentLength,
		progressbar.OptionSetWriter(in.w),
		progressbar.OptionSetDescription(color.CyanString("punkt_tab")),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(in.w) }),
	)

	size, err := io.Copy(io.MultiWriter(tmp, bar), resp.Body)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", in.cfg.URL, err)
	}
	_ = bar.Finish()

	n, err := unzipPunkt(tmp, size, in.cfg.DataDir)
	if err != nil {
		return err
	}
	in.log.Debug("installed punkt tables", zap.Int("files", n), zap.String("dir", in.cfg.DataDir))
	return nil
}

// unzipPunkt extracts regular files under punkt_tab/ into dest and returns
// how many were written. Entries that would escape dest are rejected.
func unzipPunkt(r io.ReaderAt, size int64, dest string) (int, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return 0, fmt.Errorf("opening archive: %w", err)
	}

	written := 0
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasPrefix(f.Name, punktDir+"/") {
			continue
		}
		target := filepath.Join(dest, filepath.FromSlash(f.Name))
		if !within(dest, target) {
			return written, fmt.Errorf("archive entry %q escapes %s", f.Name, dest)
		}
		if err := extractFile(f, target); err != nil {
			return written, err
		}
		written++
	}
	if written == 0 {
		return 0, fmt.Errorf("%w: archive contains no %s entries", ErrNoData, punktDir)
	}
	return written, nil
}

// within reports whether target lies inside dir, including when dir is a
// relative path such as ".".
func within(dir, target string) bool {
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
	}
	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("reading %s: %w", f.Name, err)
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return dst.Close()
}

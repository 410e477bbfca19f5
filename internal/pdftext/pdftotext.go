// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const binPdftotext = "pdftotext"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	return cmd.Run()
}

var defaultExec executor = &osExecutor{}

// PdftotextExtractor shells out to poppler's pdftotext. pdftotext writes a
// form feed after every page; those are dropped so pages are concatenated
// without a separator.
type PdftotextExtractor struct {
	bin  string
	exec executor
	log  *zap.Logger
}

// NewPdftotextExtractor verifies that bin (default "pdftotext") is on PATH.
func NewPdftotextExtractor(bin string, log *zap.Logger) (*PdftotextExtractor, error) {
	return newPdftotextExtractor(bin, defaultExec, log)
}

func newPdftotextExtractor(bin string, exec executor, log *zap.Logger) (*PdftotextExtractor, error) {
	if bin == "" {
		bin = binPdftotext
	}
	if log == nil {
		log = zap.NewNop()
	}
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("%s not available: %w", bin, err)
	}
	return &PdftotextExtractor{bin: bin, exec: exec, log: log}, nil
}

// Extract validates path and runs "pdftotext -enc UTF-8 <path> -".
func (p *PdftotextExtractor) Extract(path string) (string, error) {
	if err := Validate(path); err != nil {
		return "", err
	}
	size, err := fileSize(path)
	if err != nil {
		return "", fmt.Errorf("%w %s: %v", ErrParse, path, err)
	}
	if size == 0 {
		return "", fmt.Errorf("%w %s: empty file", ErrParse, path)
	}

	var out bytes.Buffer
	args := []string{"-enc", "UTF-8", operand(path), "-"}
	if err := p.exec.RunPiped(p.bin, args, nil, &out); err != nil {
		return "", fmt.Errorf("%w %s with %s: %v", ErrParse, path, p.bin, err)
	}

	pages := strings.Split(out.String(), "\f")
	text := strings.Join(pages, "")
	p.log.Debug("extracted text",
		zap.String("path", path),
		zap.String("backend", p.bin),
		zap.Int("pages", len(pages)-1),
		zap.Int("chars", len(text)),
	)
	return text, nil
}

// operand keeps a path that starts with "-" from being parsed as a flag.
func operand(path string) string {
	if strings.HasPrefix(path, "-") {
		return "." + string(filepath.Separator) + path
	}
	return path
}

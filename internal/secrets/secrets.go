// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file holds one secret: the file name is the key and the trimmed
// contents are the value.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Key names recognised by pdfsum.
const (
	HuggingFaceAPIKey = "huggingface-api-key"
)

// hfTokenEnv is the variable the Hugging Face tooling reads its token from.
const hfTokenEnv = "HF_TOKEN"

// Load reads all files in dir and returns a map of file name to trimmed
// contents. A missing directory yields an empty map. Unreadable files are
// logged and skipped.
func Load(dir string, log *zap.Logger) (map[string]string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("could not read secret", zap.String("name", name), zap.Error(err))
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}
	return secrets, nil
}

// HuggingFaceToken returns the Hugging Face API token from secrets, or from
// the HF_TOKEN environment variable when no secret file provides one.
func HuggingFaceToken(secrets map[string]string) string {
	if v := secrets[HuggingFaceAPIKey]; v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv(hfTokenEnv))
}

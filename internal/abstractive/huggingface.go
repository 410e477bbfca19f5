// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package abstractive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/pdfsum/internal/httputil"
	"github.com/pdiddy/pdfsum/pkg/types"
)

// HuggingFace calls the Hugging Face Inference API summarization task.
type HuggingFace struct {
	client     *http.Client
	endpoint   string
	model      string
	apiKey     string
	userAgent  string
	maxRetries int
	log        *zap.Logger
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

type hfSummary struct {
	SummaryText string `json:"summary_text"`
}

type hfError struct {
	Error string `json:"error"`
}

// NewHuggingFace creates a backend for cfg.Model at cfg.Endpoint.
func NewHuggingFace(cfg types.AbstractiveConfig, log *zap.Logger) *HuggingFace {
	if log == nil {
		log = zap.NewNop()
	}
	h := &HuggingFace{
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
		log:        log,
	}
	if h.endpoint == "" {
		h.endpoint = types.DefaultHFEndpoint
	}
	if h.model == "" {
		h.model = types.DefaultModel
	}
	if h.userAgent == "" {
		h.userAgent = types.DefaultUserAgent
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = types.DefaultTimeout
	}
	h.client = httputil.NewClient(timeout, false)
	return h
}

// Name implements Backend.
func (h *HuggingFace) Name() string { return "huggingface:" + h.model }

// Generate implements Backend. Sampling is always off so the same input
// yields the same summary.
func (h *HuggingFace) Generate(ctx context.Context, text string, p Params) (string, error) {
	body, err := json.Marshal(hfRequest{
		Inputs: text,
		Parameters: hfParameters{
			MaxLength: p.MaxLength,
			MinLength: p.MinLength,
			DoSample:  false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	url := h.endpoint + "/" + h.model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if h.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.apiKey)
	}

	resp, err := httputil.DoWithRetry(ctx, h.client, req, h.maxRetries, h.log)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr hfError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return "", fmt.Errorf("%s returned HTTP %d: %s", url, resp.StatusCode, apiErr.Error)
		}
		return "", fmt.Errorf("%s returned HTTP %d", url, resp.StatusCode)
	}

	var out []hfSummary
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(out) == 0 {
		return "", ErrEmptySummary
	}
	return out[0].SummaryText, nil
}

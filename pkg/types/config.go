// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pdfsum/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ExtractBackend identifies the PDF text extraction tool.
type ExtractBackend string

const (
	ExtractNative    ExtractBackend = "native"
	ExtractPdftotext ExtractBackend = "pdftotext"
)

// ExtractConfig holds settings for PDF text extraction.
type ExtractConfig struct {
	// Backend selects the extractor: native or pdftotext.
	Backend ExtractBackend `json:"backend" yaml:"backend"`

	// PdftotextBin is the pdftotext binary name or path (default "pdftotext").
	PdftotextBin string `json:"pdftotext_bin,omitempty" yaml:"pdftotext_bin,omitempty"`
}

// TokenizerConfig holds settings for the sentence tokenizer data download.
type TokenizerConfig struct {
	HTTPConfig `yaml:",inline"`

	// DataDir is where the Punkt tables are unpacked
	// (default ~/.cache/pdfsum/nltk_data).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// URL is the punkt_tab.zip archive location.
	URL string `json:"url" yaml:"url"`

	// InsecureSkipVerify disables TLS certificate verification for the
	// download client only. Off unless explicitly requested.
	InsecureSkipVerify bool `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

// ExtractiveMethod selects the sentence ranking algorithm.
type ExtractiveMethod string

const (
	MethodLexRank ExtractiveMethod = "lexrank"
	MethodTFIDF   ExtractiveMethod = "tfidf"
)

// ExtractiveConfig holds settings for extractive summarization (the run command).
type ExtractiveConfig struct {
	// Sentences is the number of sentences to select (default 5).
	Sentences int `json:"sentences" yaml:"sentences"`

	// Method is the ranking algorithm: lexrank or tfidf.
	Method ExtractiveMethod `json:"method" yaml:"method"`

	// Language is the ISO code of the document language: en or es.
	Language string `json:"language" yaml:"language"`

	// Keywords is how many keywords to extract and store; 0 disables it.
	Keywords int `json:"keywords" yaml:"keywords"`
}

// AbstractiveBackend identifies the model host for abstractive summaries.
type AbstractiveBackend string

const (
	BackendHuggingFace AbstractiveBackend = "huggingface"
	BackendOllama      AbstractiveBackend = "ollama"
)

// AbstractiveConfig holds settings for abstractive summarization (the abstract command).
type AbstractiveConfig struct {
	HTTPConfig `yaml:",inline"`

	// Backend selects the model host: huggingface or ollama.
	Backend AbstractiveBackend `json:"backend" yaml:"backend"`

	// Model is the pretrained model name (e.g. "facebook/bart-large-cnn").
	Model string `json:"model" yaml:"model"`

	// Endpoint is the base URL of the model host.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// APIKey authenticates against the model host, if it needs one.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxLength and MinLength bound the summary in model tokens (150 and 50).
	MaxLength int `json:"max_length" yaml:"max_length"`
	MinLength int `json:"min_length" yaml:"min_length"`

	// InputTokenLimit is the model's input window. Longer input is truncated
	// by the model host; a warning is logged.
	InputTokenLimit int `json:"input_token_limit" yaml:"input_token_limit"`

	// MaxRetries is the number of retry attempts on 429/503 responses.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// PDFPath is the document summarized by the abstract command.
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`
}

// StoreConfig holds the location of the summary sidecar file and its index.
type StoreConfig struct {
	// Path is the JSON store file (default "summaries.json" in the working directory).
	Path string `json:"path" yaml:"path"`

	// IndexPath is the SQLite search index (default ".pdfsum/index.db").
	IndexPath string `json:"index_path" yaml:"index_path"`
}

// Defaults for every stage.
const (
	DefaultSentences       = 5
	DefaultLanguage        = "en"
	DefaultStorePath       = "summaries.json"
	DefaultIndexPath       = ".pdfsum/index.db"
	DefaultTokenizerURL    = "https://raw.githubusercontent.com/nltk/nltk_data/gh-pages/packages/tokenizers/punkt_tab.zip"
	DefaultModel           = "facebook/bart-large-cnn"
	DefaultOllamaModel     = "llama3.2"
	DefaultHFEndpoint      = "https://router.huggingface.co/hf-inference/models"
	DefaultOllamaEndpoint  = "http://localhost:11434"
	DefaultMaxLength       = 150
	DefaultMinLength       = 50
	DefaultInputTokenLimit = 1024
	DefaultAbstractPDF     = "../resources/Frankenstein.pdf"
	DefaultUserAgent       = "pdfsum/0.1"
	DefaultTimeout         = 120 * time.Second
)

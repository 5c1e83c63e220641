package types

import "time"

// LogConfig controls the structured logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// JSON switches the log formatter from text to JSON lines.
	JSON bool `json:"json" yaml:"json" mapstructure:"json"`
}

// ResolveConfig holds settings for path discovery.
type ResolveConfig struct {
	// Exclude lists doublestar glob patterns. A discovered file whose path or
	// base name matches any pattern is skipped.
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty" mapstructure:"exclude"`
}

// ExtractConfig holds settings for the extraction backends.
type ExtractConfig struct {
	// MarkitdownImage is the container image used for spreadsheets, ebooks,
	// Outlook messages and audio (e.g. "markitdown:latest"). Empty disables
	// the markitdown backend.
	MarkitdownImage string `json:"markitdown_image,omitempty" yaml:"markitdown_image,omitempty" mapstructure:"markitdown_image"`

	// TikaURL is the base URL of an Apache Tika server
	// (e.g. "http://localhost:9998"). Empty disables the Tika fallback.
	TikaURL string `json:"tika_url,omitempty" yaml:"tika_url,omitempty" mapstructure:"tika_url"`

	// Timeout bounds a single Tika HTTP request (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// MaxRetries is the number of 429 retries against Tika (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// TesseractLang is passed to tesseract via -l (default "eng").
	TesseractLang string `json:"tesseract_lang" yaml:"tesseract_lang" mapstructure:"tesseract_lang"`
}

// ConversionBackend identifies the HTML-to-Markdown tool.
type ConversionBackend string

const (
	BackendNative ConversionBackend = "native"
	BackendPandoc ConversionBackend = "pandoc"
)

// ConvertConfig holds settings for Markdown normalization.
type ConvertConfig struct {
	// Backend selects the converter: native (pure Go) or pandoc.
	Backend ConversionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// PandocBin overrides the pandoc executable name or path.
	PandocBin string `json:"pandoc_bin,omitempty" yaml:"pandoc_bin,omitempty" mapstructure:"pandoc_bin"`
}

// ChunkConfig holds settings for the chunking stage.
type ChunkConfig struct {
	// Method is paragraph or sentence (default paragraph).
	Method string `json:"method" yaml:"method" mapstructure:"method"`
}

// StoreConfig holds settings for the optional SQLite chunk store.
type StoreConfig struct {
	// Path is the SQLite database file. Empty disables persistence.
	Path string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`
}

// Config groups all stage configurations.
type Config struct {
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
	Resolve ResolveConfig `json:"resolve" yaml:"resolve" mapstructure:"resolve"`
	Extract ExtractConfig `json:"extract" yaml:"extract" mapstructure:"extract"`
	Convert ConvertConfig `json:"convert" yaml:"convert" mapstructure:"convert"`
	Chunk   ChunkConfig   `json:"chunk" yaml:"chunk" mapstructure:"chunk"`
	Store   StoreConfig   `json:"store" yaml:"store" mapstructure:"store"`
}

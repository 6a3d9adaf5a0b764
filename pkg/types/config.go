// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"net/url"
	"time"
)

// Defaults applied by DefaultConfig.
const (
	DefaultBaseURL           = "https://www.sefaria.org/api"
	DefaultUserAgent         = "clean-bible/1.0"
	DefaultTimeout           = 30 * time.Second
	DefaultRequestsPerSecond = 2.0
	DefaultChapterDelay      = 500 * time.Millisecond
	DefaultOutputDir         = "clean_downloads"
	DefaultLogLevel          = "info"
)

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// BaseURL is the root of the Sefaria API (e.g. "https://www.sefaria.org/api").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Timeout is the HTTP request timeout. A request that exceeds it is
	// reported as a timeout failure rather than a generic transport error.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// RequestsPerSecond caps the request rate across all calls made by one
	// client. Zero disables the limiter.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// DownloadConfig holds settings for chapter and book downloads.
type DownloadConfig struct {
	// ChapterDelay is the pause between consecutive chapter requests
	// during whole-book aggregation (default 500ms).
	ChapterDelay time.Duration `json:"chapter_delay" yaml:"chapter_delay"`

	// OutputDir is the directory cleaned text files are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// WriteManifest controls whether a YAML manifest is written next to
	// the text files.
	WriteManifest bool `json:"write_manifest" yaml:"write_manifest"`
}

// Config groups everything the pipeline needs. It is assembled once at
// startup and passed by value; nothing mutates it afterwards.
type Config struct {
	HTTP     HTTPConfig     `json:"http" yaml:"http"`
	Download DownloadConfig `json:"download" yaml:"download"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level"`

	// BookAliases maps extra user-facing names to canonical Sefaria book
	// identifiers, on top of the built-in table.
	BookAliases map[string]string `json:"books,omitempty" yaml:"books,omitempty"`
}

// DefaultConfig returns the configuration used when no file, environment
// variable, or flag overrides a value.
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			BaseURL:           DefaultBaseURL,
			Timeout:           DefaultTimeout,
			UserAgent:         DefaultUserAgent,
			RequestsPerSecond: DefaultRequestsPerSecond,
		},
		Download: DownloadConfig{
			ChapterDelay: DefaultChapterDelay,
			OutputDir:    DefaultOutputDir,
		},
		LogLevel: DefaultLogLevel,
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.HTTP.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url %q: must be an absolute http(s) URL", c.HTTP.BaseURL)
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("invalid timeout %v: must be positive", c.HTTP.Timeout)
	}
	if c.HTTP.RequestsPerSecond < 0 {
		return fmt.Errorf("invalid requests_per_second %v: must not be negative", c.HTTP.RequestsPerSecond)
	}
	if c.Download.ChapterDelay < 0 {
		return fmt.Errorf("invalid chapter_delay %v: must not be negative", c.Download.ChapterDelay)
	}
	if c.Download.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	return nil
}

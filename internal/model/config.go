package model

import "time"

// Config holds all tunables for a moderation session.
// Hierarchy: CLI flags > DOPPEL_* env vars > config file > defaults.
type Config struct {
	HTTP        HTTPConfig        `json:"http" yaml:"http"`
	Cache       CacheConfig       `json:"cache" yaml:"cache"`
	Concurrency ConcurrencyConfig `json:"concurrency" yaml:"concurrency"`
	Similarity  SimilarityConfig  `json:"similarity" yaml:"similarity"`
	Suppression SuppressionConfig `json:"suppression" yaml:"suppression"`
	LLM         LLMConfig         `json:"llm" yaml:"llm"`
	Output      OutputConfig      `json:"output" yaml:"output"`
}

// HTTPConfig controls the optional article-body fetcher.
type HTTPConfig struct {
	Timeout        time.Duration `json:"timeout" yaml:"timeout"`
	UserAgent      string        `json:"user_agent" yaml:"userAgent"`
	MaxBodyBytes   int64         `json:"max_body_bytes" yaml:"maxBodyBytes"`
	RequestsPerSec float64       `json:"requests_per_sec" yaml:"requestsPerSec"`
	Burst          int           `json:"burst" yaml:"burst"`
}

// CacheConfig controls caching of fetched article bodies.
type CacheConfig struct {
	Enabled bool          `json:"enabled" yaml:"enabled"`
	TTL     time.Duration `json:"ttl" yaml:"ttl"`
}

// ConcurrencyConfig controls worker pool sizes.
type ConcurrencyConfig struct {
	FingerprintWorkers int `json:"fingerprint_workers" yaml:"fingerprintWorkers"`
	FetchWorkers       int `json:"fetch_workers" yaml:"fetchWorkers"`
}

// SimilarityConfig carries the scoring gates and the index match
// threshold. The defaults were tuned against the capitalized-phrase
// entity heuristic; change them together or not at all.
type SimilarityConfig struct {
	MatchThreshold float64 `json:"match_threshold" yaml:"matchThreshold"`
}

// SuppressionConfig controls the recently-deleted memory.
type SuppressionConfig struct {
	Window        time.Duration `json:"window" yaml:"window"`
	SweepInterval time.Duration `json:"sweep_interval" yaml:"sweepInterval"`
}

// LLMConfig configures the optional cluster summarizer.
type LLMConfig struct {
	Provider  string `json:"provider,omitempty" yaml:"provider"` // "" disables
	Model     string `json:"model,omitempty" yaml:"model"`
	APIKey    string `json:"-" yaml:"-"`
	BaseURL   string `json:"base_url,omitempty" yaml:"baseUrl"`
	MaxTokens int    `json:"max_tokens" yaml:"maxTokens"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `json:"verbose" yaml:"verbose"`
	IncludeFooter bool `json:"include_footer" yaml:"includeFooter"`
}

// DefaultConfig returns the defaults the CLI starts from.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:        30 * time.Second,
			UserAgent:      "Doppel/0.1 (+https://github.com/newsroom-tools/doppel)",
			MaxBodyBytes:   2_000_000,
			RequestsPerSec: 2,
			Burst:          5,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     1 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			FingerprintWorkers: 4,
			FetchWorkers:       4,
		},
		Similarity: SimilarityConfig{
			MatchThreshold: 0.7,
		},
		Suppression: SuppressionConfig{
			Window:        24 * time.Hour,
			SweepInterval: 1 * time.Hour,
		},
		LLM: LLMConfig{
			MaxTokens: 1000,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

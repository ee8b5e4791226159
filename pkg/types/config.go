package types

import "time"

// SimilarityStrategy selects the matcher's scoring algorithm.
type SimilarityStrategy string

const (
	StrategyLexical   SimilarityStrategy = "lexical"
	StrategyEmbedding SimilarityStrategy = "embedding"
)

// ExtractionConfig holds settings for the text extraction stage.
type ExtractionConfig struct {
	// MaxBytes caps the accepted upload size (default 50 MiB).
	MaxBytes int64 `json:"max_bytes" yaml:"max_bytes"`
}

// SegmentConfig holds settings for the metadata segmentation stage.
type SegmentConfig struct {
	// AbstractCap limits the abstract span when no closing marker is found
	// (default 1500 runes).
	AbstractCap int `json:"abstract_cap" yaml:"abstract_cap"`
}

// ClassifierConfig holds settings for the subject classification stage.
type ClassifierConfig struct {
	// TaxonomyFile is an optional YAML file replacing the built-in subject
	// taxonomy without a code change.
	TaxonomyFile string `json:"taxonomy_file,omitempty" yaml:"taxonomy_file,omitempty"`

	// TopK restricts the distribution to the K highest subjects; zero
	// means unrestricted.
	TopK int `json:"top_k" yaml:"top_k"`
}

// CatalogConfig holds settings for the conference catalog loader.
type CatalogConfig struct {
	// SatelliteFilterEnabled excludes records whose conference name lacks
	// the satellite marker. In this domain the satellite symposia accept
	// papers while the main events do not.
	SatelliteFilterEnabled bool `json:"satellite_filter_enabled" yaml:"satellite_filter_enabled"`

	// SatelliteMarker is the case-insensitive substring that identifies a
	// paper-accepting satellite event (default "symposium").
	SatelliteMarker string `json:"satellite_marker" yaml:"satellite_marker"`
}

// EmbeddingConfig holds settings for the remote embedding service used by
// the embedding similarity strategy.
type EmbeddingConfig struct {
	// Endpoint is the embeddings API URL (OpenAI-compatible POST body).
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// Model is the embedding model identifier.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// APIKey is the bearer token for the embeddings API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Timeout bounds each embeddings request (default 15s). The matcher
	// falls back to the lexical strategy when the service is unreachable.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with requests
	// (e.g. "confmatch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// MatchConfig holds settings for the matching stage.
type MatchConfig struct {
	// TopN is the maximum number of recommendations returned (default 5).
	TopN int `json:"top_n" yaml:"top_n"`

	// Strategy selects lexical or embedding similarity (default lexical).
	Strategy SimilarityStrategy `json:"strategy" yaml:"strategy"`

	// FullTextFallbackRunes switches the paper representation from the
	// segmented title+abstract+keywords to the full extracted text when
	// the segmented concatenation is shorter than this many runes
	// (default 40).
	FullTextFallbackRunes int `json:"full_text_fallback_runes" yaml:"full_text_fallback_runes"`

	Embedding EmbeddingConfig `json:"embedding" yaml:"embedding"`
}

// SessionConfig holds settings for session-scoped state.
type SessionConfig struct {
	// Dir is the base directory for per-session databases
	// (default "sessions/").
	Dir string `json:"dir" yaml:"dir"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Segment    SegmentConfig    `json:"segment" yaml:"segment"`
	Classifier ClassifierConfig `json:"classifier" yaml:"classifier"`
	Catalog    CatalogConfig    `json:"catalog" yaml:"catalog"`
	Match      MatchConfig      `json:"match" yaml:"match"`
	Session    SessionConfig    `json:"session" yaml:"session"`
}

// DefaultPipelineConfig returns the configuration used when no config file
// or flags override a setting.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Extraction: ExtractionConfig{MaxBytes: 50 << 20},
		Segment:    SegmentConfig{AbstractCap: 1500},
		Classifier: ClassifierConfig{},
		Catalog: CatalogConfig{
			SatelliteFilterEnabled: true,
			SatelliteMarker:        "symposium",
		},
		Match: MatchConfig{
			TopN:                  5,
			Strategy:              StrategyLexical,
			FullTextFallbackRunes: 40,
			Embedding: EmbeddingConfig{
				Timeout:   15 * time.Second,
				UserAgent: "confmatch/0.1",
			},
		},
		Session: SessionConfig{Dir: "sessions"},
	}
}

// Package config provides typed, validated configuration for the
// graphhansard engine: resolver thresholds, extractor context settings,
// and graph metric parameters.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/caribdigital/graphhansard/errors"
)

// SpeakerFilterPrecedence controls how deictic resolution orders its two
// candidate filters when both apply: the affiliation filter implied by the
// pattern ("my honourable friend" = same party) and plain recency.
type SpeakerFilterPrecedence string

const (
	// AffiliationFirst filters the speaker history by affiliation, then
	// picks the most recent speaker in the filtered set. If the filter
	// empties the set, resolution falls back to pure recency.
	AffiliationFirst SpeakerFilterPrecedence = "affiliation_first"

	// RecencyFirst picks the most recent prior speaker and only accepts it
	// when it satisfies the affiliation filter.
	RecencyFirst SpeakerFilterPrecedence = "recency_first"
)

// IsValid checks if the precedence is one of the defined constants.
func (p SpeakerFilterPrecedence) IsValid() bool {
	return p == AffiliationFirst || p == RecencyFirst
}

// ResolverConfig holds alias resolution settings
type ResolverConfig struct {
	// FuzzyThreshold is the minimum token-sort similarity score (0-100)
	// for a fuzzy match to be accepted
	FuzzyThreshold int `yaml:"fuzzy_threshold" json:"fuzzy_threshold"`

	// CoreferenceConfidence is the fixed confidence assigned to deictic
	// resolutions, reflecting heuristic uncertainty
	CoreferenceConfidence float64 `yaml:"coreference_confidence" json:"coreference_confidence"`

	// SpeakerWindow is the number of prior speaker turns consulted for
	// deictic resolution
	SpeakerWindow int `yaml:"speaker_window" json:"speaker_window"`

	// FilterPrecedence orders affiliation filtering against recency when
	// both apply to a deictic pattern
	FilterPrecedence SpeakerFilterPrecedence `yaml:"filter_precedence" json:"filter_precedence"`

	// NormalizeDialect applies Bahamian Creole normalization (TH-stopping,
	// local vowel shifts) to mention text before matching
	NormalizeDialect bool `yaml:"normalize_dialect" json:"normalize_dialect"`
}

// ExtractorConfig holds mention extraction settings
type ExtractorConfig struct {
	// ContextSentences is the number of sentences captured on each side of
	// a mention span for the audit context window
	ContextSentences int `yaml:"context_sentences" json:"context_sentences"`
}

// EigenvectorConfig holds power-iteration settings for eigenvector centrality
type EigenvectorConfig struct {
	MaxIterations int     `yaml:"max_iterations" json:"max_iterations"`
	Tolerance     float64 `yaml:"tolerance" json:"tolerance"`
}

// CommunityConfig holds community detection settings
type CommunityConfig struct {
	// Enabled toggles label-propagation community detection
	Enabled bool `yaml:"enabled" json:"enabled"`

	// MinNodes is the smallest graph for which detection is attempted;
	// below it all community ids stay nil and no modularity is reported
	MinNodes int `yaml:"min_nodes" json:"min_nodes"`

	MaxIterations int `yaml:"max_iterations" json:"max_iterations"`
}

// RoleThresholds holds the percentile cutoffs for structural role labels
type RoleThresholds struct {
	// ForceMultiplierPercentile is the eigenvector centrality percentile
	// at or above which a node is labelled force_multiplier
	ForceMultiplierPercentile float64 `yaml:"force_multiplier_percentile" json:"force_multiplier_percentile"`

	// BridgePercentile is the betweenness centrality percentile for bridge
	BridgePercentile float64 `yaml:"bridge_percentile" json:"bridge_percentile"`

	// HubPercentile is the in-degree percentile for hub
	HubPercentile float64 `yaml:"hub_percentile" json:"hub_percentile"`
}

// GraphConfig holds graph building and metric settings
type GraphConfig struct {
	Roles       RoleThresholds    `yaml:"roles" json:"roles"`
	Eigenvector EigenvectorConfig `yaml:"eigenvector" json:"eigenvector"`
	Community   CommunityConfig   `yaml:"community" json:"community"`
}

// Config represents the complete engine configuration
type Config struct {
	Resolver  ResolverConfig  `yaml:"resolver" json:"resolver"`
	Extractor ExtractorConfig `yaml:"extractor" json:"extractor"`
	Graph     GraphConfig     `yaml:"graph" json:"graph"`
}

// Default returns the engine configuration defaults
func Default() *Config {
	return &Config{
		Resolver: ResolverConfig{
			FuzzyThreshold:        85,
			CoreferenceConfidence: 0.8,
			SpeakerWindow:         5,
			FilterPrecedence:      AffiliationFirst,
			NormalizeDialect:      true,
		},
		Extractor: ExtractorConfig{
			ContextSentences: 1,
		},
		Graph: GraphConfig{
			Roles: RoleThresholds{
				ForceMultiplierPercentile: 80,
				BridgePercentile:          75,
				HubPercentile:             90,
			},
			Eigenvector: EigenvectorConfig{
				MaxIterations: 100,
				Tolerance:     1e-6,
			},
			Community: CommunityConfig{
				Enabled:       true,
				MinNodes:      4,
				MaxIterations: 100,
			},
		},
	}
}

// LoadFile reads a YAML configuration file, layering it over defaults
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFatal(err, "Config", "LoadFile", "read file")
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WrapFatal(err, "Config", "LoadFile", "parse yaml")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks all configuration values and returns the first problem found
func (c *Config) Validate() error {
	if c.Resolver.FuzzyThreshold < 0 || c.Resolver.FuzzyThreshold > 100 {
		return invalid(fmt.Sprintf("fuzzy_threshold must be in [0,100], got %d", c.Resolver.FuzzyThreshold))
	}
	if c.Resolver.CoreferenceConfidence < 0 || c.Resolver.CoreferenceConfidence > 1 {
		return invalid(fmt.Sprintf("coreference_confidence must be in [0,1], got %g", c.Resolver.CoreferenceConfidence))
	}
	if c.Resolver.SpeakerWindow < 1 {
		return invalid(fmt.Sprintf("speaker_window must be >= 1, got %d", c.Resolver.SpeakerWindow))
	}
	if !c.Resolver.FilterPrecedence.IsValid() {
		return invalid(fmt.Sprintf("unknown filter_precedence %q", c.Resolver.FilterPrecedence))
	}
	if c.Extractor.ContextSentences < 0 {
		return invalid(fmt.Sprintf("context_sentences must be >= 0, got %d", c.Extractor.ContextSentences))
	}

	for _, p := range []struct {
		name  string
		value float64
	}{
		{"force_multiplier_percentile", c.Graph.Roles.ForceMultiplierPercentile},
		{"bridge_percentile", c.Graph.Roles.BridgePercentile},
		{"hub_percentile", c.Graph.Roles.HubPercentile},
	} {
		if p.value < 0 || p.value > 100 {
			return invalid(fmt.Sprintf("%s must be in [0,100], got %g", p.name, p.value))
		}
	}

	if c.Graph.Eigenvector.MaxIterations < 1 {
		return invalid(fmt.Sprintf("eigenvector max_iterations must be >= 1, got %d", c.Graph.Eigenvector.MaxIterations))
	}
	if c.Graph.Eigenvector.Tolerance <= 0 {
		return invalid(fmt.Sprintf("eigenvector tolerance must be > 0, got %g", c.Graph.Eigenvector.Tolerance))
	}
	if c.Graph.Community.MinNodes < 2 {
		return invalid(fmt.Sprintf("community min_nodes must be >= 2, got %d", c.Graph.Community.MinNodes))
	}
	if c.Graph.Community.MaxIterations < 1 {
		return invalid(fmt.Sprintf("community max_iterations must be >= 1, got %d", c.Graph.Community.MaxIterations))
	}

	return nil
}

// Clone returns a deep copy of the configuration
func (c *Config) Clone() *Config {
	copied := *c
	return &copied
}

func invalid(msg string) error {
	return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate", msg)
}

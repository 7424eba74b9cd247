package scoring

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Maturity tier priors applied per knowledge-base document. Curated
// documents ship under a reserved id prefix; user uploads follow the
// upload naming convention and carry less weight.
const (
	curatedDocPrefix = "kb-core-"
	uploadDocPrefix  = "upload-"

	tierCurated = 85
	tierUpload  = 60
	tierDefault = 70
)

// MaturityConfig resolves the ecosystemMaturity prior for a document.
// Overrides win over the id-prefix conventions.
type MaturityConfig struct {
	// Overrides maps a document id to a fixed tier in [0,100].
	Overrides map[string]int `yaml:"overrides"`
}

// DefaultMaturityConfig returns the convention-only configuration.
func DefaultMaturityConfig() MaturityConfig {
	return MaturityConfig{}
}

// LoadMaturityConfig reads tier overrides from a YAML file. Every
// override must be within [0,100].
func LoadMaturityConfig(path string) (MaturityConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MaturityConfig{}, fmt.Errorf("reading maturity config: %w", err)
	}

	var cfg MaturityConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return MaturityConfig{}, fmt.Errorf("parsing maturity config: %w", err)
	}
	for id, tier := range cfg.Overrides {
		if tier < 0 || tier > 100 {
			return MaturityConfig{}, fmt.Errorf("maturity override for %q out of range: %d", id, tier)
		}
	}
	return cfg, nil
}

// TierFor returns the maturity prior for a document id.
func (c MaturityConfig) TierFor(documentID string) int {
	if tier, ok := c.Overrides[documentID]; ok {
		return tier
	}
	switch {
	case strings.HasPrefix(documentID, curatedDocPrefix):
		return tierCurated
	case strings.HasPrefix(documentID, uploadDocPrefix):
		return tierUpload
	default:
		return tierDefault
	}
}

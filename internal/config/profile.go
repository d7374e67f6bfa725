package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/5w1tchy/wordlist-api/internal/generator"
)

// Profile holds CLI defaults read from a YAML file:
//
//	options:
//	  numbers: true
//	  special_chars: false
//	max_candidates: 500000
//	year: 2024
type Profile struct {
	Options       generator.Options `yaml:"options"`
	MaxCandidates int               `yaml:"max_candidates"`
	Year          int               `yaml:"year"`
}

// DefaultProfile enables every pass with no candidate bound.
func DefaultProfile() Profile {
	return Profile{Options: generator.DefaultOptions()}
}

// LoadProfile overlays the file at path on DefaultProfile. Keys missing
// from the file keep their defaults.
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()
	b, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if p.MaxCandidates < 0 {
		return p, fmt.Errorf("parse profile %s: max_candidates must be >= 0", path)
	}
	return p, nil
}

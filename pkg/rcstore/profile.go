package rcstore

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Profile is the YAML document describing a store's default entries.
//
//	entries:
//	  - key: PAGER
//	    kind: string
//	    default: "%{?USE_LESS}less%{else}more%{}"
//	    description: "Pager used for long output."
type Profile struct {
	// Entries are the default entries in declaration order.
	Entries []Entry `yaml:"entries" validate:"required,min=1,dive"`
}

// ParseProfile decodes and validates a profile document.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := validator.New().Struct(&p); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}
	for i := range p.Entries {
		if p.Entries[i].Kind == "" {
			p.Entries[i].Kind = KindString
		}
	}
	return &p, nil
}

// LoadProfile reads and parses a profile file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	return ParseProfile(data)
}

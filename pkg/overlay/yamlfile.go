package overlay

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLFile reads a flat YAML mapping of scalars. Non-string scalars
// are rendered with their YAML text (true, 42, 3.5); nested mappings
// and sequences are rejected, the overlay model is flat.
type YAMLFile struct{}

// Read implements Reader.
func (YAMLFile) Read(path string, merge map[string]string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return flatten(path, raw, merge)
}

func flatten(path string, raw map[string]any, merge map[string]string) error {
	for k, v := range raw {
		s, err := scalarString(v)
		if err != nil {
			return fmt.Errorf("%s: key %s: %w", path, k, err)
		}
		merge[k] = s
	}
	return nil
}

func scalarString(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v), nil
	default:
		return "", fmt.Errorf("unsupported nested value %T", v)
	}
}

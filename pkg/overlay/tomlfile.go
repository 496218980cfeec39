package overlay

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// TOMLFile reads a flat TOML document of scalar keys. Tables and
// arrays are rejected, the overlay model is flat.
type TOMLFile struct{}

// Read implements Reader.
func (TOMLFile) Read(path string, merge map[string]string) error {
	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return flatten(path, raw, merge)
}

package overlay

import (
	"path/filepath"
	"strings"
)

// Reader merges one overlay file into merge. Implementations treat a
// missing file as "no changes" and return nil; any other failure is
// reported to the caller.
type Reader interface {
	Read(path string, merge map[string]string) error
}

// Func adapts a function to the Reader interface.
type Func func(path string, merge map[string]string) error

// Read implements Reader.
func (f Func) Read(path string, merge map[string]string) error {
	return f(path, merge)
}

// ForPath dispatches on the file extension: .yaml/.yml and .toml go to
// their format readers, everything else is read as a shell-style rc
// file.
var ForPath Reader = Func(func(path string, merge map[string]string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLFile{}.Read(path, merge)
	case ".toml":
		return TOMLFile{}.Read(path, merge)
	default:
		return RCFile{}.Read(path, merge)
	}
})

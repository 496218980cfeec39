// Package overlay reads flat key/value configuration layers from files
// and merges them over an existing map.
//
// A Reader honors its own format's substitution and inclusion
// semantics and merges the result in priority order; a missing file is
// never an error, it simply contributes nothing. Three formats are
// provided: shell-style rc files (with $VAR substitution against the
// map being built and source inclusion), YAML and TOML. ForPath picks
// one by file extension.
//
// The package also carries a small fsnotify-based watcher used by the
// watch command to re-resolve configuration when a layer changes.
package overlay

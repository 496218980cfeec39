package rcstore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rclayer/rclayer/pkg/overlay"
	"github.com/rclayer/rclayer/pkg/scan"
)

// Default key names for the indirection prefix entries.
const (
	DefaultPrefixKey    = "VAR_PREFIX"
	DefaultAltPrefixKey = "DIFF_VAR_PREFIX"
)

// Options configures a Store. The zero value is usable: no overlays,
// the conventional prefix keys, the real environment.
type Options struct {
	// SystemFile is the system-wide overlay path. A missing file is
	// not an error; the layer contributes nothing.
	SystemFile string

	// UserFile is the per-user overlay path. When empty, UserDotfile
	// is consulted instead.
	UserFile string

	// UserDotfile names a file under $HOME used when UserFile is
	// empty. A missing HOME is warned about and the layer skipped.
	UserDotfile string

	// PrefixKey names the entry whose resolved value prefixes
	// indirect (%{*NAME}) references. Defaults to DefaultPrefixKey.
	PrefixKey string

	// AltPrefixKey names the second conventional prefix entry. Both
	// prefixes are used when auto-registering indirect targets, so
	// the target key exists no matter which prefix is active.
	// Defaults to DefaultAltPrefixKey.
	AltPrefixKey string

	// Reader merges overlay files into the working map. Defaults to
	// extension dispatch via overlay.ForPath.
	Reader overlay.Reader

	// LookupEnv overrides environment access, for tests. Defaults to
	// os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// Logger receives non-fatal diagnostics. Defaults to the global
	// zerolog logger.
	Logger *zerolog.Logger
}

// Store collects default entries and builds the resolved configuration.
// It is single-threaded and single-shot: call AddDefaults then Build
// once, and use the returned Config afterwards.
type Store struct {
	opts     Options
	defaults []*Entry
	index    map[string]*Entry
	logger   zerolog.Logger
}

// New creates a Store with the given options.
func New(opts Options) *Store {
	if opts.PrefixKey == "" {
		opts.PrefixKey = DefaultPrefixKey
	}
	if opts.AltPrefixKey == "" {
		opts.AltPrefixKey = DefaultAltPrefixKey
	}
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Store{
		opts:   opts,
		index:  make(map[string]*Entry),
		logger: logger.With().Str("component", "rcstore").Logger(),
	}
}

// AddDefault registers one default entry. Keys must be unique.
func (s *Store) AddDefault(e Entry) error {
	if e.Kind == "" {
		e.Kind = KindString
	}
	if _, dup := s.index[e.Key]; dup {
		return newResolveError(CodeDuplicateKey, e.Key, "default registered twice")
	}
	entry := e
	s.defaults = append(s.defaults, &entry)
	s.index[e.Key] = &entry
	return nil
}

// AddDefaults registers a list of default entries.
func (s *Store) AddDefaults(entries []Entry) error {
	for _, e := range entries {
		if err := s.AddDefault(e); err != nil {
			return err
		}
	}
	return nil
}

// Build runs the single-shot lifecycle: layer the overlays and the
// environment over the defaults, discover and auto-register delayed
// references, resolve every directive, and collapse %%{ escapes. The
// returned Config is independent of the Store.
func (s *Store) Build() (*Config, error) {
	merged := s.layer()
	hasDirectives := s.discover(merged)

	values := make(map[string]string, len(s.defaults))
	for _, e := range s.defaults {
		values[e.Key] = e.Value
	}

	r := &resolver{
		values:        values,
		hasDirectives: hasDirectives,
		prefixKey:     s.opts.PrefixKey,
	}
	for _, e := range s.defaults {
		visited := make(map[string]struct{})
		if _, err := r.resolve(e.Key, visited); err != nil {
			return nil, err
		}
	}

	for k, v := range values {
		values[k] = collapseEscapes(v)
	}

	entries := make([]Entry, len(s.defaults))
	for i, e := range s.defaults {
		entries[i] = *e
	}
	return &Config{
		values:    values,
		entries:   entries,
		prefixKey: s.opts.PrefixKey,
	}, nil
}

// layer produces the merged working map: defaults, then the system
// overlay, then the user overlay, then the environment. Each default's
// layered value is copied back onto the entry. The returned map also
// carries keys the overlays introduced beyond the defaults; those stay
// out of the final configuration unless indirection discovery claims
// them.
func (s *Store) layer() map[string]string {
	merged := make(map[string]string, len(s.defaults))
	for _, e := range s.defaults {
		merged[e.Key] = e.Default
	}

	reader := s.opts.Reader
	if reader == nil {
		reader = overlay.ForPath
	}
	if s.opts.SystemFile != "" {
		if err := reader.Read(s.opts.SystemFile, merged); err != nil {
			s.logger.Warn().Err(err).Str("path", s.opts.SystemFile).
				Msg("Skipping unreadable system overlay")
		}
	}
	if path := s.userPath(); path != "" {
		if err := reader.Read(path, merged); err != nil {
			s.logger.Warn().Err(err).Str("path", path).
				Msg("Skipping unreadable user overlay")
		}
	}

	for key := range merged {
		if v, ok := s.opts.LookupEnv(key); ok {
			merged[key] = v
		}
	}

	for _, e := range s.defaults {
		e.Value = merged[e.Key]
	}
	return merged
}

// userPath locates the user overlay, honoring UserFile over the
// HOME-relative dotfile.
func (s *Store) userPath() string {
	if s.opts.UserFile != "" {
		return s.opts.UserFile
	}
	if s.opts.UserDotfile == "" {
		return ""
	}
	home, ok := s.opts.LookupEnv("HOME")
	if !ok {
		s.logger.Warn().Msg("No $HOME found in environment")
		return ""
	}
	return filepath.Join(home, s.opts.UserDotfile)
}

// discover scans every entry for directives, fills the has-directives
// set, and auto-registers the targets of delayed references. New Local
// entries appended here are scanned in turn, so references inside
// overlay-provided values are honored too.
func (s *Store) discover(merged map[string]string) map[string]struct{} {
	hasDirectives := make(map[string]struct{})
	prefix := merged[s.opts.PrefixKey]
	altPrefix := merged[s.opts.AltPrefixKey]

	for i := 0; i < len(s.defaults); i++ {
		e := s.defaults[i]
		str := e.Value
		for pos := 0; ; {
			d := scan.Next(str, pos)
			if d.Kind == scan.NotFound {
				break
			}
			pos = d.Pos + d.Len
			switch d.Kind {
			case scan.Variable, scan.If, scan.Notif:
			default:
				continue
			}
			hasDirectives[e.Key] = struct{}{}
			name := d.Name(str)
			if strings.HasPrefix(name, "*") {
				// The active prefix is only known at resolve
				// time; register the target under both
				// conventional prefixes.
				s.joinDelayed(prefix+name[1:], merged)
				s.joinDelayed(altPrefix+name[1:], merged)
			} else {
				s.joinDelayed(name, merged)
			}
		}
	}
	return hasDirectives
}

// joinDelayed registers key as a Local entry unless it is already
// known, taking its value from the merged map, else from the
// environment, else empty.
func (s *Store) joinDelayed(key string, merged map[string]string) {
	if _, known := s.index[key]; known {
		return
	}
	var val string
	if v, ok := merged[key]; ok {
		// Overlay-provided keys were already overridden from the
		// environment during layering.
		val = v
	} else if v, ok := s.opts.LookupEnv(key); ok {
		val = v
	}
	entry := &Entry{Key: key, Kind: KindLocal, Value: val}
	s.defaults = append(s.defaults, entry)
	s.index[key] = entry
	merged[key] = val
}

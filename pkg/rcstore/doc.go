// Package rcstore builds and resolves layered rc-style configuration.
//
// # Overview
//
// A Store is seeded with defaults (usually from a profile file), layered
// with a system overlay, a user overlay and the process environment, and
// then resolved: every %{...} directive embedded in a value is expanded
// until only plain text remains. Build returns an immutable Config
// handle; the Store is not used afterwards.
//
// # Components
//
// Store: collects default entries and runs the single-shot Build
// lifecycle (layering, delayed resolution, escape normalization).
//
// Config: the resolved result. A read-only string map with typed
// accessors (GetBool, GetInt) and a defaults dump for diagnostics.
//
// Profile: the YAML format describing default entries (key, kind,
// default value, description), validated with struct tags.
//
// # Usage Example
//
//	store := rcstore.New(rcstore.Options{
//	    SystemFile:  "/etc/apprc",
//	    UserDotfile: ".apprc",
//	})
//	if err := store.AddDefaults(profile.Entries); err != nil {
//	    log.Fatal().Err(err).Msg("bad defaults")
//	}
//	cfg, err := store.Build()
//	if err != nil {
//	    log.Fatal().Err(err).Msg("config resolution failed")
//	}
//	fmt.Println(cfg.Get("PAGER"))
//
// # Resolution
//
// Values may reference each other with %{NAME}, branch with
// %{?NAME}...%{else}...%{} (or %{!NAME} for the negated test) and use
// one level of indirection with %{*NAME}, which reads the key named by
// the resolved prefix entry plus NAME. Cycles, stray %{} or %{else}
// markers, unterminated conditionals and doubled %{else} are fatal and
// reported as *ResolveError values; nothing in this package exits the
// process.
package rcstore

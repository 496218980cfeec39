// Package redflag parses the small grammar used by resolved
// configuration values that control how redundant or obsolete flags
// are reported.
//
// A value holds one or two rule atoms, optionally joined by "or",
// "||" or "|":
//
//	no | false
//	some | some-installed | some-uninstalled
//	all | all-installed | all-uninstalled
//
// each optionally preceded by '+' or '-'. The first atom is the
// primary rule, the second (when present) the secondary; a missing
// secondary gets the absent rule. Results accumulate into a Pair of
// bitmask atoms, one bit per check class, so the same Pair can be
// filled from several configuration keys. An unparsable value is not
// fatal: it is logged and replaced by the conservative default,
// "all-installed" with an absent secondary.
package redflag

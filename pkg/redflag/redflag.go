package redflag

import (
	"strings"

	"github.com/rs/zerolog"
)

// Redundant is a bitmask of redundancy check classes. Callers assign
// one bit per class and fill the same Pair from each class's
// configuration key.
type Redundant uint32

// Atom is one side of a reporting rule, accumulated per check class.
type Atom struct {
	// Red: the class is reported at all.
	Red Redundant

	// Only: the rule is restricted to installed or uninstalled
	// packages (direction in Oins).
	Only Redundant

	// Oins: with Only set, restrict to installed (set) or
	// uninstalled (clear).
	Oins Redundant

	// All: report only when every flag is redundant (as opposed to
	// some).
	All Redundant

	// Spc: the installed/uninstalled distinction applies (set by the
	// -installed/-uninstalled token suffixes).
	Spc Redundant

	// Ins: with Spc set, the suffix was -installed (set) or
	// -uninstalled (clear).
	Ins Redundant
}

// Pair is a two-sided rule: the primary applies first, the secondary
// refines it.
type Pair struct {
	Primary   Atom
	Secondary Atom
}

// setAbsent applies the absent rule: the class is not reported and
// carries no restriction.
func (a *Atom) setAbsent(bit Redundant) {
	a.Only &^= bit
	a.Red &^= bit
}

// set applies one token to the atom for the given class bit,
// reporting whether the token is part of the grammar.
func (a *Atom) set(token string, bit Redundant) bool {
	a.Only &^= bit
	switch {
	case strings.HasPrefix(token, "+"):
		token = token[1:]
		a.Only |= bit
		a.Oins |= bit
	case strings.HasPrefix(token, "-"):
		token = token[1:]
		a.Only |= bit
		a.Oins &^= bit
	}
	switch strings.ToLower(token) {
	case "no", "false":
		a.Red &^= bit
	case "some":
		a.Red |= bit
		a.All &^= bit
		a.Spc &^= bit
	case "some-installed":
		a.Red |= bit
		a.All &^= bit
		a.Spc |= bit
		a.Ins |= bit
	case "some-uninstalled":
		a.Red |= bit
		a.All &^= bit
		a.Spc |= bit
		a.Ins &^= bit
	case "all":
		a.Red |= bit
		a.All |= bit
		a.Spc &^= bit
	case "all-installed":
		a.Red |= bit
		a.All |= bit
		a.Spc |= bit
		a.Ins |= bit
	case "all-uninstalled":
		a.Red |= bit
		a.All |= bit
		a.Spc |= bit
		a.Ins &^= bit
	default:
		return false
	}
	return true
}

// Apply parses the resolved value of key for one check class and
// accumulates the result into p. Unparsable values are logged and
// replaced by the conservative default instead of failing.
func Apply(p *Pair, key, value string, bit Redundant, logger zerolog.Logger) {
	if apply(p, value, bit) {
		return
	}
	logger.Warn().
		Str("key", key).
		Str("value", value).
		Msg(`Unknown redundancy value, assuming "all-installed"`)
	p.Primary.set("all-installed", bit)
	p.Secondary.setAbsent(bit)
}

func apply(p *Pair, value string, bit Redundant) bool {
	tokens := strings.Fields(value)
	if len(tokens) == 0 {
		return false
	}
	if !p.Primary.set(tokens[0], bit) {
		return false
	}
	if len(tokens) == 1 {
		p.Secondary.setAbsent(bit)
		return true
	}
	i := 1
	if isSeparator(tokens[i]) {
		i++
		if i == len(tokens) {
			return false
		}
	}
	if !p.Secondary.set(tokens[i], bit) {
		return false
	}
	return i+1 == len(tokens)
}

func isSeparator(token string) bool {
	return strings.EqualFold(token, "or") || token == "||" || token == "|"
}

package scan

import "strings"

// Kind classifies a directive found in a configuration value.
type Kind int

const (
	// NotFound means no further directive exists in the string.
	NotFound Kind = iota

	// Variable is a plain substitution, %{NAME}.
	Variable

	// If opens a keep-if-true conditional, %{?NAME}.
	If

	// Notif opens a keep-if-false conditional, %{!NAME}.
	Notif

	// Else separates the branches of a conditional, %{else}.
	Else

	// Fi terminates a conditional block, %{}.
	Fi
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Variable:
		return "variable"
	case If:
		return "if"
	case Notif:
		return "notif"
	case Else:
		return "else"
	case Fi:
		return "fi"
	default:
		return "none"
	}
}

// Directive describes the span of one directive within a string.
// It is ephemeral: produced by Next and consumed immediately.
type Directive struct {
	// Pos is the byte offset of the opening '%', or -1 for NotFound.
	Pos int

	// Len is the byte length of the whole marker including the
	// closing '}'.
	Len int

	// Kind is the classification of the marker.
	Kind Kind
}

// Name returns the directive's name with the marker syntax stripped.
// For If/Notif the leading '?' or '!' is removed as well. Fi and
// NotFound have no name.
func (d Directive) Name(s string) string {
	switch d.Kind {
	case Variable, Else:
		return s[d.Pos+2 : d.Pos+d.Len-1]
	case If, Notif:
		return s[d.Pos+3 : d.Pos+d.Len-1]
	}
	return ""
}

// Next locates the next directive in s at or after offset start.
// Escaped openers (%%{) and markers that violate the name charset or
// lack a terminating '}' are skipped; they are not errors. Next never
// mutates s and keeps no state between calls.
func Next(s string, start int) Directive {
	pos := start
	for ; ; pos += 2 {
		if pos >= len(s) {
			return Directive{Pos: -1, Kind: NotFound}
		}
		rel := strings.Index(s[pos:], "%{")
		if rel < 0 {
			return Directive{Pos: -1, Kind: NotFound}
		}
		pos += rel
		if pos > 0 && s[pos-1] == '%' {
			// Escaped opener, decoded after resolution.
			continue
		}
		i := pos + 2
		c := byteAt(s, i)
		i++
		if c == '}' {
			return Directive{Pos: pos, Len: 3, Kind: Fi}
		}
		kind := Variable
		switch c {
		case '?':
			kind = If
			c = byteAt(s, i)
			i++
		case '!':
			kind = Notif
			c = byteAt(s, i)
			i++
		}
		if !nameStart(c) {
			continue
		}
		for {
			c = byteAt(s, i)
			i++
			if !namePart(c) {
				break
			}
		}
		if c != '}' {
			continue
		}
		if kind == Variable && strings.EqualFold(s[pos+2:i-1], "else") {
			kind = Else
		}
		return Directive{Pos: pos, Len: i - pos, Kind: kind}
	}
}

// byteAt reads s[i], yielding NUL past the end so the scanner can
// treat a truncated marker as a rejected candidate.
func byteAt(s string, i int) byte {
	if i < len(s) {
		return s[i]
	}
	return 0
}

func nameStart(c byte) bool {
	return c == '*' || c == '_' ||
		(c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func namePart(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

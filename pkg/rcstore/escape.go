package rcstore

import "strings"

// collapseEscapes rewrites %%{ to %{ in one left-to-right pass. It
// must run only after resolution: the scanner treats a doubled opener
// as "not a directive" and leaves it alone, so the escape survives
// intact until this point.
func collapseEscapes(s string) string {
	pos := 0
	for {
		i := strings.Index(s[pos:], "%%{")
		if i < 0 {
			return s
		}
		pos += i
		s = s[:pos] + s[pos+1:]
		pos += 2
	}
}

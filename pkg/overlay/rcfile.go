package overlay

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// RCFile reads shell-style rc files:
//
//	# comment
//	NAME=value
//	NAME="quoted $OTHER value"
//	NAME='literal, no substitution'
//	source other.rc
//
// Assignments merge into the map as they are read, and $NAME / ${NAME}
// substitution draws from that same map, so later lines see earlier
// assignments (and whatever the map already held). `source` and `.`
// include another file, resolved relative to the including file.
type RCFile struct{}

// Read implements Reader.
func (r RCFile) Read(path string, merge map[string]string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	lines := strings.Split(string(data), "\n")
	for n, line := range lines {
		if err := r.parseLine(path, line, merge); err != nil {
			return fmt.Errorf("%s:%d: %w", path, n+1, err)
		}
	}
	return nil
}

func (r RCFile) parseLine(path, line string, merge map[string]string) error {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return nil
	}

	if arg, ok := includeArg(line); ok {
		target, rest, err := lexValue(arg, merge)
		if err != nil {
			return err
		}
		if strings.TrimSpace(rest) != "" {
			return fmt.Errorf("trailing text after source path")
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		return r.Read(target, merge)
	}

	i := 0
	for i < len(line) && isNameByte(line[i], i == 0) {
		i++
	}
	if i == 0 || i >= len(line) || line[i] != '=' {
		return fmt.Errorf("expected NAME=value")
	}
	name := line[:i]
	value, rest, err := lexValue(line[i+1:], merge)
	if err != nil {
		return err
	}
	rest = strings.TrimSpace(rest)
	if rest != "" && rest[0] != '#' {
		return fmt.Errorf("unexpected text after value of %s", name)
	}
	merge[name] = value
	return nil
}

// includeArg recognizes `source PATH` and `. PATH` lines.
func includeArg(line string) (string, bool) {
	for _, kw := range []string{"source ", ". "} {
		if strings.HasPrefix(line, kw) {
			return strings.TrimSpace(line[len(kw):]), true
		}
	}
	return "", false
}

// lexValue consumes one value: a run of bare, single-quoted and
// double-quoted segments ending at unquoted whitespace or end of
// input. Bare and double-quoted segments substitute $NAME / ${NAME}
// from vars and honor backslash escapes; single quotes are literal.
func lexValue(s string, vars map[string]string) (value, rest string, err error) {
	var b strings.Builder
	i := 0
	for i < len(s) {
		switch c := s[i]; c {
		case ' ', '\t':
			return b.String(), s[i:], nil
		case '\'':
			end := strings.IndexByte(s[i+1:], '\'')
			if end < 0 {
				return "", "", fmt.Errorf("unterminated single quote")
			}
			b.WriteString(s[i+1 : i+1+end])
			i += end + 2
		case '"':
			i++
			for {
				if i >= len(s) {
					return "", "", fmt.Errorf("unterminated double quote")
				}
				if s[i] == '"' {
					i++
					break
				}
				if s[i] == '\\' && i+1 < len(s) {
					b.WriteByte(s[i+1])
					i += 2
					continue
				}
				if s[i] == '$' {
					i = substitute(s, i, vars, &b)
					continue
				}
				b.WriteByte(s[i])
				i++
			}
		case '\\':
			if i+1 < len(s) {
				b.WriteByte(s[i+1])
				i += 2
			} else {
				i++
			}
		case '$':
			i = substitute(s, i, vars, &b)
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), "", nil
}

// substitute expands the $NAME or ${NAME} starting at s[i], writing
// the variable's value (or nothing for unknown names) and returning
// the index past the reference. A lone '$' is literal.
func substitute(s string, i int, vars map[string]string, b *strings.Builder) int {
	j := i + 1
	braced := j < len(s) && s[j] == '{'
	if braced {
		j++
	}
	start := j
	for j < len(s) && isNameByte(s[j], j == start) {
		j++
	}
	if j == start {
		b.WriteByte('$')
		return i + 1
	}
	name := s[start:j]
	if braced {
		if j >= len(s) || s[j] != '}' {
			b.WriteByte('$')
			return i + 1
		}
		j++
	}
	b.WriteString(vars[name])
	return j
}

func isNameByte(c byte, first bool) bool {
	if c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
		return true
	}
	return !first && c >= '0' && c <= '9'
}

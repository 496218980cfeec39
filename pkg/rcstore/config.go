package rcstore

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Config is the resolved configuration: a flat string map in which no
// value contains an unexpanded directive. It is read-only and safe to
// share once Build returns it.
type Config struct {
	values    map[string]string
	entries   []Entry
	prefixKey string
}

// Get returns the resolved value for key, or "" for unknown keys.
func (c *Config) Get(key string) string {
	return c.values[key]
}

// Lookup returns the resolved value and whether the key is known.
func (c *Config) Lookup(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// GetBool interprets key's value with the same truth predicate the
// conditional directives use: true, 1, yes, y and on (case-insensitive)
// are true, everything else is false.
func (c *Config) GetBool(key string) bool {
	return isTrue(c.values[key])
}

// GetInt returns key's value as an integer. Like atoi it reads an
// optional sign and leading digits and yields 0 for anything else.
func (c *Config) GetInt(key string) int {
	s := strings.TrimSpace(c.values[key])
	i, neg := 0, false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}

// Prefix returns the resolved indirection prefix: the value of the
// configured prefix entry.
func (c *Config) Prefix() string {
	return c.values[c.prefixKey]
}

// Keys returns every known key in sorted order.
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of the resolved mapping.
func (c *Config) Map() map[string]string {
	m := make(map[string]string, len(c.values))
	for k, v := range c.values {
		m[k] = v
	}
	return m
}

// Entries returns the entries in registration order, with their
// layered (pre-expansion) values.
func (c *Config) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// DumpDefaults renders every entry as commented shell text: type,
// description, and the default against the locally changed value. With
// useDefaults the default is the active line and the local change the
// comment; otherwise the roles swap. Values are printed as configured,
// before directive expansion.
func (c *Config) DumpDefaults(w io.Writer, useDefaults bool) error {
	message := "changed locally, default was:"
	if useDefaults {
		message = "was locally changed to:"
	}
	for _, e := range c.entries {
		if e.Kind == KindLocal {
			if _, err := fmt.Fprintf(w, "# locally added:\n%s='%s'\n\n", e.Key, e.Value); err != nil {
				return err
			}
			continue
		}
		output, comment := e.Value, e.Default
		if useDefaults {
			output, comment = e.Default, e.Value
		}
		_, err := fmt.Fprintf(w, "# %s\n# %s\n%s='%s'\n",
			asComment(strings.ToUpper(string(e.Kind))),
			asComment(e.Description),
			e.Key, output)
		if err != nil {
			return err
		}
		if e.Default == e.Value {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "# %s\n# %s='%s'\n\n", message, e.Key, asComment(comment)); err != nil {
			return err
		}
	}
	return nil
}

// asComment continues a comment across embedded newlines.
func asComment(s string) string {
	return strings.ReplaceAll(s, "\n", "\n# ")
}

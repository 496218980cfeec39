package rcstore

import (
	"strings"

	"github.com/rclayer/rclayer/pkg/scan"
)

// resolver expands %{...} directives in place over the working map.
// values is exclusively owned for the duration of Build; hasDirectives
// shrinks monotonically as keys become directive-free.
type resolver struct {
	values        map[string]string
	hasDirectives map[string]struct{}
	prefixKey     string
}

// resolve expands key's value until the scanner finds no further
// directive, then memoizes the key as directive-free. visited holds
// the keys on the active recursion path of one top-level call; the
// caller passes a fresh set per top-level key so that independent keys
// may share a common reference without a false cycle report.
func (r *resolver) resolve(key string, visited map[string]struct{}) (string, error) {
	value := r.values[key]
	if _, pending := r.hasDirectives[key]; !pending {
		return value, nil
	}
	pos := 0
	for {
		d := scan.Next(value, pos)
		switch d.Kind {
		case scan.NotFound:
			r.values[key] = value
			delete(r.hasDirectives, key)
			return value, nil
		case scan.Fi:
			return "", newResolveError(CodeFiWithoutIf, key, "%{} without an open conditional")
		case scan.Else:
			return "", newResolveError(CodeElseWithoutIf, key, "%{else} without an open conditional")
		}

		target := d.Name(value)
		if strings.HasPrefix(target, "*") {
			prefix, err := r.recurse(key, r.prefixKey, visited)
			if err != nil {
				return "", err
			}
			target = prefix + target[1:]
		}
		resolved, err := r.recurse(key, target, visited)
		if err != nil {
			return "", err
		}

		if d.Kind == scan.Variable {
			value = value[:d.Pos] + resolved + value[d.Pos+d.Len:]
			pos = d.Pos + len(resolved)
			continue
		}

		// Conditional: decide which branch survives, then skip to
		// the matching %{}, counting nested conditionals so an
		// inner block's %{else}/%{} are not mistaken for ours.
		keep := isTrue(resolved) == (d.Kind == scan.If)
		skippos := d.Pos
		delpos := -1
		if keep {
			value = value[:d.Pos] + value[d.Pos+d.Len:]
		} else {
			delpos = d.Pos
			skippos = d.Pos + d.Len
		}
		gotelse := false
		depth := 0
	skip:
		for {
			nd := scan.Next(value, skippos)
			switch nd.Kind {
			case scan.NotFound:
				return "", newResolveError(CodeIfWithoutFi, key, "conditional without %{} terminator")
			case scan.If, scan.Notif:
				depth++
				skippos = nd.Pos + nd.Len
			case scan.Variable:
				skippos = nd.Pos + nd.Len
			case scan.Else:
				if depth > 0 {
					skippos = nd.Pos + nd.Len
					continue
				}
				if gotelse {
					return "", newResolveError(CodeDoubleElse, key, "double %{else}")
				}
				gotelse = true
				if keep {
					// Kept branch ends here: the %{else}
					// marker goes and everything up to the
					// terminator is discarded.
					value = value[:nd.Pos] + value[nd.Pos+nd.Len:]
					delpos = nd.Pos
					skippos = nd.Pos
				} else {
					// Dropped branch ends here: erase from
					// the opening marker through %{else},
					// keeping the alternate text.
					value = value[:delpos] + value[nd.Pos+nd.Len:]
					skippos = delpos
					delpos = -1
				}
			case scan.Fi:
				if depth > 0 {
					depth--
					skippos = nd.Pos + nd.Len
					continue
				}
				if delpos < 0 {
					value = value[:nd.Pos] + value[nd.Pos+nd.Len:]
				} else {
					value = value[:delpos] + value[nd.Pos+nd.Len:]
				}
				break skip
			}
		}
		// Rescan from the retained text; directives inside an
		// erased branch are gone and never expanded.
	}
}

// recurse resolves target on behalf of key, enforcing the cycle check:
// a target equal to key or already on the active path is a true cycle.
func (r *resolver) recurse(key, target string, visited map[string]struct{}) (string, error) {
	if target == key {
		return "", newResolveError(CodeSelfReference, key, "self-reference")
	}
	if _, active := visited[target]; active {
		// Attribute the cycle to the key being re-entered, not the
		// frame that happened to close the loop.
		return "", newResolveError(CodeSelfReference, target, "self-reference")
	}
	visited[key] = struct{}{}
	resolved, err := r.resolve(target, visited)
	delete(visited, key)
	return resolved, err
}

// isTrue is the boolean-truth predicate for conditional directives.
func isTrue(s string) bool {
	switch {
	case strings.EqualFold(s, "true"),
		s == "1",
		strings.EqualFold(s, "yes"),
		strings.EqualFold(s, "y"),
		strings.EqualFold(s, "on"):
		return true
	}
	return false
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/xtype"
)

// parsePath parses a dotted/bracketed path expression such as
// .metrics[0].samples[1:5:2] or ["my key"][-1] into a Selector sequence
// (SPEC_FULL.md §2 "xtypedump"). A bare path (no leading '.' or '[') gets
// an implicit leading '.', so its first segment is a top-level key:
// `metrics` is equivalent to `.metrics`.
func parsePath(s string) ([]xtype.Selector, error) {
	if s == "" {
		return nil, nil
	}
	if s[0] != '.' && s[0] != '[' {
		s = "." + s
	}

	var sels []xtype.Selector
	i, n := 0, len(s)
	for i < n {
		switch s[i] {
		case '.':
			i++
			start := i
			for i < n && s[i] != '.' && s[i] != '[' {
				i++
			}
			if i == start {
				return nil, fmt.Errorf("empty key after '.' at offset %d", start)
			}
			sels = append(sels, xtype.KeySelector(s[start:i]))

		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("unterminated '[' at offset %d", i)
			}
			inner := s[i+1 : i+end]
			sel, err := parseBracket(inner)
			if err != nil {
				return nil, fmt.Errorf("in %q: %w", inner, err)
			}
			sels = append(sels, sel)
			i += end + 1

		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", s[i], i)
		}
	}
	return sels, nil
}

func parseBracket(inner string) (xtype.Selector, error) {
	inner = strings.TrimSpace(inner)
	if isQuoted(inner) {
		return xtype.KeySelector(inner[1 : len(inner)-1]), nil
	}
	if strings.Contains(inner, ":") {
		return parseSlice(inner)
	}
	v, err := strconv.Atoi(inner)
	if err != nil {
		return nil, fmt.Errorf("not an integer index: %v", err)
	}
	return xtype.IntSelector(v), nil
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	q := s[0]
	return (q == '"' || q == '\'') && s[len(s)-1] == q
}

func parseSlice(inner string) (xtype.Selector, error) {
	parts := strings.Split(inner, ":")
	if len(parts) > 3 {
		return nil, fmt.Errorf("slice has too many ':' separated components")
	}
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	start, err := parseOptionalInt(parts[0])
	if err != nil {
		return nil, err
	}
	stop, err := parseOptionalInt(parts[1])
	if err != nil {
		return nil, err
	}
	step, err := parseOptionalInt(parts[2])
	if err != nil {
		return nil, err
	}
	return xtype.SliceSelector{Start: start, Stop: stop, Step: step}, nil
}

func parseOptionalInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("not an integer: %v", err)
	}
	return &v, nil
}

package valueparser

import "math"

// findUnquotedColon returns the byte index of the first ':' in s that is not
// inside a single- or double-quoted run, or -1 if there is none. A backslash
// escapes the following byte while inside a quoted run, so an escaped quote
// character never closes the run early.
func findUnquotedColon(s string) int {
	var inDouble, inSingle bool
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inDouble:
			if c == '\\' {
				i++
				continue
			}
			if c == '"' {
				inDouble = false
			}
		case inSingle:
			if c == '\\' {
				i++
				continue
			}
			if c == '\'' {
				inSingle = false
			}
		case c == '"':
			inDouble = true
		case c == '\'':
			inSingle = true
		case c == ':':
			return i
		}
	}
	return -1
}

// isNumberStart reports whether s opens a number literal: a leading digit,
// or a leading '-' or '.' immediately followed by a digit.
func isNumberStart(s string) bool {
	if s == "" {
		return false
	}
	if isDigit(s[0]) {
		return true
	}
	if s[0] == '-' && len(s) > 1 {
		if isDigit(s[1]) {
			return true
		}
		if s[1] == '.' && len(s) > 2 && isDigit(s[2]) {
			return true
		}
	}
	if s[0] == '.' && len(s) > 1 && isDigit(s[1]) {
		return true
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// stripInlineComment removes a trailing " # ..." inline comment from s (spec
// §4.3.9): a '#' preceded by a space, outside any quoted run, starts a
// comment that runs to end of line. col is the column s[0] occupies; the
// returned column still refers to the (possibly shortened) result.
func stripInlineComment(s string, col int) (string, int) {
	var inDouble, inSingle bool
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inDouble:
			if c == '\\' {
				i++
				continue
			}
			if c == '"' {
				inDouble = false
			}
		case inSingle:
			if c == '\\' {
				i++
				continue
			}
			if c == '\'' {
				inSingle = false
			}
		case c == '"':
			inDouble = true
		case c == '\'':
			inSingle = true
		case c == '#' && i > 0 && s[i-1] == ' ':
			end := i - 1
			for end > 0 && s[end-1] == ' ' {
				end--
			}
			return s[:end], col
		}
	}
	return s, col
}

// cleanTokenText strips a trailing inline comment from a TEXT token's raw
// content (spec §4.3.9). It must not be applied to block string/bytes body
// lines, whose content is literal.
func cleanTokenText(raw string) string {
	s, _ := stripInlineComment(raw, 0)
	return s
}

func nanValue() float64    { return math.NaN() }
func posInfValue() float64 { return math.Inf(1) }
func negInfValue() float64 { return math.Inf(-1) }

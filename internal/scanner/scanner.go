// Package scanner implements the first stage of the YAY parsing pipeline:
// UTF-8 codepoint validation and physical-line segmentation (spec §4.1).
//
// Scan walks the raw source once, rejecting any byte sequence that is not
// well-formed UTF-8 in YAY's permitted codepoint ranges, then splits the
// validated text into physical lines and extracts each line's indentation,
// list leader, and remaining content. The result feeds internal/outliner.
package scanner

import (
	"unicode/utf8"

	"golang.org/x/xerrors"

	"github.com/shapestone/yay/pkg/yay"
)

// Line is one physical input line after comment stripping: its indentation
// width, optional list leader ("" or "- "), and remaining content bytes.
type Line struct {
	Content []byte
	Indent  int
	Leader  string
	LineNum int
}

const bom0, bom1, bom2 = 0xEF, 0xBB, 0xBF

// Scan validates source as UTF-8 text in YAY's permitted codepoint set and
// splits it into scan lines (spec §4.1). It returns a *yay.Error on the
// first violation.
func Scan(source []byte) ([]Line, error) {
	if len(source) >= 3 && source[0] == bom0 && source[1] == bom1 && source[2] == bom2 {
		return nil, yay.NewError(1, 1, "Illegal BOM")
	}

	if err := validateCodepoints(source); err != nil {
		return nil, err
	}

	return linesToScanLines(splitLines(source))
}

// validateCodepoints walks source rune by rune, tracking (line, column), and
// rejects tabs, surrogates, and any codepoint outside the permitted ranges
// named in spec §4.1 step 2.
func validateCodepoints(source []byte) error {
	line, col := 1, 1
	for i := 0; i < len(source); {
		r, size := utf8.DecodeRune(source[i:])
		if r == utf8.RuneError && size <= 1 {
			return yay.NewError(line, col, "Invalid UTF-8 encoding")
		}

		switch {
		case r == '\n':
			line++
			col = 1
			i += size
			continue
		case r == 0x09:
			return yay.NewError(line, col, "Tab not allowed (use spaces)")
		case r >= 0xD800 && r <= 0xDFFF:
			return yay.NewError(line, col, "Illegal surrogate")
		case isPermittedCodepoint(r):
			// ok
		default:
			return yay.NewError(line, col, xerrors.Errorf("Forbidden code point U+%04X", r).Error())
		}

		col++
		i += size
	}
	return nil
}

// isPermittedCodepoint implements the ranges of spec §4.1 step 2.
func isPermittedCodepoint(r rune) bool {
	switch {
	case r >= 0x20 && r <= 0x7E:
		return true
	case r >= 0xA0 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return !(r >= 0xFDD0 && r <= 0xFDEF)
	case r >= 0x10000 && r <= 0x10FFFF:
		low := r & 0xFFFF
		return low != 0xFFFE && low != 0xFFFF
	default:
		return false
	}
}

// splitLines splits already-validated source on LF into physical lines,
// dropping the single trailing empty line a final newline produces.
func splitLines(source []byte) []string {
	var lines []string
	start := 0
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			lines = append(lines, string(source[start:i]))
			start = i + 1
		}
	}
	if start < len(source) {
		lines = append(lines, string(source[start:]))
	}
	return lines
}

// linesToScanLines runs the per-line rules of spec §4.1 step 4 over the
// physical lines produced by splitLines. Separated from splitLines so tests
// can exercise each half independently.
func linesToScanLines(lines []string) ([]Line, error) {
	out := make([]Line, 0, len(lines))
	for idx, raw := range lines {
		lineNum := idx + 1

		if len(raw) > 0 && raw[len(raw)-1] == ' ' {
			trimmed := rtrimSpace(raw)
			return nil, yay.NewError(lineNum, len(trimmed)+1, "Unexpected trailing space")
		}

		indent := 0
		for indent < len(raw) && raw[indent] == ' ' {
			indent++
		}
		rest := raw[indent:]

		if indent == 0 && hasPrefix(rest, "#") {
			continue
		}

		leader, content, err := extractLeader(rest, lineNum, indent)
		if err != nil {
			return nil, err
		}

		out = append(out, Line{
			Content: []byte(content),
			Indent:  indent,
			Leader:  leader,
			LineNum: lineNum,
		})
	}
	return out, nil
}

// extractLeader implements spec §4.1 step 4's leader-extraction bullets.
func extractLeader(rest string, lineNum, indent int) (leader, content string, err error) {
	switch {
	case rest == "-":
		return "- ", "", nil
	case hasPrefix(rest, "- "):
		return "- ", rest[2:], nil
	case hasPrefix(rest, "-"):
		if rest == "-infinity" {
			return "", rest, nil
		}
		if len(rest) > 1 && (rest[1] == '.' || isASCIIDigit(rest[1])) {
			return "", rest, nil
		}
		return "", "", yay.NewError(lineNum, indent+1, "Expected space after \"-\"")
	case hasPrefix(rest, "*"):
		return "", "", yay.NewError(lineNum, indent+1, "Unexpected character \"*\"")
	default:
		return "", rest, nil
	}
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }

func rtrimSpace(s string) string {
	end := len(s)
	for end > 0 && s[end-1] == ' ' {
		end--
	}
	return s[:end]
}

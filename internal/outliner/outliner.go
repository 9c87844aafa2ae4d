// Package outliner implements the second stage of the YAY parsing pipeline:
// converting a scan-line stream into a flat token stream that encodes
// indentation explicitly as START/STOP/TEXT/BREAK tokens (spec §4.2).
//
// The algorithm mirrors the indent-stack bookkeeping of an
// IndentationTokenizer: one START is pushed per list-item line at a deeper
// indentation, and one STOP is popped per level the indentation drops below,
// so the value parser (internal/valueparser) sees list nesting as explicit
// START/STOP pairs. Every token still carries its line's Indent, which the
// value parser compares for map and block-body structure.
package outliner

import "github.com/shapestone/yay/internal/scanner"

// TokenType identifies the structural role of a Token.
type TokenType int

// The four token kinds the outliner emits (spec §3, §4.2).
const (
	TokenStart TokenType = iota
	TokenStop
	TokenText
	TokenBreak
)

// String names a TokenType for debug output.
func (t TokenType) String() string {
	switch t {
	case TokenStart:
		return "START"
	case TokenStop:
		return "STOP"
	case TokenText:
		return "TEXT"
	case TokenBreak:
		return "BREAK"
	default:
		return "UNKNOWN"
	}
}

// Token is one element of the outliner's flat output stream.
type Token struct {
	Type    TokenType
	Text    string // leader ("- ") for START, content for TEXT; empty otherwise
	Indent  int
	LineNum int
	Col     int // 1-based column of the first content byte on the line
}

// Outline converts a scan-line stream into the START/STOP/TEXT/BREAK token
// stream described in spec §4.2. Outlining cannot fail: every malformed
// construct the outliner might otherwise reject is already rejected earlier,
// by the scanner, or later, by the value parser's structural checks.
func Outline(lines []scanner.Line) []Token {
	var tokens []Token
	stack := []int{0}

	for _, ln := range lines {
		for len(stack) > 0 && stack[len(stack)-1] > ln.Indent {
			stack = stack[:len(stack)-1]
			tokens = append(tokens, Token{Type: TokenStop, Indent: ln.Indent, LineNum: ln.LineNum, Col: ln.Indent + 1})
		}

		if ln.Leader != "" {
			top := stack[len(stack)-1]
			switch {
			case ln.Indent > top:
				tokens = append(tokens, Token{
					Type: TokenStart, Text: ln.Leader,
					Indent: ln.Indent, LineNum: ln.LineNum, Col: ln.Indent + 1,
				})
				stack = append(stack, ln.Indent)
			case ln.Indent == top:
				tokens = append(tokens, Token{Type: TokenStop, Indent: ln.Indent, LineNum: ln.LineNum, Col: ln.Indent + 1})
				tokens = append(tokens, Token{
					Type: TokenStart, Text: ln.Leader,
					Indent: ln.Indent, LineNum: ln.LineNum, Col: ln.Indent + 1,
				})
			}
		}

		if len(ln.Content) > 0 {
			tokens = append(tokens, Token{
				Type: TokenText, Text: string(ln.Content),
				Indent: ln.Indent, LineNum: ln.LineNum, Col: ln.Indent + len(ln.Leader) + 1,
			})
		}

		if len(ln.Content) == 0 && ln.Leader == "" {
			if n := len(tokens); n > 0 && tokens[n-1].Type != TokenBreak {
				tokens = append(tokens, Token{Type: TokenBreak, LineNum: ln.LineNum, Col: ln.Indent + 1})
			}
		}
	}

	lastLine := 1
	if len(lines) > 0 {
		lastLine = lines[len(lines)-1].LineNum
	}
	for len(stack) > 1 {
		stack = stack[:len(stack)-1]
		tokens = append(tokens, Token{Type: TokenStop, LineNum: lastLine})
	}

	return tokens
}

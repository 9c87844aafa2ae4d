package outliner

import (
	"testing"

	"github.com/shapestone/yay/internal/scanner"
)

func mustScan(t *testing.T, src string) []scanner.Line {
	t.Helper()
	lines, err := scanner.Scan([]byte(src))
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	return lines
}

func typesOf(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func assertTypes(t *testing.T, got []Token, want ...TokenType) {
	t.Helper()
	gotTypes := typesOf(got)
	if len(gotTypes) != len(want) {
		t.Fatalf("token count = %d %v, want %d %v", len(gotTypes), gotTypes, len(want), want)
	}
	for i := range want {
		if gotTypes[i] != want[i] {
			t.Errorf("token[%d] = %s, want %s (full: %v)", i, gotTypes[i], want[i], gotTypes)
		}
	}
}

func TestOutlineFlatMapHasNoStartStop(t *testing.T) {
	toks := Outline(mustScan(t, "name: a\nport: 1\n"))
	assertTypes(t, toks, TokenText, TokenText)
}

func TestOutlineSimpleBlockArray(t *testing.T) {
	toks := Outline(mustScan(t, "- a\n- b\n"))
	// a root-level bullet's indent (0) equals the initial stack top (0), so
	// every sibling transition — including the first — takes the "equal
	// indent" branch: a STOP immediately followed by a START, with nothing
	// ever pushed onto the stack for indent 0.
	assertTypes(t, toks, TokenStop, TokenStart, TokenText, TokenStop, TokenStart, TokenText)
}

func TestOutlineNestedBlockArray(t *testing.T) {
	toks := Outline(mustScan(t, "- a\n  - b\n"))
	assertTypes(t, toks, TokenStop, TokenStart, TokenText, TokenStart, TokenText, TokenStop)
}

func TestOutlineBlankLineBetweenSiblingsEmitsBreak(t *testing.T) {
	toks := Outline(mustScan(t, "name: a\n\nport: 1\n"))
	assertTypes(t, toks, TokenText, TokenBreak, TokenText)
}

func TestOutlineDedentClosesMultipleLevels(t *testing.T) {
	toks := Outline(mustScan(t, "- a\n  - b\n    - c\nnext: 1\n"))
	want := []TokenType{
		TokenStop, TokenStart, TokenText,
		TokenStart, TokenText,
		TokenStart, TokenText,
		TokenStop, TokenStop,
		TokenText,
	}
	assertTypes(t, toks, want...)
}

func TestOutlinePreservesLineNumAndIndent(t *testing.T) {
	toks := Outline(mustScan(t, "name: a\n  nested: b\n"))
	if toks[0].LineNum != 1 {
		t.Errorf("toks[0].LineNum = %d, want 1", toks[0].LineNum)
	}
	if toks[0].Indent != 0 {
		t.Errorf("toks[0].Indent = %d, want 0", toks[0].Indent)
	}
}

// Package valueparser implements the third and largest stage of the YAY
// parsing pipeline: a recursive-descent parser over the outliner's token
// stream that materializes a yay.Value tree while enforcing the format's
// whitespace grammar (spec §4.3).
//
// The parser holds a single advancing cursor over the token slice, mirroring
// the one-current/one-lookahead shape of the teacher's LL(1) parser, but
// trades its AST-node construction for direct yay.Value construction and
// trades its permissive YAML grammar for YAY's strict one.
package valueparser

import (
	"strings"

	"golang.org/x/xerrors"

	"github.com/shapestone/yay/internal/outliner"
	"github.com/shapestone/yay/pkg/yay"
)

// maxNestingDepth bounds recursive descent against pathological input, per
// spec §9 ("state the chosen limit as part of the public contract"). 200
// levels is far beyond any realistic document and comfortably inside a Go
// goroutine's default stack.
const maxNestingDepth = 200

// Parser is the value-parser's cursor over an outliner.Token stream.
type Parser struct {
	toks  []outliner.Token
	pos   int
	depth int
}

// New creates a value parser over the given token stream.
func New(toks []outliner.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse runs the top-level dispatch of spec §4.3: decide root form, parse
// it, then ensure nothing but trailing BREAK/STOP tokens remain.
func (p *Parser) Parse() (yay.Value, error) {
	p.skipLeadingBreaksAndStops()

	if p.pos >= len(p.toks) {
		return yay.Value{}, yay.NewError(1, 1, "No value found in document")
	}

	tok := p.current()
	if tok.Type == outliner.TokenText && tok.Indent != 0 {
		return yay.Value{}, yay.NewError(tok.LineNum, 1, "Unexpected indent")
	}

	var (
		val yay.Value
		err error
	)
	if tok.Type == outliner.TokenText && isRootMapText(cleanTokenText(tok.Text)) {
		text := cleanTokenText(tok.Text)
		line, col := tok.LineNum, tok.Col
		p.advance()
		val, err = p.parseTextAsMap(text, line, col, 0)
	} else {
		val, err = p.parseValue()
	}
	if err != nil {
		return yay.Value{}, err
	}

	if next, newPos := p.peekSkipBreaksStops(); next != nil {
		_ = newPos
		return yay.Value{}, yay.NewError(next.LineNum, next.Col, "Unexpected extra content")
	}

	return val, nil
}

// isRootMapText reports whether a root-level TEXT token opens a root map
// (spec §4.3 step 3): its content is not an inline-map literal and it
// contains a colon outside quotes.
func isRootMapText(s string) bool {
	if len(s) > 0 && s[0] == '{' {
		return false
	}
	return findUnquotedColon(s) != -1
}

// --- cursor helpers ---

func (p *Parser) current() *outliner.Token {
	if p.pos >= len(p.toks) {
		return nil
	}
	return &p.toks[p.pos]
}

func (p *Parser) advance() {
	if p.pos < len(p.toks) {
		p.pos++
	}
}

func (p *Parser) skipLeadingBreaksAndStops() {
	for p.pos < len(p.toks) {
		t := p.toks[p.pos].Type
		if t == outliner.TokenBreak || t == outliner.TokenStop {
			p.pos++
			continue
		}
		break
	}
}

// peekSkipBreaksStops looks past any run of BREAK/STOP tokens starting at
// the cursor, without moving it, and returns the first token beyond them
// (nil at end of stream) along with the position it occupies. Callers that
// want to commit to the skip assign p.pos = newPos themselves; callers that
// find no usable continuation simply discard newPos, leaving the cursor
// untouched so an enclosing frame can make its own decision about the same
// tokens.
func (p *Parser) peekSkipBreaksStops() (*outliner.Token, int) {
	i := p.pos
	for i < len(p.toks) {
		t := p.toks[i].Type
		if t == outliner.TokenBreak || t == outliner.TokenStop {
			i++
			continue
		}
		break
	}
	if i >= len(p.toks) {
		return nil, i
	}
	return &p.toks[i], i
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > maxNestingDepth {
		return yay.NewError(1, 1, "Document nested too deeply")
	}
	return nil
}

func (p *Parser) leave() { p.depth-- }

// --- value dispatch ---

// parseValue parses a value starting at the cursor's current token: either
// a block array (a START("- ") token) or a scalar/compound dispatched from
// a TEXT token's leading characters (spec §4.3.1).
func (p *Parser) parseValue() (yay.Value, error) {
	if err := p.enter(); err != nil {
		return yay.Value{}, err
	}
	defer p.leave()

	tok := p.current()
	if tok == nil {
		return yay.Value{}, yay.NewError(1, 1, "No value found in document")
	}

	if tok.Type == outliner.TokenStart && tok.Text == "- " {
		return p.parseBlockArray(tok.Indent)
	}

	if tok.Type != outliner.TokenText {
		return yay.Value{}, yay.NewError(tok.LineNum, tok.Col, "Unexpected extra content")
	}

	return p.dispatchText(cleanTokenText(tok.Text), tok.LineNum, tok.Col, tok.Indent, false)
}

// dispatchText implements the value-dispatch table of spec §4.3.1, applied
// to a piece of text s starting at (line, col). ownerIndent is the
// indentation of the line that introduced s (the TEXT token's own indent for
// a root/array-item value, or the key's indent for a property value).
// propertyCtx selects the stricter block-leader rule of spec §4.3.4/§4.3.5
// when s is a property's value-part.
func (p *Parser) dispatchText(s string, line, col, ownerIndent int, propertyCtx bool) (yay.Value, error) {
	if s == "" {
		return yay.Value{}, yay.NewError(line, col, "Expected value after property")
	}
	if s[0] == ' ' {
		return yay.Value{}, yay.NewError(line, col, "Unexpected leading space")
	}

	switch {
	case s == "`" || (len(s) > 1 && s[0] == '`' && s[1] == ' '):
		return p.parseBlockString(s, line, col, ownerIndent, propertyCtx)
	case s[0] == '>' && !strings.Contains(s, "<"):
		return p.parseBlockBytes(s, line, col, ownerIndent, propertyCtx)
	case !propertyCtx && findUnquotedColon(s) != -1 && s[0] != '"' && s[0] != '\'' && s[0] != '[' && s[0] != '{' && s[0] != '<':
		return p.parseTextAsMap(s, line, col, ownerIndent)
	default:
		val, consumed, err := p.dispatchElement(s, line, col)
		if err != nil {
			return yay.Value{}, err
		}
		if consumed != len(s) {
			return yay.Value{}, yay.NewError(line, col+consumed, "Unexpected extra content")
		}
		return val, nil
	}
}

// dispatchElement parses exactly one value starting at s[0] and reports how
// many bytes of s it consumed, for use both as a whole-token value (the
// caller then requires full consumption) and as one element of an inline
// array or map (spec §4.3.7), where trailing bytes are the next separator.
// It covers every form of the §4.3.1 dispatch table except the block-leader
// and colon-detected forms, which need more than one line of lookahead and
// never appear as inline-collection elements.
func (p *Parser) dispatchElement(s string, line, col int) (yay.Value, int, error) {
	switch {
	case matchesKeyword(s) > 0:
		n := matchesKeyword(s)
		return keywordValue(s[:n]), n, nil
	case s[0] == '"':
		return parseDoubleQuoted(s, line, col)
	case s[0] == '\'':
		return parseSingleQuoted(s, line, col)
	case s[0] == '[':
		return p.parseInlineArray(s, line, col)
	case s[0] == '{':
		return p.parseInlineMap(s, line, col)
	case s[0] == '<':
		return parseInlineBytes(s, line, col)
	case isNumberStart(s):
		return parseNumber(s, line, col)
	default:
		return yay.Value{}, 0, yay.NewError(line, col, xerrors.Errorf("Unexpected character %q", string(s[0])).Error())
	}
}

// keywords in longest-first order so "-infinity" is tried before a bare "-"
// could ever be mistaken for the start of a shorter match.
var keywords = []string{"-infinity", "infinity", "false", "null", "true", "nan"}

// matchesKeyword returns the length of the keyword s begins with, provided
// the keyword is not itself the prefix of a longer identifier-like run
// (e.g. "nullable" is not the keyword "null"). It returns 0 if no keyword
// matches.
func matchesKeyword(s string) int {
	for _, kw := range keywords {
		if len(s) < len(kw) || s[:len(kw)] != kw {
			continue
		}
		if len(s) > len(kw) && isIdentByte(s[len(kw)]) {
			continue
		}
		return len(kw)
	}
	return 0
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '-' || b == '.' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func keywordValue(s string) yay.Value {
	switch s {
	case "null":
		return yay.Null()
	case "true":
		return yay.NewBool(true)
	case "false":
		return yay.NewBool(false)
	case "nan":
		return yay.NewFloat(nanValue())
	case "infinity":
		return yay.NewFloat(posInfValue())
	case "-infinity":
		return yay.NewFloat(negInfValue())
	default:
		return yay.Null()
	}
}

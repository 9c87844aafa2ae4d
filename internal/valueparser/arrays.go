package valueparser

import (
	"golang.org/x/xerrors"

	"github.com/shapestone/yay/internal/outliner"
	"github.com/shapestone/yay/pkg/yay"
)

// parseInlineArray parses an inline array "[e, e, ...]" starting at
// s[0] == '[' and reports how many bytes it consumed, enforcing the
// whitespace grammar of spec §4.3.7: no space directly inside the brackets,
// no space before a separator, and exactly one space after a comma.
func (p *Parser) parseInlineArray(s string, line, col int) (yay.Value, int, error) {
	if err := p.enter(); err != nil {
		return yay.Value{}, 0, err
	}
	defer p.leave()

	i := 1
	if i < len(s) && s[i] == ' ' {
		return yay.Value{}, 0, yay.NewError(line, col+i, "Unexpected space after \"[\"")
	}
	var items []yay.Value
	if i < len(s) && s[i] == ']' {
		return yay.NewArray(items), i + 1, nil
	}

	for {
		if i >= len(s) {
			return yay.Value{}, 0, yay.NewError(line, col+i, "Unexpected newline in inline array/object")
		}

		val, consumed, err := p.dispatchElement(s[i:], line, col+i)
		if err != nil {
			return yay.Value{}, 0, err
		}
		items = append(items, val)
		i += consumed

		if i >= len(s) {
			return yay.Value{}, 0, yay.NewError(line, col+i, "Unexpected newline in inline array/object")
		}
		switch s[i] {
		case ']':
			return yay.NewArray(items), i + 1, nil
		case ',':
			j, err := p.consumeInlineSeparator(s, i+1, line, col, ']')
			if err != nil {
				return yay.Value{}, 0, err
			}
			i = j
		case ' ':
			return yay.Value{}, 0, spaceBeforeSeparatorError(s, i, line, col)
		default:
			return yay.Value{}, 0, yay.NewError(line, col+i, "Expected \",\" or \"]\"")
		}
	}
}

// parseInlineMap parses an inline map "{k: v, k: v}" starting at
// s[0] == '{' and reports how many bytes it consumed, enforcing the same
// §4.3.7 whitespace grammar as parseInlineArray, plus the key/colon rule:
// no space before ':', exactly one space after it.
func (p *Parser) parseInlineMap(s string, line, col int) (yay.Value, int, error) {
	if err := p.enter(); err != nil {
		return yay.Value{}, 0, err
	}
	defer p.leave()

	i := 1
	if i < len(s) && s[i] == ' ' {
		return yay.Value{}, 0, yay.NewError(line, col+i, "Unexpected space after \"{\"")
	}
	var pairs []yay.Pair
	if i < len(s) && s[i] == '}' {
		return yay.NewMap(pairs), i + 1, nil
	}

	for {
		if i >= len(s) {
			return yay.Value{}, 0, yay.NewError(line, col+i, "Unexpected newline in inline array/object")
		}

		key, consumed, err := parseInlineMapKey(s[i:], line, col+i)
		if err != nil {
			return yay.Value{}, 0, err
		}
		i += consumed

		if i >= len(s) {
			return yay.Value{}, 0, yay.NewError(line, col+i, "Unexpected newline in inline array/object")
		}
		if s[i] == ' ' {
			return yay.Value{}, 0, yay.NewError(line, col+i, "Unexpected space before \":\"")
		}
		if s[i] != ':' {
			return yay.Value{}, 0, yay.NewError(line, col+i, "Expected \":\"")
		}
		i++
		if i >= len(s) || s[i] != ' ' {
			return yay.Value{}, 0, yay.NewError(line, col+i, "Expected space after \":\"")
		}
		if i+1 < len(s) && s[i+1] == ' ' {
			return yay.Value{}, 0, yay.NewError(line, col+i+1, "Unexpected space after \":\"")
		}
		i++

		val, consumed2, err := p.dispatchElement(s[i:], line, col+i)
		if err != nil {
			return yay.Value{}, 0, err
		}
		i += consumed2
		pairs = append(pairs, yay.Pair{Key: key, Value: val})

		if i >= len(s) {
			return yay.Value{}, 0, yay.NewError(line, col+i, "Unexpected newline in inline array/object")
		}
		switch s[i] {
		case '}':
			return yay.NewMap(pairs), i + 1, nil
		case ',':
			j, err := p.consumeInlineSeparator(s, i+1, line, col, '}')
			if err != nil {
				return yay.Value{}, 0, err
			}
			i = j
		case ' ':
			return yay.Value{}, 0, spaceBeforeSeparatorError(s, i, line, col)
		default:
			return yay.Value{}, 0, yay.NewError(line, col+i, "Expected \",\" or \"}\"")
		}
	}
}

// consumeInlineSeparator validates the whitespace after a ',' found at
// s[j-1] (spec §4.3.7) and returns the index to resume element parsing
// from. A comma immediately followed by the collection's own close bracket
// is tolerated with no space requirement. Otherwise, when the comma isn't
// followed by a space, §9's lookahead applies: scan ahead (ignoring quoted
// runs and nested brackets) to the matching close at this depth; if that
// close is itself preceded by a space, its diagnostic takes precedence over
// the comma's.
func (p *Parser) consumeInlineSeparator(s string, j, line, col int, closeChar byte) (int, error) {
	idxComma := j - 1
	if j >= len(s) {
		return 0, yay.NewError(line, col+j, "Unexpected newline in inline array/object")
	}
	if s[j] == closeChar {
		return j, nil
	}
	if s[j] == ' ' {
		if j+1 < len(s) && s[j+1] == ' ' {
			return 0, yay.NewError(line, col+j+1, "Unexpected space after \",\"")
		}
		return j + 1, nil
	}
	if closeIdx := findMatchingClose(s, j); closeIdx != -1 && s[closeIdx-1] == ' ' {
		return 0, yay.NewError(line, col+closeIdx-1, xerrors.Errorf("Unexpected space before %q", string(s[closeIdx])).Error())
	}
	return 0, yay.NewError(line, col+idxComma, "Expected space after \",\"")
}

// spaceBeforeSeparatorError reports the §4.3.7 diagnostic for a space found
// where a value must be followed directly by ',' or a close bracket.
func spaceBeforeSeparatorError(s string, i, line, col int) error {
	j := i
	for j < len(s) && s[j] == ' ' {
		j++
	}
	if j < len(s) && s[j] == ',' {
		return yay.NewError(line, col+i, "Unexpected space before \",\"")
	}
	if j < len(s) && (s[j] == ']' || s[j] == '}') {
		return yay.NewError(line, col+i, xerrors.Errorf("Unexpected space before %q", string(s[j])).Error())
	}
	return yay.NewError(line, col+i, "Expected \",\" or \"]\"")
}

// findMatchingClose finds the index, at or after start, of the bracket that
// closes the collection opened at s[0] ('[' or '{'), ignoring quoted runs
// and treating any nested '['/'{' as increasing depth. Returns -1 if none is
// found.
func findMatchingClose(s string, start int) int {
	depth := 0
	var inDouble, inSingle bool
	for i := start; i < len(s); i++ {
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
		case c == '[' || c == '{':
			depth++
		case c == ']' || c == '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

// parseInlineMapKey parses one inline-map key (bare or quoted) at s[0] and
// reports how many bytes it consumed.
func parseInlineMapKey(s string, line, col int) (string, int, error) {
	if s == "" {
		return "", 0, yay.NewError(line, col, "Expected a key")
	}
	if s[0] == '"' {
		val, consumed, err := parseDoubleQuoted(s, line, col)
		if err != nil {
			return "", 0, err
		}
		return val.Str(), consumed, nil
	}
	if s[0] == '\'' {
		val, consumed, err := parseSingleQuoted(s, line, col)
		if err != nil {
			return "", 0, err
		}
		return val.Str(), consumed, nil
	}
	i := 0
	for i < len(s) && isKeyByte(s[i]) {
		i++
	}
	if i == 0 {
		return "", 0, yay.NewError(line, col, "Expected a key")
	}
	return s[:i], i, nil
}

func isKeyByte(c byte) bool {
	return c == '_' || c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// parseBlockArray parses a block array: one or more sibling START("- ")
// tokens at baseIndent, each opening one item (spec §4.3.8).
func (p *Parser) parseBlockArray(baseIndent int) (yay.Value, error) {
	if err := p.enter(); err != nil {
		return yay.Value{}, err
	}
	defer p.leave()

	var items []yay.Value
	for {
		tok := p.current()
		if tok == nil || tok.Type != outliner.TokenStart || tok.Text != "- " || tok.Indent != baseIndent {
			break
		}
		p.advance()

		item, err := p.parseBlockArrayItem(baseIndent)
		if err != nil {
			return yay.Value{}, err
		}
		items = append(items, item)

		next := p.current()
		if next == nil || next.Type != outliner.TokenStop {
			continue
		}
		save := p.pos
		p.advance()
		sib, newPos := p.peekSkipBreaksStops()
		if sib != nil && sib.Type == outliner.TokenStart && sib.Text == "- " && sib.Indent == baseIndent {
			p.pos = newPos
			continue
		}
		p.pos = save
		break
	}

	return yay.NewArray(items), nil
}

// parseBlockArrayItem parses the value of one block-array item, whose
// START("- ") token the caller has already consumed (spec §4.3.8):
//   - a nested block array directly following at a deeper indent,
//   - an inline bullet cascade ("- " prefix within the same line's text),
//   - a bare "-" with nothing following (null),
//   - a property line, building a map from this line plus deeper-indented
//     continuation properties,
//   - any other scalar/compound value via the ordinary dispatch table,
//   - or nothing at all (also null).
func (p *Parser) parseBlockArrayItem(itemIndent int) (yay.Value, error) {
	if err := p.enter(); err != nil {
		return yay.Value{}, err
	}
	defer p.leave()

	tok := p.current()
	if tok != nil && tok.Type == outliner.TokenStart && tok.Text == "- " && tok.Indent > itemIndent {
		return p.parseBlockArray(tok.Indent)
	}
	if tok == nil || tok.Type != outliner.TokenText || tok.Indent != itemIndent {
		return yay.Null(), nil
	}

	text := cleanTokenText(tok.Text)
	switch {
	case text == "-":
		p.advance()
		return yay.Null(), nil
	case len(text) >= 2 && text[:2] == "- ":
		p.advance()
		return p.parseCascadeItem(text[2:], tok.LineNum, tok.Col+2, itemIndent)
	case findUnquotedColon(text) != -1:
		p.advance()
		first, err := p.parseProperty(tok, text)
		if err != nil {
			return yay.Value{}, err
		}
		return p.parseBulletMapBody(itemIndent, first)
	default:
		p.advance()
		return p.dispatchText(text, tok.LineNum, tok.Col, itemIndent, false)
	}
}

// parseCascadeItem decodes the remainder of a "- - ..." inline bullet
// cascade: each leading "- " wraps the rest in another single-element array.
func (p *Parser) parseCascadeItem(remainder string, line, col, itemIndent int) (yay.Value, error) {
	if err := p.enter(); err != nil {
		return yay.Value{}, err
	}
	defer p.leave()

	if remainder == "" || remainder == "-" {
		return yay.NewArray([]yay.Value{yay.Null()}), nil
	}
	if remainder[0] == ' ' {
		return yay.Value{}, yay.NewError(line, col, "Unexpected space after \"-\"")
	}
	if len(remainder) >= 2 && remainder[:2] == "- " {
		inner, err := p.parseCascadeItem(remainder[2:], line, col+2, itemIndent)
		if err != nil {
			return yay.Value{}, err
		}
		return yay.NewArray([]yay.Value{inner}), nil
	}
	val, err := p.dispatchText(remainder, line, col, itemIndent, false)
	if err != nil {
		return yay.Value{}, err
	}
	return yay.NewArray([]yay.Value{val}), nil
}

// parseBulletMapBody consumes the properties that make a block-array item a
// map: the bullet's own "key: value" line (already parsed into first), plus
// zero or more further properties at the indent of the first line that is
// deeper than the bullet itself (spec §4.3.8's map-item case).
func (p *Parser) parseBulletMapBody(itemIndent int, first yay.Pair) (yay.Value, error) {
	pairs := []yay.Pair{first}
	bodyIndent := -1
	for {
		tok, newPos := p.peekSkipBreaksStops()
		if tok == nil || tok.Type != outliner.TokenText || tok.Indent <= itemIndent {
			break
		}
		if bodyIndent == -1 {
			bodyIndent = tok.Indent
		} else if tok.Indent != bodyIndent {
			break
		}
		text := cleanTokenText(tok.Text)
		if findUnquotedColon(text) == -1 {
			break
		}
		p.pos = newPos
		p.advance()
		pr, err := p.parseProperty(tok, text)
		if err != nil {
			return yay.Value{}, err
		}
		pairs = append(pairs, pr)
	}
	return yay.NewMap(pairs), nil
}

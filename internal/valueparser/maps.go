package valueparser

import (
	"github.com/shapestone/yay/internal/outliner"
	"github.com/shapestone/yay/pkg/yay"
)

// parseProperty splits a "key: value" TEXT line into a yay.Pair (spec
// §4.3.6). The caller must already have consumed (advanced past) the token
// this text came from; tok is used only for its line/column/indent.
func (p *Parser) parseProperty(tok *outliner.Token, s string) (yay.Pair, error) {
	colonIdx := findUnquotedColon(s)
	if colonIdx == -1 {
		return yay.Pair{}, yay.NewError(tok.LineNum, tok.Col, "Expected value after property")
	}

	keyPart := s[:colonIdx]
	valuePart := s[colonIdx+1:]

	if len(keyPart) > 0 && keyPart[len(keyPart)-1] == ' ' {
		return yay.Pair{}, yay.NewError(tok.LineNum, tok.Col+colonIdx-1, "Unexpected space before \":\"")
	}

	key, err := p.decodeKey(keyPart, tok.LineNum, tok.Col)
	if err != nil {
		return yay.Pair{}, err
	}

	val, err := p.decodePropertyValue(valuePart, tok.LineNum, tok.Col+colonIdx+1, tok.Indent)
	if err != nil {
		return yay.Pair{}, err
	}

	return yay.Pair{Key: key, Value: val}, nil
}

// decodeKey validates and decodes a property's key part: either a bare
// identifier-like run, or a fully-quoted string consuming the whole keyPart.
func (p *Parser) decodeKey(keyPart string, line, col int) (string, error) {
	if keyPart == "" {
		return "", yay.NewError(line, col, "Expected a key")
	}
	if keyPart[0] == '"' || keyPart[0] == '\'' {
		var (
			val      yay.Value
			consumed int
			err      error
		)
		if keyPart[0] == '"' {
			val, consumed, err = parseDoubleQuoted(keyPart, line, col)
		} else {
			val, consumed, err = parseSingleQuoted(keyPart, line, col)
		}
		if err != nil {
			return "", err
		}
		if consumed != len(keyPart) {
			return "", yay.NewError(line, col+consumed, "Unexpected character after key")
		}
		return val.Str(), nil
	}
	for i := 0; i < len(keyPart); i++ {
		c := keyPart[i]
		ok := c == '_' || c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !ok {
			return "", yay.NewError(line, col+i, "Invalid key character")
		}
	}
	return keyPart, nil
}

// decodePropertyValue decodes the part of a property line after its colon,
// applying the single-space rule and the empty-value lookahead of spec
// §4.3.6. col is the column of the byte immediately after the colon.
func (p *Parser) decodePropertyValue(valuePart string, line, col, keyIndent int) (yay.Value, error) {
	if valuePart == "" {
		return p.parseEmptyPropertyValue(line, col, keyIndent)
	}
	if valuePart[0] != ' ' {
		return yay.Value{}, yay.NewError(line, col, "Expected space after \":\"")
	}
	if len(valuePart) > 1 && valuePart[1] == ' ' {
		return yay.Value{}, yay.NewError(line, col+1, "Unexpected space after \":\"")
	}
	rest := valuePart[1:]
	if rest == "" {
		return p.parseEmptyPropertyValue(line, col+1, keyIndent)
	}

	val, err := p.dispatchText(rest, line, col+1, keyIndent, true)
	if err != nil {
		return yay.Value{}, err
	}
	if val.Kind() == yay.KindString {
		return p.maybeConcatenateString(val, keyIndent)
	}
	return val, nil
}

// parseEmptyPropertyValue implements the lookahead used when nothing follows
// a property's colon (spec §4.3.6): the value comes from a deeper-indented
// nested block array, a concatenated quoted string, or a nested map on the
// lines that follow. A deeper-indented block-string/bytes leader, or a
// deeper-indented inline-collection/byte-literal/number value, is rejected —
// those forms must sit on the key's own line.
func (p *Parser) parseEmptyPropertyValue(line, col, keyIndent int) (yay.Value, error) {
	tok, newPos := p.peekSkipBreaksStops()
	if tok != nil && tok.Type == outliner.TokenStart && tok.Text == "- " && tok.Indent > keyIndent {
		p.pos = newPos
		return p.parseBlockArray(tok.Indent)
	}
	if tok != nil && tok.Type == outliner.TokenText && tok.Indent > keyIndent {
		text := cleanTokenText(tok.Text)

		switch {
		case len(text) > 0 && (text[0] == '`' || text[0] == '>'):
			return yay.Value{}, yay.NewError(tok.LineNum, 1, "Unexpected indent")
		case len(text) > 0 && (text[0] == '[' || text[0] == '{' || text[0] == '<' || isNumberStart(text)):
			return yay.Value{}, yay.NewError(tok.LineNum, 1, "Unexpected indent")
		case isCompleteQuotedLine(text):
			return p.parseEmptyValueConcatenatedString(text, tok, newPos)
		case findUnquotedColon(text) != -1:
			p.pos = newPos
			p.advance()
			first, err := p.parseProperty(tok, text)
			if err != nil {
				return yay.Value{}, err
			}
			return p.parseMapBody(tok.Indent, first)
		}
	}
	return yay.Value{}, yay.NewError(line, col, "Expected value after property")
}

// isCompleteQuotedLine reports whether s is, in full, one double- or
// single-quoted string with nothing left over.
func isCompleteQuotedLine(s string) bool {
	if len(s) == 0 || (s[0] != '"' && s[0] != '\'') {
		return false
	}
	_, consumed, err := parseQuotedWhole(s, 1, 1)
	return err == nil && consumed == len(s)
}

// parseQuotedWhole dispatches to parseDoubleQuoted or parseSingleQuoted
// based on s[0], which the caller must already know is '"' or '\''.
func parseQuotedWhole(s string, line, col int) (yay.Value, int, error) {
	if s[0] == '"' {
		return parseDoubleQuoted(s, line, col)
	}
	return parseSingleQuoted(s, line, col)
}

// parseEmptyValueConcatenatedString implements the empty-value-part form of
// spec §4.3.6's concatenated-string rule: two or more consecutive
// deeper-indented lines that are each a complete quoted string concatenate
// into one value. A single such line on its own is rejected — a lone
// quoted string may not sit on its own line under a property with nothing
// after its colon.
func (p *Parser) parseEmptyValueConcatenatedString(firstText string, firstTok *outliner.Token, afterFirst int) (yay.Value, error) {
	firstVal, _, _ := parseQuotedWhole(firstText, firstTok.LineNum, firstTok.Col)

	indent := firstTok.Indent
	p.pos = afterFirst
	p.advance()
	result := firstVal.Str()
	count := 1

	for {
		tok, newPos := p.peekSkipBreaksStops()
		if tok == nil || tok.Type != outliner.TokenText || tok.Indent != indent {
			break
		}
		text := cleanTokenText(tok.Text)
		if !isCompleteQuotedLine(text) {
			break
		}
		val, _, _ := parseQuotedWhole(text, tok.LineNum, tok.Col)

		p.pos = newPos
		p.advance()
		result += val.Str()
		count++
	}

	if count < 2 {
		return yay.Value{}, yay.NewError(firstTok.LineNum, 1, "Unexpected indent")
	}
	return yay.NewString(result), nil
}

// maybeConcatenateString implements the "concatenated strings" bullet of
// spec §4.3.6: a quoted string value may continue onto one or more following
// lines, each itself a bare quoted string at a deeper indent than the
// property's key, with no separator between segments.
func (p *Parser) maybeConcatenateString(first yay.Value, keyIndent int) (yay.Value, error) {
	result := first.Str()
	for {
		tok, newPos := p.peekSkipBreaksStops()
		if tok == nil || tok.Type != outliner.TokenText || tok.Indent <= keyIndent {
			break
		}
		text := cleanTokenText(tok.Text)
		if text == "" || (text[0] != '"' && text[0] != '\'') {
			break
		}

		var (
			seg      yay.Value
			consumed int
			err      error
		)
		if text[0] == '"' {
			seg, consumed, err = parseDoubleQuoted(text, tok.LineNum, tok.Col)
		} else {
			seg, consumed, err = parseSingleQuoted(text, tok.LineNum, tok.Col)
		}
		if err != nil || consumed != len(text) {
			break
		}

		p.pos = newPos
		p.advance()
		result += seg.Str()
	}
	return yay.NewString(result), nil
}

// parseMapBody consumes sibling properties at the given indent following an
// already-parsed first pair, returning the assembled map (spec §4.3.6).
func (p *Parser) parseMapBody(indent int, first yay.Pair) (yay.Value, error) {
	pairs := []yay.Pair{first}
	for {
		tok, newPos := p.peekSkipBreaksStops()
		if tok == nil || tok.Type != outliner.TokenText || tok.Indent != indent {
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

// parseTextAsMap turns a single TEXT line containing "key: value" into a map
// whose first property is this line, consuming sibling properties at the
// same indent that immediately follow it (spec §4.3.6 and the "forms a
// one-entry map, or starts an object" case of §4.3.1's dispatch table).
func (p *Parser) parseTextAsMap(s string, line, col, ownerIndent int) (yay.Value, error) {
	first, err := p.parseProperty(&outliner.Token{LineNum: line, Col: col, Indent: ownerIndent}, s)
	if err != nil {
		return yay.Value{}, err
	}
	return p.parseMapBody(ownerIndent, first)
}

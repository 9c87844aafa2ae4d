package valueparser

import (
	"strings"

	"github.com/shapestone/yay/internal/outliner"
	"github.com/shapestone/yay/pkg/yay"
)

// blockBodyLine is one line gathered into a block string or block bytes
// body: either a blank separator line, or a content line at a given indent.
type blockBodyLine struct {
	blank   bool
	indent  int
	text    string
	lineNum int
}

// collectBlockBody consumes every following TEXT token indented deeper than
// ownerIndent, plus any interleaved BREAK tokens, stopping at the first
// token that is neither (a shallower TEXT, a STOP, or a START). It always
// advances the cursor past whatever it consumes, including trailing blank
// lines — harmless, since every other loop in this package already tolerates
// stray BREAK/STOP tokens via peekSkipBreaksStops.
func (p *Parser) collectBlockBody(ownerIndent int) []blockBodyLine {
	var body []blockBodyLine
	for p.pos < len(p.toks) {
		tok := p.toks[p.pos]
		switch {
		case tok.Type == outliner.TokenBreak:
			body = append(body, blockBodyLine{blank: true, lineNum: tok.LineNum})
			p.pos++
		case tok.Type == outliner.TokenText && tok.Indent > ownerIndent:
			body = append(body, blockBodyLine{indent: tok.Indent, text: tok.Text, lineNum: tok.LineNum})
			p.pos++
		default:
			return trimBlankEnds(body)
		}
	}
	return trimBlankEnds(body)
}

func trimBlankEnds(body []blockBodyLine) []blockBodyLine {
	start := 0
	for start < len(body) && body[start].blank {
		start++
	}
	end := len(body)
	for end > start && body[end-1].blank {
		end--
	}
	return body[start:end]
}

// parseBlockString assembles a block string value from its "`" leader and
// the lines that follow it (spec §4.3.5). In property context the backtick
// must be alone on the line; in root/array-item context it may carry
// same-line content, which becomes the string's first line. Each body
// line's original indentation, relative to the shallowest content line, is
// restored with literal spaces; blank lines at the very start or end of the
// body are dropped. A leading "\n" is prepended when the leader had no
// same-line content and the context is not property.
func (p *Parser) parseBlockString(s string, line, col, ownerIndent int, propertyCtx bool) (yay.Value, error) {
	hasSameLine := len(s) > 1
	var sameLine string
	if hasSameLine {
		if propertyCtx {
			return yay.Value{}, yay.NewError(line, col+1, "Expected newline after block leader in property")
		}
		sameLine = s[2:]
	}

	body := p.collectBlockBody(ownerIndent)

	minIndent := -1
	for _, l := range body {
		if l.blank {
			continue
		}
		if minIndent == -1 || l.indent < minIndent {
			minIndent = l.indent
		}
	}

	lines := make([]string, len(body))
	for i, l := range body {
		if l.blank {
			lines[i] = ""
			continue
		}
		lines[i] = strings.Repeat(" ", l.indent-minIndent) + l.text
	}

	if !hasSameLine && len(lines) == 0 {
		return yay.Value{}, yay.NewError(line, col, "Empty block string not allowed (use \"\" or \"\\n\" explicitly)")
	}

	var result string
	switch {
	case hasSameLine && len(lines) > 0:
		result = sameLine + "\n" + strings.Join(lines, "\n") + "\n"
	case hasSameLine:
		result = sameLine + "\n"
	case propertyCtx:
		result = strings.Join(lines, "\n") + "\n"
	default:
		result = "\n" + strings.Join(lines, "\n") + "\n"
	}

	return yay.NewString(result), nil
}

// parseBlockBytes assembles a byte-array value from the hex groups found on
// the ">" leader's own line (root/array-item context only) and the lines
// that follow it (spec §4.3.4). In property context only a trailing comment
// (never hex) may follow ">" on the key line; hex there is rejected. In
// root/array-item context a bare ">" with nothing else is rejected, since
// hex or a comment must follow on that same line. Blank body lines are
// ignored entirely; they carry no bytes and no separator semantics.
func (p *Parser) parseBlockBytes(s string, line, col, ownerIndent int, propertyCtx bool) (yay.Value, error) {
	var out []byte

	sameLine := s[1:]
	content := strings.TrimLeft(sameLine, " ")
	leadSpaces := len(sameLine) - len(content)

	switch {
	case propertyCtx:
		if content != "" && content[0] != '#' {
			return yay.Value{}, yay.NewError(line, col+1+leadSpaces, "Expected newline after block leader in property")
		}
	case content == "":
		return yay.Value{}, yay.NewError(line, col, "Expected hex or comment in hex block")
	case content[0] == '#':
		// comment only, no hex on the leader's own line
	default:
		decoded, err := decodeHexLine(content, line, col+1+leadSpaces)
		if err != nil {
			return yay.Value{}, err
		}
		out = append(out, decoded...)
	}

	body := p.collectBlockBody(ownerIndent)
	if len(body) == 0 && len(out) == 0 {
		return yay.Value{}, yay.NewError(line, col, "Empty block bytes")
	}

	for _, l := range body {
		if l.blank {
			continue
		}
		decoded, err := decodeHexLine(l.text, l.lineNum, l.indent+1)
		if err != nil {
			return yay.Value{}, err
		}
		out = append(out, decoded...)
	}

	return yay.NewBytes(out), nil
}

// decodeHexLine strips a trailing "# ..." comment from one block-bytes body
// line, splits what remains on whitespace, and decodes each group (spec
// §4.3.4). baseCol is the column of text[0].
func decodeHexLine(text string, lineNum, baseCol int) ([]byte, error) {
	if idx := strings.IndexByte(text, '#'); idx != -1 {
		text = text[:idx]
	}
	var out []byte
	for _, tok := range strings.Fields(text) {
		tokCol := baseCol + strings.Index(text, tok)
		decoded, err := decodeHexGroup(tok, lineNum, tokCol)
		if err != nil {
			return nil, err
		}
		out = append(out, decoded...)
	}
	return out, nil
}

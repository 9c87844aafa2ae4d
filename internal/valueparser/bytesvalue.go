package valueparser

import (
	"golang.org/x/xerrors"

	"github.com/shapestone/yay/pkg/yay"
)

// parseInlineBytes parses an inline byte literal "<h1 h2 h3>" starting at
// s[0] == '<' and reports how many bytes it consumed (spec §4.3.4). Each
// whitespace-separated group is an even-length run of lowercase hex digits.
// Exactly one space after '<' or before '>' is forbidden; an unterminated
// literal is reported as "Unmatched angle bracket".
func parseInlineBytes(s string, line, col int) (yay.Value, int, error) {
	i := 1
	if i < len(s) && s[i] == ' ' {
		return yay.Value{}, 0, yay.NewError(line, col+i, "Unexpected space after \"<\"")
	}
	var out []byte
	if i < len(s) && s[i] == '>' {
		return yay.NewBytes(out), i + 1, nil
	}

	for {
		start := i
		for i < len(s) && s[i] != ' ' && s[i] != '>' {
			i++
		}
		if i == start {
			return yay.Value{}, 0, yay.NewError(line, col+i, "Expected hex byte")
		}
		decoded, err := decodeHexGroup(s[start:i], line, col+start)
		if err != nil {
			return yay.Value{}, 0, err
		}
		out = append(out, decoded...)

		if i >= len(s) {
			return yay.Value{}, 0, yay.NewError(line, col+i, "Unmatched angle bracket")
		}
		if s[i] == '>' {
			return yay.NewBytes(out), i + 1, nil
		}
		if i+1 < len(s) && s[i+1] == '>' {
			return yay.Value{}, 0, yay.NewError(line, col+i, "Unexpected space before \">\"")
		}
		i++
		if i >= len(s) {
			return yay.Value{}, 0, yay.NewError(line, col+i, "Unmatched angle bracket")
		}
	}
}

// decodeHexGroup decodes one whitespace-delimited run of hex digits into
// bytes, enforcing an even digit count and lowercase-only digits.
func decodeHexGroup(tok string, line, col int) ([]byte, error) {
	if len(tok)%2 != 0 {
		return nil, yay.NewError(line, col, "Odd number of hex digits in byte literal")
	}
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		switch {
		case c >= 'A' && c <= 'F':
			return nil, yay.NewError(line, col+i, "Uppercase hex digit (use lowercase)")
		case (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f'):
			// ok
		default:
			return nil, yay.NewError(line, col+i, xerrors.Errorf("Invalid hex digit %q", string(c)).Error())
		}
	}
	out := make([]byte, 0, len(tok)/2)
	for i := 0; i < len(tok); i += 2 {
		out = append(out, byte(hexVal(tok[i])<<4|hexVal(tok[i+1])))
	}
	return out, nil
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return 0
	}
}

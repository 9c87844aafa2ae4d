package valueparser

import (
	"strconv"
	"strings"

	"github.com/shapestone/yay/pkg/yay"
)

// parseNumber parses a number literal starting at s[0] and reports how many
// bytes it consumed (spec §4.3.2). Integers keep their decimal digit string
// verbatim, with no precision loss; any fractional part or exponent forces
// the result to Float. A single space between digits is a digit-grouping
// separator and is stripped rather than treated as a boundary. A capital
// 'E' exponent marker is rejected outright.
func parseNumber(s string, line, col int) (yay.Value, int, error) {
	i := 0
	neg := false
	if s[0] == '-' {
		neg = true
		i = 1
	}

	intDigits, n, ok := scanDigitGroup(s, i)
	if ok {
		i = n
	} else if i >= len(s) || s[i] != '.' {
		return yay.Value{}, 0, yay.NewError(line, col+i, "Invalid number")
	}

	if i < len(s) && s[i] == ' ' && i+1 < len(s) && s[i+1] == '.' {
		return yay.Value{}, 0, yay.NewError(line, col+i, "Unexpected space in number")
	}

	isFloat := false
	var fracDigits []byte
	if i < len(s) && s[i] == '.' {
		isFloat = true
		i++
		if i < len(s) && s[i] == ' ' {
			return yay.Value{}, 0, yay.NewError(line, col+i, "Unexpected space in number")
		}
		frac, n2, ok2 := scanDigitGroup(s, i)
		if !ok2 {
			return yay.Value{}, 0, yay.NewError(line, col+i, "Expected digit after \".\"")
		}
		fracDigits = frac
		i = n2
	}

	var expDigits []byte
	expNeg := false
	hasExp := false
	switch {
	case i < len(s) && s[i] == 'E':
		return yay.Value{}, 0, yay.NewError(line, col+i, "Uppercase exponent (use lowercase 'e')")
	case i < len(s) && s[i] == 'e':
		isFloat = true
		hasExp = true
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			expNeg = s[i] == '-'
			i++
		}
		exp, n3, ok3 := scanDigitGroup(s, i)
		if !ok3 {
			return yay.Value{}, 0, yay.NewError(line, col+i, "Expected digit in exponent")
		}
		expDigits = exp
		i = n3
	}

	if !isFloat {
		return yay.NewInt(neg, string(intDigits)), i, nil
	}

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	sb.Write(intDigits)
	if len(fracDigits) > 0 {
		sb.WriteByte('.')
		sb.Write(fracDigits)
	}
	if hasExp {
		sb.WriteByte('e')
		if expNeg {
			sb.WriteByte('-')
		}
		sb.Write(expDigits)
	}
	f, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		return yay.Value{}, 0, yay.NewError(line, col, "Invalid number")
	}
	return yay.NewFloat(f), i, nil
}

// scanDigitGroup reads one or more ASCII digits starting at s[start],
// silently skipping a lone space that separates two digits (a
// digit-grouping separator), and returns the digits with spaces removed, the
// index just past the group, and whether at least one digit was found.
func scanDigitGroup(s string, start int) ([]byte, int, bool) {
	var digits []byte
	i := start
	for i < len(s) {
		c := s[i]
		if isDigit(c) {
			digits = append(digits, c)
			i++
			continue
		}
		if c == ' ' && i+1 < len(s) && isDigit(s[i+1]) && len(digits) > 0 {
			i++
			continue
		}
		break
	}
	return digits, i, len(digits) > 0
}

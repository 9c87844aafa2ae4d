package yay

import (
	"github.com/shapestone/yay/internal/outliner"
	"github.com/shapestone/yay/internal/scanner"
	"github.com/shapestone/yay/internal/valueparser"
)

// Parse decodes a YAY document from source, running the three-stage
// pipeline of spec §4: scanning (UTF-8 validation and line segmentation),
// outlining (indentation to START/STOP/TEXT/BREAK tokens), and recursive
// descent value parsing.
//
// filename is attached to any returned *Error for diagnostic formatting; an
// empty filename yields a bare message with no "at <line>:<col> of <file>"
// suffix. Parse performs no I/O of its own — callers that want to parse a
// file read it themselves and pass its name for diagnostics.
func Parse(source []byte, filename string) (Value, error) {
	lines, err := scanner.Scan(source)
	if err != nil {
		return Value{}, attachFilename(err, filename)
	}

	tokens := outliner.Outline(lines)

	val, err := valueparser.New(tokens).Parse()
	if err != nil {
		return Value{}, attachFilename(err, filename)
	}

	return val, nil
}

func attachFilename(err error, filename string) error {
	if filename == "" {
		return err
	}
	if ye, ok := err.(*Error); ok {
		ye.Filename = filename
		return ye
	}
	return err
}

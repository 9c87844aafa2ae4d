package yay

import (
	"fmt"
	"strings"
)

// Dump renders v as a multi-line, indented debug representation intended
// for human inspection — e.g. in test failure output or a CLI's --debug
// flag. Like String, it is not YAY syntax and does not round-trip; YAY
// serialization is out of scope for this package (spec §1).
func Dump(v Value) string {
	var sb strings.Builder
	dumpValue(&sb, v, 0)
	return sb.String()
}

func dumpValue(sb *strings.Builder, v Value, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v.Kind() {
	case KindArray:
		elems := v.Elements()
		if len(elems) == 0 {
			sb.WriteString("[]")
			return
		}
		sb.WriteString("[\n")
		for _, e := range elems {
			sb.WriteString(indent)
			sb.WriteString("  ")
			dumpValue(sb, e, depth+1)
			sb.WriteString("\n")
		}
		sb.WriteString(indent)
		sb.WriteString("]")
	case KindMap:
		pairs := v.Pairs()
		if len(pairs) == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{\n")
		for _, p := range pairs {
			sb.WriteString(indent)
			sb.WriteString("  ")
			fmt.Fprintf(sb, "%s: ", p.Key)
			dumpValue(sb, p.Value, depth+1)
			sb.WriteString("\n")
		}
		sb.WriteString(indent)
		sb.WriteString("}")
	default:
		sb.WriteString(v.String())
	}
}

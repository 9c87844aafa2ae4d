package valueparser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shapestone/yay/internal/outliner"
	"github.com/shapestone/yay/internal/scanner"
	"github.com/shapestone/yay/pkg/yay"
)

// parseDoc runs a document through the full scanner/outliner/valueparser
// pipeline, the same sequence pkg/yay.Parse uses.
func parseDoc(t *testing.T, doc string) yay.Value {
	t.Helper()
	lines, err := scanner.Scan([]byte(doc))
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	toks := outliner.Outline(lines)
	val, err := New(toks).Parse()
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return val
}

// diffValues compares two Value trees via their Dump rendering, giving a
// readable diff on mismatch rather than an opaque boolean.
func diffValues(t *testing.T, got, want yay.Value) {
	t.Helper()
	if diff := cmp.Diff(yay.Dump(want), yay.Dump(got)); diff != "" {
		t.Errorf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestParserBuildsFlatMap(t *testing.T) {
	got := parseDoc(t, "a: 1\nb: 2\n")
	want := yay.NewMap([]yay.Pair{
		{Key: "a", Value: yay.NewInt(false, "1")},
		{Key: "b", Value: yay.NewInt(false, "2")},
	})
	diffValues(t, got, want)
}

func TestParserBuildsInlineArray(t *testing.T) {
	got := parseDoc(t, "[1, 2, 3]\n")
	want := yay.NewArray([]yay.Value{
		yay.NewInt(false, "1"), yay.NewInt(false, "2"), yay.NewInt(false, "3"),
	})
	diffValues(t, got, want)
}

func TestParserBuildsInlineMap(t *testing.T) {
	got := parseDoc(t, "{a: 1, b: 2}\n")
	want := yay.NewMap([]yay.Pair{
		{Key: "a", Value: yay.NewInt(false, "1")},
		{Key: "b", Value: yay.NewInt(false, "2")},
	})
	diffValues(t, got, want)
}

func TestParserBuildsBulletCascade(t *testing.T) {
	got := parseDoc(t, "- - - 1\n")
	want := yay.NewArray([]yay.Value{
		yay.NewArray([]yay.Value{
			yay.NewArray([]yay.Value{yay.NewInt(false, "1")}),
		}),
	})
	diffValues(t, got, want)
}

func TestParserBareDashAloneIsNull(t *testing.T) {
	got := parseDoc(t, "- -\n")
	want := yay.NewArray([]yay.Value{yay.Null()})
	diffValues(t, got, want)
}

func TestParserBulletMapItemWithContinuation(t *testing.T) {
	got := parseDoc(t, "- a: 1\n  b: 2\n- a: 3\n  b: 4\n")
	want := yay.NewArray([]yay.Value{
		yay.NewMap([]yay.Pair{{Key: "a", Value: yay.NewInt(false, "1")}, {Key: "b", Value: yay.NewInt(false, "2")}}),
		yay.NewMap([]yay.Pair{{Key: "a", Value: yay.NewInt(false, "3")}, {Key: "b", Value: yay.NewInt(false, "4")}}),
	})
	diffValues(t, got, want)
}

func TestParserBlockBytesBody(t *testing.T) {
	got := parseDoc(t, "data: >\n  de ad\n  be ef\n")
	want := yay.NewMap([]yay.Pair{
		{Key: "data", Value: yay.NewBytes([]byte{0xde, 0xad, 0xbe, 0xef})},
	})
	diffValues(t, got, want)
}

func TestParserFloatWithExponent(t *testing.T) {
	got := parseDoc(t, "1.5e2\n")
	want := yay.NewFloat(150)
	diffValues(t, got, want)
}

func TestParserEmptyPropertyValueNestedArray(t *testing.T) {
	got := parseDoc(t, "items:\n  - 1\n  - 2\n")
	want := yay.NewMap([]yay.Pair{
		{Key: "items", Value: yay.NewArray([]yay.Value{yay.NewInt(false, "1"), yay.NewInt(false, "2")})},
	})
	diffValues(t, got, want)
}

func TestMatchesKeywordRejectsLongerIdentifier(t *testing.T) {
	if n := matchesKeyword("nullable"); n != 0 {
		t.Errorf("matchesKeyword(\"nullable\") = %d, want 0", n)
	}
	if n := matchesKeyword("null"); n != 4 {
		t.Errorf("matchesKeyword(\"null\") = %d, want 4", n)
	}
}

func TestFindUnquotedColonSkipsColonsInsideQuotes(t *testing.T) {
	if idx := findUnquotedColon(`"a:b": 1`); idx != 5 {
		t.Errorf("findUnquotedColon = %d, want 5", idx)
	}
	if idx := findUnquotedColon(`"no colon here"`); idx != -1 {
		t.Errorf("findUnquotedColon = %d, want -1", idx)
	}
}

func TestNestingDepthGuardRejectsExcessiveInlineArrayNesting(t *testing.T) {
	doc := ""
	for i := 0; i < maxNestingDepth+5; i++ {
		doc += "["
	}
	for i := 0; i < maxNestingDepth+5; i++ {
		doc += "]"
	}
	doc += "\n"

	lines, err := scanner.Scan([]byte(doc))
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	toks := outliner.Outline(lines)
	_, err = New(toks).Parse()
	if err == nil {
		t.Fatal("want nesting-depth error")
	}
	ye, ok := err.(*yay.Error)
	if !ok || ye.Message != "Document nested too deeply" {
		t.Errorf("err = %v, want nesting-depth error", err)
	}
}

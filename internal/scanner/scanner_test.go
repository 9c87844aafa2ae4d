package scanner

import (
	"testing"

	"github.com/shapestone/yay/pkg/yay"
)

func TestScanSplitsPlainLines(t *testing.T) {
	lines, err := Scan([]byte("name: a\nport: 1\n"))
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if string(lines[0].Content) != "name: a" {
		t.Errorf("lines[0].Content = %q", lines[0].Content)
	}
	if lines[1].LineNum != 2 {
		t.Errorf("lines[1].LineNum = %d, want 2", lines[1].LineNum)
	}
}

func TestScanExtractsBulletLeaderAndIndent(t *testing.T) {
	lines, err := Scan([]byte("  - item\n"))
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Leader != "- " {
		t.Errorf("Leader = %q, want \"- \"", lines[0].Leader)
	}
	if lines[0].Indent != 2 {
		t.Errorf("Indent = %d, want 2", lines[0].Indent)
	}
	if string(lines[0].Content) != "item" {
		t.Errorf("Content = %q, want item", lines[0].Content)
	}
}

func TestScanRejectsTrailingSpace(t *testing.T) {
	_, err := Scan([]byte("key: a \n"))
	assertYayError(t, err, "Unexpected trailing space")
}

func TestScanRejectsTab(t *testing.T) {
	_, err := Scan([]byte("key:\ta\n"))
	assertYayError(t, err, "Tab not allowed (use spaces)")
}

func TestScanRejectsBOM(t *testing.T) {
	_, err := Scan([]byte{0xEF, 0xBB, 0xBF, 'a'})
	assertYayError(t, err, "Illegal BOM")
}

func TestScanRejectsInvalidUTF8(t *testing.T) {
	_, err := Scan([]byte{0xFF, 0xFE})
	assertYayError(t, err, "Invalid UTF-8 encoding")
}

func TestScanRejectsBareDashFollowedByLetter(t *testing.T) {
	_, err := Scan([]byte("-abc\n"))
	assertYayError(t, err, `Expected space after "-"`)
}

func TestScanAllowsBareDashAsNegativeNumberLeader(t *testing.T) {
	lines, err := Scan([]byte("-5\n"))
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if lines[0].Leader != "" {
		t.Errorf("Leader = %q, want empty (not a list item)", lines[0].Leader)
	}
	if string(lines[0].Content) != "-5" {
		t.Errorf("Content = %q, want -5", lines[0].Content)
	}
}

func TestScanAllowsNegativeInfinityLeader(t *testing.T) {
	lines, err := Scan([]byte("-infinity\n"))
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if lines[0].Leader != "" {
		t.Errorf("Leader = %q, want empty", lines[0].Leader)
	}
}

func TestScanRejectsAsteriskLeader(t *testing.T) {
	_, err := Scan([]byte("*alias\n"))
	assertYayError(t, err, `Unexpected character "*"`)
}

func TestScanSkipsFullLineComments(t *testing.T) {
	lines, err := Scan([]byte("# a comment\nkey: a\n"))
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if string(lines[0].Content) != "key: a" {
		t.Errorf("Content = %q", lines[0].Content)
	}
}

func assertYayError(t *testing.T, err error, wantMsg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("want error %q, got nil", wantMsg)
	}
	ye, ok := err.(*yay.Error)
	if !ok {
		t.Fatalf("want *yay.Error, got %T: %v", err, err)
	}
	if ye.Message != wantMsg {
		t.Errorf("Message = %q, want %q", ye.Message, wantMsg)
	}
}

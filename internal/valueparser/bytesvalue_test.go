package valueparser

import "testing"

func TestParseInlineBytesDecodesHexGroups(t *testing.T) {
	val, consumed, err := parseInlineBytes("<de ad be ef>", 1, 1)
	if err != nil {
		t.Fatalf("parseInlineBytes error: %v", err)
	}
	if consumed != len("<de ad be ef>") {
		t.Errorf("consumed = %d, want %d", consumed, len("<de ad be ef>"))
	}
	want := []byte{0xde, 0xad, 0xbe, 0xef}
	got := val.BytesVal()
	if len(got) != len(want) {
		t.Fatalf("BytesVal() = %x, want %x", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte[%d] = %x, want %x", i, got[i], want[i])
		}
	}
}

func TestParseInlineBytesEmpty(t *testing.T) {
	val, _, err := parseInlineBytes("<>", 1, 1)
	if err != nil {
		t.Fatalf("parseInlineBytes error: %v", err)
	}
	if len(val.BytesVal()) != 0 {
		t.Errorf("BytesVal() = %x, want empty", val.BytesVal())
	}
}

func TestDecodeHexGroupRejectsOddDigitCount(t *testing.T) {
	_, err := decodeHexGroup("abc", 1, 1)
	if err == nil {
		t.Fatal("want error for odd hex digit count")
	}
}

func TestDecodeHexGroupRejectsUppercase(t *testing.T) {
	_, err := decodeHexGroup("AB", 1, 1)
	if err == nil {
		t.Fatal("want error for uppercase hex digits")
	}
}

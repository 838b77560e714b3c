package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	cases := map[int]int{0: DefaultLimit, -3: DefaultLimit, 10: 10, MaxLimit + 1: MaxLimit}
	for in, want := range cases {
		if got := NormalizeLimit(in); got != want {
			t.Fatalf("NormalizeLimit(%d) = %d want %d", in, got, want)
		}
	}
}

func TestCursorRoundTrip(t *testing.T) {
	id, err := ParseCursor(EncodeCursor(42))
	if err != nil {
		t.Fatalf("parse cursor: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected 42 got %d", id)
	}
}

func TestParseCursorRejectsGarbage(t *testing.T) {
	if id, err := ParseCursor(""); err != nil || id != 0 {
		t.Fatalf("empty cursor should be 0, nil; got %d, %v", id, err)
	}
	for _, raw := range []string{"%%%", "bm9wZQ", EncodeCursor(0)} {
		if _, err := ParseCursor(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

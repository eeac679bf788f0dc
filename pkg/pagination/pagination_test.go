package pagination

import (
	"testing"

	"github.com/google/uuid"
)

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := NormalizeLimit(-3); got != DefaultLimit {
		t.Fatalf("expected default limit for negative, got %d", got)
	}
	if got := NormalizeLimit(500); got != MaxLimit {
		t.Fatalf("expected max limit, got %d", got)
	}
	if got := NormalizeLimit(10); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if got := LimitWithBuffer(10); got != 11 {
		t.Fatalf("expected 11, got %d", got)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	id := uuid.New()
	encoded := EncodeCursor(Cursor{SortValue: "Sunset Roast", ID: id})

	parsed, err := ParseCursor(encoded)
	if err != nil {
		t.Fatalf("parse cursor: %v", err)
	}
	if parsed == nil {
		t.Fatal("expected cursor, got nil")
	}
	if parsed.SortValue != "Sunset Roast" {
		t.Fatalf("expected sort value round trip, got %q", parsed.SortValue)
	}
	if parsed.ID != id {
		t.Fatalf("expected id round trip, got %s", parsed.ID)
	}
}

func TestCursorSortValueMayContainSeparator(t *testing.T) {
	id := uuid.New()
	encoded := EncodeCursor(Cursor{SortValue: "19.99|special", ID: id})

	parsed, err := ParseCursor(encoded)
	if err != nil {
		t.Fatalf("parse cursor: %v", err)
	}
	if parsed.SortValue != "19.99|special" {
		t.Fatalf("expected sort value preserved, got %q", parsed.SortValue)
	}
}

func TestParseCursorEmpty(t *testing.T) {
	parsed, err := ParseCursor("  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != nil {
		t.Fatalf("expected nil cursor, got %+v", parsed)
	}
}

func TestParseCursorInvalid(t *testing.T) {
	if _, err := ParseCursor("not-base64!!"); err == nil {
		t.Fatal("expected error for invalid base64")
	}
	if _, err := ParseCursor("bm8tc2VwYXJhdG9y"); err == nil { // "no-separator"
		t.Fatal("expected error for missing separator")
	}
}

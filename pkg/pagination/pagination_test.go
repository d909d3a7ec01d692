package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := NormalizeLimit(-3); got != DefaultLimit {
		t.Fatalf("expected default limit for negatives, got %d", got)
	}
	if got := NormalizeLimit(1000); got != MaxLimit {
		t.Fatalf("expected max limit cap, got %d", got)
	}
	if got := NormalizeLimit(10); got != 10 {
		t.Fatalf("expected passthrough, got %d", got)
	}
	if got := LimitWithBuffer(10); got != 11 {
		t.Fatalf("expected buffered limit 11, got %d", got)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	cursor := Cursor{
		At: time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
		ID: uuid.New(),
	}

	encoded := EncodeCursor(cursor)
	decoded, err := ParseCursor(encoded)
	if err != nil {
		t.Fatalf("ParseCursor returned error: %v", err)
	}
	if decoded == nil {
		t.Fatal("ParseCursor returned nil cursor")
	}
	if !decoded.At.Equal(cursor.At) || decoded.ID != cursor.ID {
		t.Fatalf("cursor mismatch: %+v vs %+v", decoded, cursor)
	}
}

func TestCursorPredicatePerColumn(t *testing.T) {
	cursor := Cursor{
		At: time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
		ID: uuid.New(),
	}

	clause, args := cursor.Predicate("added_at")
	if clause != "added_at < ? OR (added_at = ? AND id < ?)" {
		t.Fatalf("unexpected clause: %s", clause)
	}
	if len(args) != 3 || args[0] != cursor.At || args[1] != cursor.At || args[2] != cursor.ID {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestParseCursorEmptyAndInvalid(t *testing.T) {
	if cursor, err := ParseCursor("  "); err != nil || cursor != nil {
		t.Fatalf("blank cursor should parse to nil, got %v %v", cursor, err)
	}
	if _, err := ParseCursor("not-base64!!"); err == nil {
		t.Fatal("expected error for malformed cursor")
	}
}

package helpers

import (
	"testing"
	"time"
)

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(time.Date(2024, time.December, 17, 15, 4, 5, 0, time.UTC))
	if !start.Equal(time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start %v", start)
	}
	if !end.Equal(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected end %v", end)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-02-29 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if FormatDate(d) != "2024-02-29" {
		t.Errorf("round trip mismatch: %s", FormatDate(d))
	}

	for _, bad := range []string{"", "2024-13-01", "29/02/2024"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestDateOnly(t *testing.T) {
	got := DateOnly(time.Date(2024, time.March, 3, 23, 59, 0, 0, time.UTC))
	if !got.Equal(time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected date %v", got)
	}
}

func TestNullIfEmpty(t *testing.T) {
	blank := "   "
	if NullIfEmpty(&blank) != nil {
		t.Error("blank string should become nil")
	}
	padded := " a@b.c "
	if got := NullIfEmpty(&padded); got == nil || *got != "a@b.c" {
		t.Errorf("expected trimmed value, got %v", got)
	}
	if NullIfEmpty(nil) != nil {
		t.Error("nil should stay nil")
	}
}

func TestLikePattern(t *testing.T) {
	if got := LikePattern(" 50%_off "); got != `%50\%\_off%` {
		t.Errorf("unexpected pattern %q", got)
	}
}

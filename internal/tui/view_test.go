package tui

import (
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		text string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a long query about visas", 10, "a long ..."},
		{"tiny", 3, "tiny"},
	}
	for _, tc := range cases {
		if got := truncate(tc.text, tc.max); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.text, tc.max, got, tc.want)
		}
	}
}

func TestExampleIndex(t *testing.T) {
	cases := []struct {
		key  string
		want int
	}{
		{"alt+1", 0},
		{"alt+4", 3},
		{"alt+5", -1},
		{"enter", -1},
	}
	for _, tc := range cases {
		if got := exampleIndex(tc.key); got != tc.want {
			t.Errorf("exampleIndex(%q) = %d, want %d", tc.key, got, tc.want)
		}
	}
}

func TestHumanTime(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero", time.Time{}, ""},
		{"seconds", now.Add(-30 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-48 * time.Hour), "2d ago"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := humanTime(tc.t); got != tc.want {
				t.Errorf("humanTime = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPlural(t *testing.T) {
	if got := plural(1, "query", "queries"); got != "query" {
		t.Errorf("plural(1) = %q", got)
	}
	if got := plural(2, "query", "queries"); got != "queries" {
		t.Errorf("plural(2) = %q", got)
	}
}

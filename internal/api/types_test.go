package api

import "testing"

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, size, want int
	}{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{12, 5, 3},
		{10, 0, 0},
	}
	for _, tc := range cases {
		page := HistoryPage{TotalCount: tc.total, PageSize: tc.size}
		if got := page.TotalPages(); got != tc.want {
			t.Errorf("TotalPages(total=%d, size=%d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}

func TestIsExampleTemplate(t *testing.T) {
	if !ExampleTemplate("Do I need a visa?").IsExampleTemplate() {
		t.Error("template entry should report IsExampleTemplate")
	}
	if (HistoryEntry{ID: 0}).IsExampleTemplate() {
		t.Error("id 0 is a real entry, not a template")
	}
	if (HistoryEntry{ID: 42}).IsExampleTemplate() {
		t.Error("id 42 is a real entry, not a template")
	}
}

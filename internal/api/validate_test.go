package api

import (
	"strings"
	"testing"
)

func TestValidateQuery(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{name: "valid", text: "Visa for Japan", want: ""},
		{name: "valid after trim", text: "  abc  ", want: ""},
		{name: "empty", text: "", want: "Query cannot be empty"},
		{name: "whitespace only", text: "   \n\t", want: "Query cannot be empty"},
		{name: "too short", text: "ab", want: "Query is too short (min 3 characters)"},
		{name: "exactly min", text: "abc", want: ""},
		{name: "too long", text: strings.Repeat("a", 1001), want: "Query is too long (max 1000 characters)"},
		{name: "exactly max", text: strings.Repeat("a", 1000), want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidateQuery(tc.text); got != tc.want {
				t.Fatalf("ValidateQuery(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

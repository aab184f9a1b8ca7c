package tui

import "testing"

func TestCompactSingleLine(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"a\n  b\tc", 20, "a b c"},
		{"abcdefgh", 6, "abc..."},
		{"abcdefgh", 2, "ab"},
		{"héllo wörld", 8, "héllo..."},
		{"anything", 0, ""},
	}
	for _, tc := range cases {
		if got := compactSingleLine(tc.in, tc.limit); got != tc.want {
			t.Fatalf("compactSingleLine(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestCycleStringWraps(t *testing.T) {
	options := []string{"a", "b", "c"}
	if got := cycleString(options, "a", -1); got != "c" {
		t.Fatalf("expected wrap to c, got %q", got)
	}
	if got := cycleString(options, "c", 1); got != "a" {
		t.Fatalf("expected wrap to a, got %q", got)
	}
	if got := cycleString(options, "zzz", 1); got != "b" {
		t.Fatalf("unknown value should start from the first option, got %q", got)
	}
}

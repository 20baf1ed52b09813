package theme

import (
	"strings"
	"testing"
)

func TestDomainColorFallsBackForInvalidValues(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"#ff8800":   "#ff8800",
		"#abc":      "#abc",
		" #ABCDEF ": "#ABCDEF",
		"":          string(Lavender),
		"orange":    string(Lavender),
		"#12345":    string(Lavender),
	}
	for in, want := range cases {
		if got := string(DomainColor(in)); got != want {
			t.Fatalf("DomainColor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProgressBarClampsAndFills(t *testing.T) {
	t.Parallel()

	cases := []struct {
		percent int
		filled  int
		label   string
	}{
		{percent: 0, filled: 0, label: "  0%"},
		{percent: 30, filled: 3, label: " 30%"},
		{percent: 100, filled: 10, label: "100%"},
		{percent: 140, filled: 10, label: "100%"},
		{percent: -5, filled: 0, label: "  0%"},
	}
	for _, tc := range cases {
		got := ProgressBar(tc.percent, 10)
		if n := strings.Count(got, "█"); n != tc.filled {
			t.Fatalf("ProgressBar(%d) filled = %d, want %d: %q", tc.percent, n, tc.filled, got)
		}
		if n := strings.Count(got, "░"); n != 10-tc.filled {
			t.Fatalf("ProgressBar(%d) empty = %d, want %d: %q", tc.percent, n, 10-tc.filled, got)
		}
		if !strings.HasSuffix(got, tc.label) {
			t.Fatalf("ProgressBar(%d) = %q, want suffix %q", tc.percent, got, tc.label)
		}
	}
}

func TestDomainKeepsName(t *testing.T) {
	t.Parallel()
	if got := Domain("Fitness", "#ff0000"); !strings.Contains(got, "Fitness") {
		t.Fatalf("Domain() = %q", got)
	}
}

package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPadToWidth(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  int
	}{
		{"abc", 6, 6},
		{"abcdef", 3, 3},
		{"abc", 3, 3},
		{"abc", 0, 0},
	}
	for _, tt := range tests {
		got := PadToWidth(tt.in, tt.width)
		if lipgloss.Width(got) != tt.want {
			t.Errorf("PadToWidth(%q, %d) width = %d, want %d", tt.in, tt.width, lipgloss.Width(got), tt.want)
		}
	}
}

func TestFitClipsHeight(t *testing.T) {
	view := "one\ntwo\nthree\nfour"
	got := strings.Split(Fit(view, 10, 2), "\n")
	if len(got) != 2 {
		t.Fatalf("Fit returned %d lines, want 2", len(got))
	}
	if !strings.HasPrefix(got[0], "one") {
		t.Errorf("first line = %q, want prefix %q", got[0], "one")
	}
	if !strings.Contains(got[1], "enlarge") {
		t.Errorf("last line = %q, want overflow notice", got[1])
	}
}

func TestFitKeepsShortViews(t *testing.T) {
	got := strings.Split(Fit("a\nb", 4, 5), "\n")
	if len(got) != 2 {
		t.Fatalf("Fit returned %d lines, want 2", len(got))
	}
	for _, line := range got {
		if lipgloss.Width(line) != 4 {
			t.Errorf("line %q width = %d, want 4", line, lipgloss.Width(line))
		}
	}
}

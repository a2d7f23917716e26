package tui

import (
	"strings"
	"testing"
)

func TestOverlayAtPlacesWindow(t *testing.T) {
	base := strings.Join([]string{
		"..........",
		"..........",
		"..........",
		"..........",
	}, "\n")
	got := overlayAt(base, "AB\nCD", 3, 1, 10, 4)
	want := strings.Join([]string{
		"..........",
		"...AB.....",
		"...CD.....",
		"..........",
	}, "\n")
	if got != want {
		t.Errorf("overlayAt mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestOverlayAtClipsOutOfRangeRows(t *testing.T) {
	base := "....\n...."
	got := overlayAt(base, "XX\nYY\nZZ", 0, 1, 4, 2)
	want := "....\nYY.."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestOverlayCentered(t *testing.T) {
	lines := make([]string, 5)
	for i := range lines {
		lines[i] = strings.Repeat(".", 11)
	}
	got := overlayCentered(strings.Join(lines, "\n"), "###", 11, 5)
	rows := strings.Split(got, "\n")
	if rows[2] != "....###...." {
		t.Errorf("middle row = %q, want centered overlay", rows[2])
	}
	if rows[0] != lines[0] || rows[4] != lines[4] {
		t.Error("rows outside the overlay changed")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello world", 5); got != "hell…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("hi", 5); got != "hi" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("hi", 0); got != "" {
		t.Errorf("truncate zero = %q", got)
	}
}

func TestTrimLastRune(t *testing.T) {
	if got := trimLastRune("café"); got != "caf" {
		t.Errorf("trimLastRune = %q, want caf", got)
	}
	if got := trimLastRune("a"); got != "" {
		t.Errorf("trimLastRune single = %q", got)
	}
	if got := trimLastRune(""); got != "" {
		t.Errorf("trimLastRune empty = %q", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("abcd", 2); got != "abcd" {
		t.Errorf("padRight wide = %q", got)
	}
}

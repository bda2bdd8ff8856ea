package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestPlaceOverlayCentersDialog(t *testing.T) {
	bg := strings.TrimSuffix(strings.Repeat("aaaaaaaaaa\n", 5), "\n")
	dialog := "XX"

	out := PlaceOverlay(bg, dialog, 10, 5)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}

	// Dialog lands on the middle row, centered horizontally.
	mid := ansi.Strip(lines[2])
	if idx := strings.Index(mid, "XX"); idx != 4 {
		t.Fatalf("dialog at column %d in %q, want 4", idx, mid)
	}

	// Rows above and below keep the background text.
	if got := ansi.Strip(lines[0]); got != "aaaaaaaaaa" {
		t.Errorf("top row = %q, want background", got)
	}
}

func TestPlaceOverlayDimsMargins(t *testing.T) {
	out := PlaceOverlay("hello", "X", 5, 1)
	if !strings.Contains(out, "X") {
		t.Fatal("dialog content missing")
	}
	// Margin segments are re-rendered through DimStyle.
	if !strings.Contains(out, DimStyle.Render("he")) {
		t.Error("left margin not dimmed")
	}
	if !strings.Contains(out, DimStyle.Render("lo")) {
		t.Error("right margin not dimmed")
	}
}

func TestPlaceOverlayStripsBackgroundCodes(t *testing.T) {
	styled := "\x1b[31mredredred\x1b[0m"
	out := PlaceOverlay(styled, "MM", 9, 1)
	if got := ansi.Strip(out); got != "redMMdred" {
		t.Errorf("composited row = %q, want %q", got, "redMMdred")
	}
}

func TestPlaceOverlayPadsShortScreen(t *testing.T) {
	out := PlaceOverlay("", "X", 20, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.Contains(ansi.Strip(lines[1]), "X") {
		t.Error("dialog missing from padded screen")
	}
	// Every row fills the full width.
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 20 {
			t.Errorf("row %d width = %d, want 20", i, w)
		}
	}
}

func TestPlaceOverlayDialogLargerThanScreen(t *testing.T) {
	out := PlaceOverlay("bg", "WIDE DIALOG", 4, 1)
	if !strings.Contains(ansi.Strip(out), "WIDE DIALOG") {
		t.Error("oversized dialog should still render from column 0")
	}
}

func TestScreenRowsNormalizes(t *testing.T) {
	rows := screenRows("ab\n\x1b[1mcd\x1b[0m", 4, 3)
	want := []string{"ab  ", "cd  ", "    "}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, rows[i], want[i])
		}
	}
}

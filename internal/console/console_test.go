package console

import (
	"testing"

	"github.com/retro8/chip8emu/internal/display"
)

func TestCellRune(t *testing.T) {
	cases := []struct {
		top, bottom bool
		want        string
	}{
		{true, true, "█"},
		{true, false, "▀"},
		{false, true, "▄"},
		{false, false, " "},
	}
	for _, tc := range cases {
		if got := cellRune(tc.top, tc.bottom); got != tc.want {
			t.Fatalf("cellRune(%v,%v) got %q want %q", tc.top, tc.bottom, got, tc.want)
		}
	}
}

func TestPixelChanged_MarksCellDirty(t *testing.T) {
	c := New(Config{})
	c.PixelChanged(10, 5, true)
	// Rows 4 and 5 share cell row 2.
	if _, ok := c.dirty[2*display.Width+10]; !ok {
		t.Fatal("cell (10,2) not marked dirty")
	}
	if len(c.dirty) != 1 {
		t.Fatalf("dirty cells got %d want 1", len(c.dirty))
	}
	if !c.shadow[5*display.Width+10] {
		t.Fatal("shadow buffer not updated")
	}
}

func TestCleared_MarksAllCellsDirty(t *testing.T) {
	c := New(Config{})
	c.shadow[0] = true
	c.Cleared()
	if want := display.Width * display.Height / 2; len(c.dirty) != want {
		t.Fatalf("dirty cells got %d want %d", len(c.dirty), want)
	}
	if c.shadow[0] {
		t.Fatal("shadow buffer not cleared")
	}
}

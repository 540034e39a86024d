// Package console is the terminal frontend: raw-mode keyboard input, ANSI
// half-block rendering of the framebuffer, and an oto-backed buzzer.
package console

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/retro8/chip8emu/internal/chip8"
	"github.com/retro8/chip8emu/internal/display"
	"github.com/retro8/chip8emu/internal/keypad"
)

// keyHold is how long a terminal key press reads as held. Terminals deliver
// no key-up events, so presses expire on their own.
const keyHold = 150 * time.Millisecond

// charMap lays the COSMAC keypad onto the same QWERTY block the windowed
// frontend uses.
var charMap = map[byte]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Config contains terminal frontend settings.
type Config struct {
	CyclesPerFrame int
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.CyclesPerFrame <= 0 {
		c.CyclesPerFrame = 12
	}
}

// Console renders the framebuffer as half-block cells, two pixels per
// character row. It implements display.Sink so only changed cells repaint.
type Console struct {
	cfg  Config
	m    *chip8.Machine
	keys *keypad.State
	out  *bufio.Writer

	shadow [display.Width * display.Height]bool
	dirty  map[int]struct{} // cell index: (y/2)*Width + x
}

// New returns a console ready to be used as the machine's display sink.
// Attach the machine with SetMachine before Run.
func New(cfg Config) *Console {
	cfg.Defaults()
	return &Console{
		cfg:   cfg,
		keys:  keypad.New(keyHold),
		out:   bufio.NewWriter(os.Stdout),
		dirty: make(map[int]struct{}),
	}
}

// Keys exposes the keypad for machine construction.
func (c *Console) Keys() *keypad.State { return c.keys }

// SetMachine attaches the machine driven by Run.
func (c *Console) SetMachine(m *chip8.Machine) { c.m = m }

// PixelChanged implements display.Sink. Called from the stepping goroutine;
// the repaint happens in the same loop, so no locking is needed.
func (c *Console) PixelChanged(x, y int, on bool) {
	c.shadow[y*display.Width+x] = on
	c.dirty[(y/2)*display.Width+x] = struct{}{}
}

// Cleared implements display.Sink.
func (c *Console) Cleared() {
	c.shadow = [display.Width * display.Height]bool{}
	for y := 0; y < display.Height/2; y++ {
		for x := 0; x < display.Width; x++ {
			c.dirty[y*display.Width+x] = struct{}{}
		}
	}
}

// Run drives the machine at ~60 frames per second until ctx is cancelled, the
// user hits ESC, or the machine faults. The terminal is switched to raw mode
// for the duration.
func (c *Console) Run(ctx context.Context) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Fprint(os.Stdout, "\x1b[?25h\x1b[0m\n") // cursor back on
	}()

	c.out.WriteString("\x1b[2J\x1b[?25l") // clear screen, hide cursor
	c.Cleared()
	c.flush()

	quit := make(chan struct{})
	go c.readInput(quit)

	frame := time.NewTicker(time.Second / 60)
	defer frame.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-quit:
			return nil
		case <-frame.C:
			if err := c.m.Run(c.cfg.CyclesPerFrame); err != nil {
				return err
			}
			c.flush()
		}
	}
}

// readInput feeds stdin bytes into the keypad until ESC or read failure.
func (c *Console) readInput(quit chan<- struct{}) {
	defer close(quit)
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return
		}
		b := buf[0]
		if b == 0x1b || b == 0x03 { // ESC or Ctrl-C
			return
		}
		if code, ok := charMap[b]; ok {
			c.keys.Press(code)
		}
	}
}

// flush repaints every dirty cell and resets the dirty set.
func (c *Console) flush() {
	for idx := range c.dirty {
		x := idx % display.Width
		cy := idx / display.Width
		top := c.shadow[(cy*2)*display.Width+x]
		bottom := c.shadow[(cy*2+1)*display.Width+x]
		fmt.Fprintf(c.out, "\x1b[%d;%dH%s", cy+1, x+1, cellRune(top, bottom))
		delete(c.dirty, idx)
	}
	c.out.Flush()
}

// cellRune picks the half-block character for a two-pixel cell.
func cellRune(top, bottom bool) string {
	switch {
	case top && bottom:
		return "█" // full block
	case top:
		return "▀" // upper half
	case bottom:
		return "▄" // lower half
	default:
		return " "
	}
}

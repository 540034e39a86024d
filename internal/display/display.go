// Package display implements the 64x32 monochrome framebuffer with XOR sprite
// compositing, wraparound addressing and collision detection.
package display

// Framebuffer dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Sprite is a read-only view over 1-15 consecutive memory bytes; each byte is
// one 8-pixel-wide row.
type Sprite []byte

// Sink receives incremental presentation updates from the framebuffer. A
// frontend implements it to repaint only what changed; it must not block.
type Sink interface {
	// PixelChanged reports the new state of a single pixel after a draw.
	PixelChanged(x, y int, on bool)
	// Cleared reports that the whole buffer was reset to unlit.
	Cleared()
}

// Buffer is the framebuffer. Pixels are stored row-major, index y*Width+x.
// It is mutated only by Draw and Clear, which the dispatcher calls from a
// single goroutine.
type Buffer struct {
	pixels [Width * Height]bool
	sink   Sink
}

// New returns an unlit framebuffer. sink may be nil for headless use.
func New(sink Sink) *Buffer {
	return &Buffer{sink: sink}
}

// Clear resets every pixel to unlit and signals the sink.
func (b *Buffer) Clear() {
	b.pixels = [Width * Height]bool{}
	if b.sink != nil {
		b.sink.Cleared()
	}
}

// Draw XOR-composites the sprite at (x, y) and returns 1 if any lit pixel was
// turned off, else 0. Rows wrap vertically, columns wrap horizontally.
func (b *Buffer) Draw(x, y byte, sprite Sprite) byte {
	var collision byte
	for i, row := range sprite {
		if b.drawRow(x, byte((int(y)+i)%Height), row) {
			collision = 1
		}
	}
	return collision
}

// drawRow composites one 8-pixel row and reports whether it collided.
func (b *Buffer) drawRow(x, y byte, row byte) bool {
	collided := false
	for bit := 0; bit < 8; bit++ {
		src := row&(0x80>>bit) != 0
		if !src {
			continue
		}
		col := (int(x) + bit) % Width
		idx := int(y)*Width + col
		if b.pixels[idx] {
			collided = true
		}
		b.pixels[idx] = !b.pixels[idx]
		if b.sink != nil {
			b.sink.PixelChanged(col, int(y), b.pixels[idx])
		}
	}
	return collided
}

// Pixel reports the state of the pixel at (x, y).
func (b *Buffer) Pixel(x, y int) bool {
	return b.pixels[y*Width+x]
}

// Snapshot copies the buffer into dst, which must hold Width*Height entries.
func (b *Buffer) Snapshot(dst []bool) {
	copy(dst, b.pixels[:])
}

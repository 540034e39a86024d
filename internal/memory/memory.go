// Package memory implements the CHIP-8 address space: 4 KiB of flat storage
// with the hexadecimal glyph font resident below 0x200 and the loaded ROM
// above it, plus the 16-frame return-address stack.
package memory

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// Size is the total addressable memory in bytes.
	Size = 4096
	// ROMStart is the address ROMs are loaded at and execution begins.
	ROMStart = 0x200
	// FontStart is the base address of the built-in glyph font.
	FontStart = 0x000
	// GlyphSize is the number of bytes per font glyph.
	GlyphSize = 5
)

// ErrROMTooLarge is returned when a ROM does not fit between ROMStart and the
// end of memory.
var ErrROMTooLarge = errors.New("memory: ROM exceeds capacity")

// Memory is the 4 KiB store. The font occupies bytes 0x000-0x04F; everything
// from ROMStart up is program space.
type Memory struct {
	bytes [Size]byte
}

// font is the canonical 4x5 hexadecimal digit bitmap, 5 bytes per glyph,
// digits 0-F in order. Games index into this table via the Fx29 instruction,
// so the values are load-bearing.
var font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// New returns memory with the font installed and program space zeroed.
func New() *Memory {
	m := &Memory{}
	copy(m.bytes[FontStart:], font[:])
	return m
}

// LoadROM copies rom into memory starting at ROMStart. The ROM is an opaque
// byte sequence with no header.
func (m *Memory) LoadROM(rom []byte) error {
	if len(rom) > Size-ROMStart {
		return fmt.Errorf("%w: %d bytes, %d available", ErrROMTooLarge, len(rom), Size-ROMStart)
	}
	copy(m.bytes[ROMStart:], rom)
	return nil
}

// Fetch returns the big-endian 16-bit instruction word at pc. Addresses are
// masked to 12 bits by the caller, so pc+1 stays in bounds for every pc
// except 0xFFF; a fetch there wraps onto the first byte.
func (m *Memory) Fetch(pc uint16) uint16 {
	if pc == Size-1 {
		return uint16(m.bytes[pc])<<8 | uint16(m.bytes[0])
	}
	return binary.BigEndian.Uint16(m.bytes[pc : pc+2])
}

// Load returns a read-only view of n bytes starting at addr. The view aliases
// memory and is only valid until the next Store or LoadROM.
func (m *Memory) Load(addr uint16, n uint16) []byte {
	end := uint32(addr) + uint32(n)
	if end > Size {
		end = Size
	}
	return m.bytes[addr:end]
}

// Store writes b into memory starting at addr, truncating at the end of the
// address space.
func (m *Memory) Store(addr uint16, b []byte) {
	copy(m.bytes[addr:], b)
}

// GlyphAddr returns the font base address for hexadecimal digit d.
func GlyphAddr(d byte) uint16 {
	return FontStart + GlyphSize*uint16(d)
}

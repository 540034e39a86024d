// Package disasm renders CHIP-8 instruction words as one-line assembly for
// trace logging. Opcode identification uses the retrogolib CHIP-8 tables.
package disasm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// lookup finds the opcode definition matching w, or nil.
func lookup(w uint16) *chip8.Instruction {
	firstNibble := (w & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&w == op.Info.Value {
			return op.Instruction
		}
	}
	return nil
}

// Valid reports whether w matches a defined opcode pattern.
func Valid(w uint16) bool {
	return lookup(w) != nil
}

// Disassemble returns assembly text for w, or a raw word directive when w
// matches no defined opcode.
func Disassemble(w uint16) string {
	ins := lookup(w)
	if ins == nil {
		return fmt.Sprintf(".word $%04X", w)
	}
	return fmt.Sprintf("%s%s", ins.Name, operands(w))
}

// operands formats the operand fields of w according to its top-nibble group.
func operands(w uint16) string {
	nnn := w & 0x0FFF
	x := w >> 8 & 0xF
	y := w >> 4 & 0xF
	kk := byte(w)
	n := w & 0xF

	switch w >> 12 {
	case 0x0:
		return "" // cls / ret carry no operands
	case 0x1, 0x2:
		return fmt.Sprintf(" $%03X", nnn)
	case 0x3, 0x4, 0x6, 0x7, 0xC:
		return fmt.Sprintf(" v%X, $%02X", x, kk)
	case 0x5, 0x8, 0x9:
		return fmt.Sprintf(" v%X, v%X", x, y)
	case 0xA:
		return fmt.Sprintf(" i, $%03X", nnn)
	case 0xB:
		return fmt.Sprintf(" v0, $%03X", nnn)
	case 0xD:
		return fmt.Sprintf(" v%X, v%X, $%X", x, y, n)
	default:
		return fmt.Sprintf(" v%X", x)
	}
}

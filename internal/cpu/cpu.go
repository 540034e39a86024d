// Package cpu implements the CHIP-8 instruction decoder and dispatcher: the
// register file, address register, program counter and the fetch-decode-execute
// step over the 35-opcode instruction set.
package cpu

import (
	"fmt"
	"math/rand/v2"

	"github.com/retro8/chip8emu/internal/display"
	"github.com/retro8/chip8emu/internal/memory"
	"github.com/retro8/chip8emu/internal/timer"
)

// NumRegisters is the number of general-purpose 8-bit registers V0-VF.
const NumRegisters = 16

// flags is the index of VF, the carry/borrow/collision register.
const flags = 0xF

// addrMask constrains addresses to the 12-bit space.
const addrMask = 0xFFF

// Surface is the drawable the display instructions render to.
type Surface interface {
	Clear()
	Draw(x, y byte, sprite display.Sprite) byte
}

// Keypad is the 16-key input source polled by the skip and wait instructions.
// Implementations must return promptly.
type Keypad interface {
	IsKeyDown(key byte) bool
	PressedKey() (byte, bool)
}

// Buzzer is the tone generator driven by the sound timer.
type Buzzer interface {
	Start(frequency, volume float64)
	Play()
	Pause()
}

// CPU holds all per-instance execution state. Step must only be called from
// one goroutine at a time; the timer counters are the only state shared with
// the background ticker.
type CPU struct {
	v  [NumRegisters]byte
	i  uint16 // address register
	pc uint16

	mem    *memory.Memory
	stack  *memory.Stack
	screen Surface
	keys   Keypad
	buzzer Buzzer

	delay *timer.Counter
	sound *timer.Counter

	// randByte supplies entropy for Cxkk. Tests override it for determinism.
	randByte func() byte
}

// New returns a CPU with the program counter at the ROM load origin and all
// registers zeroed.
func New(mem *memory.Memory, screen Surface, keys Keypad, buzzer Buzzer, delay, sound *timer.Counter) *CPU {
	return &CPU{
		pc:       memory.ROMStart,
		mem:      mem,
		stack:    &memory.Stack{},
		screen:   screen,
		keys:     keys,
		buzzer:   buzzer,
		delay:    delay,
		sound:    sound,
		randByte: func() byte { return byte(rand.UintN(256)) },
	}
}

// SetRandSource overrides the Cxkk entropy source.
func (c *CPU) SetRandSource(f func() byte) { c.randByte = f }

// PC returns the current program counter.
func (c *CPU) PC() uint16 { return c.pc }

// V returns the value of register x.
func (c *CPU) V(x int) byte { return c.v[x] }

// I returns the address register.
func (c *CPU) I() uint16 { return c.i }

// advance moves the program counter forward one instruction, wrapping inside
// the 12-bit address space.
func (c *CPU) advance() {
	c.pc = (c.pc + 2) & addrMask
}

// rewind moves the program counter back one instruction so the same
// instruction is retried on the next step. Used by the blocking key wait.
func (c *CPU) rewind() {
	c.pc = (c.pc - 2) & addrMask
}

// Step fetches, decodes and executes exactly one instruction. A returned
// error is fatal for the instance: an unknown opcode, a call-stack fault, or
// corrupted control flow.
func (c *CPU) Step() error {
	addr := c.pc
	op := c.mem.Fetch(c.pc)
	c.advance()
	if err := c.execute(op); err != nil {
		return fmt.Errorf("at %03X: %w", addr, err)
	}
	return nil
}

// execute dispatches a decoded instruction word. Opcodes group by their top
// nibble; ambiguous groups discriminate on the trailing nibble or byte.
func (c *CPU) execute(op uint16) error {
	nnn := op & 0x0FFF
	x := byte(op >> 8 & 0xF)
	y := byte(op >> 4 & 0xF)
	kk := byte(op)
	n := byte(op & 0xF)

	switch op >> 12 {
	case 0x0:
		switch op {
		case 0x00E0:
			c.screen.Clear()
		case 0x00EE:
			ret, err := c.stack.Pop()
			if err != nil {
				return err
			}
			c.pc = ret
		default:
			return &DecodeError{Opcode: op}
		}
	case 0x1:
		c.pc = nnn
	case 0x2:
		if err := c.stack.Push(c.pc); err != nil {
			return err
		}
		c.pc = nnn
	case 0x3:
		if c.v[x] == kk {
			c.advance()
		}
	case 0x4:
		if c.v[x] != kk {
			c.advance()
		}
	case 0x5:
		if n != 0 {
			return &DecodeError{Opcode: op}
		}
		if c.v[x] == c.v[y] {
			c.advance()
		}
	case 0x6:
		c.v[x] = kk
	case 0x7:
		c.v[x] += kk
	case 0x8:
		return c.executeALU(op, x, y)
	case 0x9:
		if n != 0 {
			return &DecodeError{Opcode: op}
		}
		if c.v[x] != c.v[y] {
			c.advance()
		}
	case 0xA:
		c.i = nnn
	case 0xB:
		c.pc = (nnn + uint16(c.v[0])) & addrMask
	case 0xC:
		c.v[x] = c.randByte() & kk
	case 0xD:
		sprite := display.Sprite(c.mem.Load(c.i, uint16(n)))
		c.v[flags] = c.screen.Draw(c.v[x], c.v[y], sprite)
	case 0xE:
		switch kk {
		case 0x9E:
			if c.keys.IsKeyDown(c.v[x]) {
				c.advance()
			}
		case 0xA1:
			if !c.keys.IsKeyDown(c.v[x]) {
				c.advance()
			}
		default:
			return &DecodeError{Opcode: op}
		}
	case 0xF:
		return c.executeMisc(op, x)
	}
	return nil
}

// executeALU handles the 8xy_ register-to-register group. VF is written
// after the arithmetic, so an instruction with VF as its destination still
// ends up holding the flag.
func (c *CPU) executeALU(op uint16, x, y byte) error {
	switch op & 0xF {
	case 0x0:
		c.v[x] = c.v[y]
	case 0x1:
		c.v[x] |= c.v[y]
	case 0x2:
		c.v[x] &= c.v[y]
	case 0x3:
		c.v[x] ^= c.v[y]
	case 0x4:
		sum, carry := addCarry(c.v[x], c.v[y])
		c.v[x] = sum
		c.v[flags] = carry
	case 0x5:
		diff, noBorrow := subtract(c.v[x], c.v[y])
		c.v[x] = diff
		c.v[flags] = noBorrow
	case 0x6:
		res, low := shiftRight(c.v[x])
		c.v[x] = res
		c.v[flags] = low
	case 0x7:
		diff, noBorrow := subtract(c.v[y], c.v[x])
		c.v[x] = diff
		c.v[flags] = noBorrow
	case 0xE:
		res, high := shiftLeft(c.v[x])
		c.v[x] = res
		c.v[flags] = high
	default:
		return &DecodeError{Opcode: op}
	}
	return nil
}

// executeMisc handles the Ex/Fx timer, keypad and memory-block group.
func (c *CPU) executeMisc(op uint16, x byte) error {
	switch op & 0xFF {
	case 0x07:
		c.v[x] = c.delay.Read()
	case 0x0A:
		key, ok := c.keys.PressedKey()
		if !ok {
			c.rewind()
			return nil
		}
		c.v[x] = key
	case 0x15:
		c.delay.Write(c.v[x])
	case 0x18:
		c.sound.Write(c.v[x])
		if c.v[x] > 0 {
			c.buzzer.Play()
		}
	case 0x1E:
		c.i = (c.i + uint16(c.v[x])) & addrMask
	case 0x29:
		c.i = memory.GlyphAddr(c.v[x]) & addrMask
	case 0x33:
		v := c.v[x]
		c.mem.Store(c.i, []byte{v / 100 % 10, v / 10 % 10, v % 10})
	case 0x55:
		c.mem.Store(c.i, c.v[:x+1])
	case 0x65:
		copy(c.v[:x+1], c.mem.Load(c.i, uint16(x)+1))
	default:
		return &DecodeError{Opcode: op}
	}
	return nil
}

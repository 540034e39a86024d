// Package chip8 wires the interpreter components into a runnable machine and
// exposes the engine surface: construct with a ROM, step one instruction at a
// time, tear down.
package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"

	"github.com/retro8/chip8emu/internal/cpu"
	"github.com/retro8/chip8emu/internal/disasm"
	"github.com/retro8/chip8emu/internal/display"
	"github.com/retro8/chip8emu/internal/memory"
	"github.com/retro8/chip8emu/internal/timer"
)

// Buzzer and Keypad are the capability interfaces frontends implement.
type (
	Buzzer = cpu.Buzzer
	Keypad = cpu.Keypad
)

// Config contains settings that affect machine behavior.
type Config struct {
	ToneHz     float64 // buzzer frequency
	ToneVolume float64 // buzzer volume, 0..1
	Trace      bool    // log every executed instruction
	Logger     *log.Logger
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.ToneHz <= 0 {
		c.ToneHz = 440
	}
	if c.ToneVolume <= 0 {
		c.ToneVolume = 0.2
	}
	if c.Logger == nil {
		c.Logger = log.NewWithConfig(log.DefaultConfig())
	}
}

// Machine is one interpreter instance. The driver calls Step at whatever
// cadence it chooses; the machine never self-paces. The timer ticker is the
// only background activity and is joined by Close.
type Machine struct {
	cfg Config
	rom []byte

	mem    *memory.Memory
	fb     *display.Buffer
	cpu    *cpu.CPU
	delay  *timer.Counter
	sound  *timer.Counter
	ticker *timer.Ticker
	buzzer cpu.Buzzer

	closed bool
}

// New loads rom and returns a running machine. The ROM is copied verbatim to
// the load origin; a ROM that does not fit is a fatal load-time error. sink
// may be nil for headless use.
func New(rom []byte, sink display.Sink, keys cpu.Keypad, buzzer cpu.Buzzer, cfg Config) (*Machine, error) {
	cfg.Defaults()
	if keys == nil {
		keys = noKeys{}
	}
	if buzzer == nil {
		buzzer = NopBuzzer{}
	}

	mem := memory.New()
	if err := mem.LoadROM(rom); err != nil {
		return nil, fmt.Errorf("loading ROM: %w", err)
	}

	fb := display.New(sink)
	delay := &timer.Counter{}
	sound := &timer.Counter{}

	m := &Machine{
		cfg:    cfg,
		rom:    append([]byte(nil), rom...),
		mem:    mem,
		fb:     fb,
		cpu:    cpu.New(mem, fb, keys, buzzer, delay, sound),
		delay:  delay,
		sound:  sound,
		buzzer: buzzer,
	}
	m.buzzer.Start(cfg.ToneHz, cfg.ToneVolume)
	m.ticker = timer.NewTicker(delay, sound)
	return m, nil
}

// Step executes exactly one instruction and updates the tone state. Errors
// are fatal: the caller should stop or reset the instance.
func (m *Machine) Step() error {
	if m.cfg.Trace {
		pc := m.cpu.PC()
		m.cfg.Logger.Debug("step",
			log.String("pc", fmt.Sprintf("%03X", pc)),
			log.String("asm", disasm.Disassemble(m.mem.Fetch(pc))),
		)
	}
	if err := m.cpu.Step(); err != nil {
		return err
	}
	// The tone keeps sounding until the sound timer has run down. This check
	// runs once per executed instruction, not per timer tick.
	if m.sound.Read() == 0 {
		m.buzzer.Pause()
	}
	return nil
}

// Run steps until n instructions have executed or an error occurs.
func (m *Machine) Run(n int) error {
	for i := 0; i < n; i++ {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Framebuffer exposes the display buffer for presentation.
func (m *Machine) Framebuffer() *display.Buffer { return m.fb }

// CPU exposes execution state for tests and debugging frontends.
func (m *Machine) CPU() *cpu.CPU { return m.cpu }

// DelayTimer reads the delay counter.
func (m *Machine) DelayTimer() uint8 { return m.delay.Read() }

// SoundTimer reads the sound counter.
func (m *Machine) SoundTimer() uint8 { return m.sound.Read() }

// Reset restores the freshly-loaded state: ROM back in place, registers and
// timers zeroed, display cleared. The ticker keeps running.
func (m *Machine) Reset(keys cpu.Keypad) {
	if keys == nil {
		keys = noKeys{}
	}
	m.mem = memory.New()
	_ = m.mem.LoadROM(m.rom) // fit was validated at New time
	m.fb.Clear()
	m.delay.Write(0)
	m.sound.Write(0)
	m.buzzer.Pause()
	m.cpu = cpu.New(m.mem, m.fb, keys, m.buzzer, m.delay, m.sound)
}

// Close stops the timer ticker and blocks until it has exited, then silences
// the buzzer. The machine must not be stepped after Close.
func (m *Machine) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.ticker.Stop()
	m.buzzer.Pause()
}

// NopBuzzer is a tone generator that does nothing, for headless use.
type NopBuzzer struct{}

func (NopBuzzer) Start(frequency, volume float64) {}
func (NopBuzzer) Play()                           {}
func (NopBuzzer) Pause()                          {}

// noKeys is a keypad with no keys ever pressed.
type noKeys struct{}

func (noKeys) IsKeyDown(byte) bool      { return false }
func (noKeys) PressedKey() (byte, bool) { return 0, false }

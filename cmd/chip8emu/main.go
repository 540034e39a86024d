// Command chip8emu runs a CHIP-8 ROM in a window, or headless with -headless.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"hash/crc32"
	"os"
	"time"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"

	"github.com/retro8/chip8emu/internal/chip8"
	"github.com/retro8/chip8emu/internal/display"
	"github.com/retro8/chip8emu/internal/keypad"
	"github.com/retro8/chip8emu/internal/ui"
)

type cliFlags struct {
	ROMPath string
	Scale   int
	Title   string
	Cycles  int // instructions per 60 Hz frame
	Mute    bool
	Trace   bool
	Debug   bool
	Quiet   bool

	// headless
	Headless  bool
	Budget    int // total instructions to run headless
	ExpectCRC string
}

func parseFlags() cliFlags {
	var f cliFlags
	flag.StringVar(&f.ROMPath, "rom", "", "path to ROM file")
	flag.IntVar(&f.Scale, "scale", 10, "window scale")
	flag.StringVar(&f.Title, "title", "chip8emu", "window title")
	flag.IntVar(&f.Cycles, "cycles", 12, "instructions per frame")
	flag.BoolVar(&f.Mute, "mute", false, "start with the buzzer muted")
	flag.BoolVar(&f.Trace, "trace", false, "log every executed instruction")
	flag.BoolVar(&f.Debug, "debug", false, "debug logging")
	flag.BoolVar(&f.Quiet, "quiet", false, "errors only")

	flag.BoolVar(&f.Headless, "headless", false, "run without a window")
	flag.IntVar(&f.Budget, "instructions", 10000, "instructions to run in headless mode")
	flag.StringVar(&f.ExpectCRC, "expect", "", "assert framebuffer CRC32 (hex)")
	flag.Parse()
	if f.ROMPath == "" && flag.NArg() > 0 {
		f.ROMPath = flag.Arg(0)
	}
	return f
}

func newLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// runHeadless executes an instruction budget flat out and logs a framebuffer
// checksum, usable as a regression assert for ROMs with a stable end state.
func runHeadless(ctx context.Context, logger *log.Logger, m *chip8.Machine, budget int, expect string) error {
	const chunk = 1000
	start := time.Now()
	ran := 0
	for ran < budget {
		n := budget - ran
		if n > chunk {
			n = chunk
		}
		if err := m.Run(n); err != nil {
			return err
		}
		ran += n
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
	dur := time.Since(start)

	fb := make([]bool, display.Width*display.Height)
	m.Framebuffer().Snapshot(fb)
	raw := make([]byte, len(fb))
	lit := 0
	for i, on := range fb {
		if on {
			raw[i] = 1
			lit++
		}
	}
	crc := crc32.ChecksumIEEE(raw)
	logger.Info("headless run finished",
		log.Int("instructions", ran),
		log.String("elapsed", dur.Truncate(time.Millisecond).String()),
		log.Int("pixels_lit", lit),
		log.String("fb_crc32", fmt.Sprintf("%08x", crc)),
	)

	if expect != "" && fmt.Sprintf("%08x", crc) != expect {
		return fmt.Errorf("checksum mismatch: got %08x, want %s", crc, expect)
	}
	return nil
}

func main() {
	f := parseFlags()
	logger := newLogger(f.Debug || f.Trace, f.Quiet)
	ctx := app.Context()

	if f.ROMPath == "" {
		logger.Fatal("no ROM given, use -rom or a positional path")
	}
	rom, err := os.ReadFile(f.ROMPath)
	if err != nil {
		logger.Fatal("reading ROM", log.Err(err))
	}
	logger.Info("loaded ROM", log.String("file", f.ROMPath), log.Int("bytes", len(rom)))

	cfg := chip8.Config{Trace: f.Trace, Logger: logger}

	if f.Headless {
		m, err := chip8.New(rom, nil, nil, nil, cfg)
		if err != nil {
			logger.Fatal("machine", log.Err(err))
		}
		defer m.Close()
		if err := runHeadless(ctx, logger, m, f.Budget, f.ExpectCRC); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			logger.Fatal("headless run", log.Err(err))
		}
		return
	}

	keys := keypad.New(0)
	buzzer := &ui.Buzzer{}
	m, err := chip8.New(rom, nil, keys, buzzer, cfg)
	if err != nil {
		logger.Fatal("machine", log.Err(err))
	}
	defer m.Close()

	uiCfg := ui.Config{Title: f.Title, Scale: f.Scale, CyclesPerFrame: f.Cycles, Muted: f.Mute}
	if err := ui.NewApp(uiCfg, m, keys, buzzer).Run(); err != nil {
		logger.Fatal("emulation stopped", log.Err(err))
	}
}

// Command chip8term runs a CHIP-8 ROM in the terminal, rendering the
// framebuffer as ANSI half-block cells. ESC quits.
package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"

	"github.com/retro8/chip8emu/internal/chip8"
	"github.com/retro8/chip8emu/internal/console"
)

func main() {
	var (
		romPath = flag.String("rom", "", "path to ROM file")
		cycles  = flag.Int("cycles", 12, "instructions per frame")
		mute    = flag.Bool("mute", false, "disable the buzzer")
		quiet   = flag.Bool("quiet", false, "errors only")
	)
	flag.Parse()
	if *romPath == "" && flag.NArg() > 0 {
		*romPath = flag.Arg(0)
	}

	cfg := log.DefaultConfig()
	if *quiet {
		cfg.Level = log.ErrorLevel
	}
	logger := log.NewWithConfig(cfg)
	ctx := app.Context()

	if *romPath == "" {
		logger.Fatal("no ROM given, use -rom or a positional path")
	}
	rom, err := os.ReadFile(*romPath)
	if err != nil {
		logger.Fatal("reading ROM", log.Err(err))
	}

	c := console.New(console.Config{CyclesPerFrame: *cycles})
	var buzzer chip8.Buzzer = &console.Buzzer{}
	if *mute {
		buzzer = chip8.NopBuzzer{}
	}
	m, err := chip8.New(rom, c, c.Keys(), buzzer, chip8.Config{Logger: logger})
	if err != nil {
		logger.Fatal("machine", log.Err(err))
	}
	defer m.Close()
	c.SetMachine(m)

	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("emulation stopped", log.Err(err))
	}
}

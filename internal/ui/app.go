package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/retro8/chip8emu/internal/chip8"
	"github.com/retro8/chip8emu/internal/display"
	"github.com/retro8/chip8emu/internal/keypad"
)

// keyMap lays the COSMAC keypad onto the left side of a QWERTY keyboard:
//
//	1 2 3 C        1 2 3 4
//	4 5 6 D   <-   Q W E R
//	7 8 9 E        A S D F
//	A 0 B F        Z X C V
var keyMap = map[ebiten.Key]byte{
	ebiten.KeyDigit1: 0x1, ebiten.KeyDigit2: 0x2, ebiten.KeyDigit3: 0x3, ebiten.KeyDigit4: 0xC,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xD,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xE,
	ebiten.KeyZ: 0xA, ebiten.KeyX: 0x0, ebiten.KeyC: 0xB, ebiten.KeyV: 0xF,
}

// App is the windowed frontend. It drives the machine at CyclesPerFrame
// instructions per ebiten update and presents the framebuffer scaled up.
type App struct {
	cfg    Config
	m      *chip8.Machine
	keys   *keypad.State
	buzzer *Buzzer
	tex    *ebiten.Image
	pix    []byte // RGBA staging buffer
	paused bool

	err error // fatal machine fault, displayed instead of exiting abruptly
}

// NewApp wires the frontend. keys and buzzer must be the same instances the
// machine was built with.
func NewApp(cfg Config, m *chip8.Machine, keys *keypad.State, buzzer *Buzzer) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(display.Width*cfg.Scale, display.Height*cfg.Scale)
	buzzer.SetMuted(cfg.Muted)
	return &App{
		cfg:    cfg,
		m:      m,
		keys:   keys,
		buzzer: buzzer,
		pix:    make([]byte, display.Width*display.Height*4),
	}
}

// Run blocks until the window closes or the machine faults.
func (a *App) Run() error {
	if err := ebiten.RunGame(a); err != nil {
		return err
	}
	return a.err
}

func (a *App) Update() error {
	for k, code := range keyMap {
		if ebiten.IsKeyPressed(k) {
			a.keys.Press(code)
		} else {
			a.keys.Release(code)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.cfg.Muted = !a.cfg.Muted
		a.buzzer.SetMuted(a.cfg.Muted)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.m.Reset(a.keys)
		a.err = nil
		a.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		_ = a.saveScreenshot()
	}

	if a.err != nil {
		return nil // faulted: keep the window open showing the last frame
	}
	if a.paused {
		// Frame-step with N while paused.
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			a.err = a.m.Run(a.cfg.CyclesPerFrame)
		}
		return nil
	}
	a.err = a.m.Run(a.cfg.CyclesPerFrame)
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(display.Width, display.Height)
	}
	fb := a.m.Framebuffer()
	for y := 0; y < display.Height; y++ {
		for x := 0; x < display.Width; x++ {
			i := (y*display.Width + x) * 4
			var v byte
			if fb.Pixel(x, y) {
				v = 0xFF
			}
			a.pix[i], a.pix[i+1], a.pix[i+2], a.pix[i+3] = v, v, v, 0xFF
		}
	}
	a.tex.WritePixels(a.pix)
	screen.DrawImage(a.tex, nil)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return display.Width, display.Height
}

// saveScreenshot writes the current framebuffer as a PNG next to the binary.
func (a *App) saveScreenshot() error {
	img := image.NewRGBA(image.Rect(0, 0, display.Width, display.Height))
	fb := a.m.Framebuffer()
	for y := 0; y < display.Height; y++ {
		for x := 0; x < display.Width; x++ {
			var c color.Color = color.Black
			if fb.Pixel(x, y) {
				c = color.White
			}
			img.Set(x, y, c)
		}
	}
	name := fmt.Sprintf("chip8-%s.png", time.Now().Format("20060102-150405"))
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

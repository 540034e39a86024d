package ui

// Config contains window/input/audio related settings.
type Config struct {
	Title          string // window title
	Scale          int    // integer upscaling factor
	CyclesPerFrame int    // instructions executed per 60 Hz frame
	Muted          bool   // start with the buzzer muted
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "chip8emu"
	}
	if c.Scale <= 0 {
		c.Scale = 10
	}
	if c.CyclesPerFrame <= 0 {
		c.CyclesPerFrame = 12 // ~700 instructions/s at 60 fps
	}
}

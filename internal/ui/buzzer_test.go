package ui

import (
	"encoding/binary"
	"testing"
)

func TestSquareWave_AlternatesAtPeriod(t *testing.T) {
	s := &squareWave{freq: 480, volume: 0.5}
	// 48000 / 480 = 100 samples per period, 4 bytes per stereo frame.
	buf := make([]byte, 100*4)
	n, err := s.Read(buf)
	if err != nil || n != len(buf) {
		t.Fatalf("Read got %d, %v", n, err)
	}

	first := int16(binary.LittleEndian.Uint16(buf[0:]))
	if first <= 0 {
		t.Fatalf("first half-period sample got %d want positive", first)
	}
	// Sample 50 sits in the second half-period.
	second := int16(binary.LittleEndian.Uint16(buf[50*4:]))
	if second != -first {
		t.Fatalf("second half-period sample got %d want %d", second, -first)
	}
	// Left and right channels carry the same value.
	right := int16(binary.LittleEndian.Uint16(buf[2:]))
	if right != first {
		t.Fatalf("right channel got %d want %d", right, first)
	}
}

func TestSquareWave_WholeFramesOnly(t *testing.T) {
	s := &squareWave{freq: 440, volume: 0.2}
	buf := make([]byte, 10)
	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 8 {
		t.Fatalf("Read got %d bytes want 8 (whole frames)", n)
	}
}

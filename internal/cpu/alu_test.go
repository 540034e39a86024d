package cpu

import "testing"

func TestAddCarry_AllInputs(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			sum, carry := addCarry(byte(a), byte(b))
			if want := byte(a + b); sum != want {
				t.Fatalf("addCarry(%d,%d) sum got %d want %d", a, b, sum, want)
			}
			wantCarry := byte(0)
			if a+b > 255 {
				wantCarry = 1
			}
			if carry != wantCarry {
				t.Fatalf("addCarry(%d,%d) carry got %d want %d", a, b, carry, wantCarry)
			}
		}
	}
}

func TestSubtract_AllInputs(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			diff, noBorrow := subtract(byte(a), byte(b))
			if want := byte(a - b); diff != want {
				t.Fatalf("subtract(%d,%d) diff got %d want %d", a, b, diff, want)
			}
			wantFlag := byte(0)
			if a >= b {
				wantFlag = 1
			}
			if noBorrow != wantFlag {
				t.Fatalf("subtract(%d,%d) flag got %d want %d", a, b, noBorrow, wantFlag)
			}
		}
	}
}

func TestShifts_AllInputs(t *testing.T) {
	for a := 0; a < 256; a++ {
		res, low := shiftRight(byte(a))
		if res != byte(a)>>1 || low != byte(a)&1 {
			t.Fatalf("shiftRight(%d) got %d,%d", a, res, low)
		}
		res, high := shiftLeft(byte(a))
		if res != byte(a)<<1 || high != byte(a)>>7 {
			t.Fatalf("shiftLeft(%d) got %d,%d", a, res, high)
		}
	}
}

package keypad

import (
	"testing"
	"time"
)

func TestPressRelease(t *testing.T) {
	s := New(0)
	s.Press(0x5)
	if !s.IsKeyDown(0x5) {
		t.Fatal("key 5 should be down")
	}
	if s.IsKeyDown(0x6) {
		t.Fatal("key 6 should be up")
	}
	s.Release(0x5)
	if s.IsKeyDown(0x5) {
		t.Fatal("key 5 should be up after release")
	}
}

func TestPressedKey_LowestFirst(t *testing.T) {
	s := New(0)
	if _, ok := s.PressedKey(); ok {
		t.Fatal("empty pad reported a pressed key")
	}
	s.Press(0xB)
	s.Press(0x3)
	if k, ok := s.PressedKey(); !ok || k != 0x3 {
		t.Fatalf("PressedKey got %X, %v want 3, true", k, ok)
	}
}

func TestPress_ExpiresWithoutRelease(t *testing.T) {
	s := New(20 * time.Millisecond)
	s.Press(0x1)
	if !s.IsKeyDown(0x1) {
		t.Fatal("key should be down right after press")
	}
	time.Sleep(50 * time.Millisecond)
	if s.IsKeyDown(0x1) {
		t.Fatal("timed press did not expire")
	}
	if _, ok := s.PressedKey(); ok {
		t.Fatal("expired press still visible to PressedKey")
	}
}

func TestOutOfRangeIgnored(t *testing.T) {
	s := New(0)
	s.Press(16)
	if s.IsKeyDown(16) {
		t.Fatal("out-of-range key reported down")
	}
	if _, ok := s.PressedKey(); ok {
		t.Fatal("out-of-range press leaked into state")
	}
}

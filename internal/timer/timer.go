// Package timer implements the delay and sound counters and the background
// task that decrements them at the hardware rate.
//
// The counters are shared between two goroutines: the instruction dispatcher
// reads and writes them, and the ticker decrements them. Each counter carries
// its own mutex so the two counters never serialize against each other.
package timer

import (
	"sync"
	"time"
)

// TickInterval is the cadence of the background decrement, approximately
// 60 Hz.
const TickInterval = time.Second / 60

// Counter is an 8-bit hardware counter safe for concurrent access.
type Counter struct {
	mu    sync.Mutex
	value uint8
}

// Read returns the current value.
func (c *Counter) Read() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Write sets the counter.
func (c *Counter) Write(v uint8) {
	c.mu.Lock()
	c.value = v
	c.mu.Unlock()
}

// tick decrements the counter if it is above zero. It never wraps below zero.
func (c *Counter) tick() {
	c.mu.Lock()
	if c.value > 0 {
		c.value--
	}
	c.mu.Unlock()
}

// Ticker owns the background goroutine that decrements a set of counters
// every TickInterval. It runs from Start until Stop and never outlives its
// owner: Stop blocks until the goroutine has exited.
type Ticker struct {
	counters []*Counter
	stop     chan struct{}
	done     chan struct{}
}

// NewTicker starts the decrement goroutine over the given counters.
func NewTicker(counters ...*Counter) *Ticker {
	t := &Ticker{
		counters: counters,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *Ticker) run() {
	defer close(t.done)
	tk := time.NewTicker(TickInterval)
	defer tk.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-tk.C:
			for _, c := range t.counters {
				c.tick()
			}
		}
	}
}

// Stop signals the goroutine and joins it. Safe to call once.
func (t *Ticker) Stop() {
	close(t.stop)
	<-t.done
}

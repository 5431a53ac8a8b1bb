package source

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// demoCorpus is the fixed message set the generator draws from. It
// spans all five severities so the log and timeline exercise every
// colour without hardware attached.
var demoCorpus = []string{
	"[EVENT] Boot complete, firmware v2.4.1",
	"[EVENT] GPS fix acquired: 40.7128 N, 74.0060 W",
	"[EVENT] Configuration reloaded from flash",
	"[INFO] Reading temperature: 23.4 C",
	"[INFO] Reading humidity: 61 %",
	"[INFO] Uptime: 00:42:17",
	"[INFO] RSSI: -67 dBm",
	"[INFO] Packet TX count: 8571",
	"[WARNING] Battery voltage low: 3.21 V",
	"[WARNING] Temperature above threshold: 38.1 C",
	"[WARNING] Flash write near sector limit",
	"[ERROR] CRC mismatch on packet #1042",
	"[ERROR] I2C NACK from address 0x48",
	"[ERROR] Timeout waiting for ACK",
	"[DEBUG] ADC sample buffer flushed",
	"[DEBUG] Entering low-power mode",
	"[DEBUG] Heap free: 34816 bytes",
	"Sensor ready", // untagged, classifies as INFO
}

// DemoSource synthesizes corpus messages on a background goroutine with
// exponentially distributed inter-arrival times around the configured
// mean, approximating a Poisson message stream.
type DemoSource struct {
	counters
	interval time.Duration
	rng      *rand.Rand

	mu      sync.Mutex
	lines   chan Line
	done    chan struct{}
	running bool
}

// NewDemoSource creates a generator with the given mean interval
// between messages. A non-positive interval falls back to 500ms.
func NewDemoSource(interval time.Duration) *DemoSource {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &DemoSource{
		interval: interval,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		lines:    make(chan Line, lineBufferSize),
		done:     make(chan struct{}),
	}
}

func (d *DemoSource) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return fmt.Errorf("demo source already started")
	}
	d.lines = make(chan Line, lineBufferSize)
	d.done = make(chan struct{})
	d.running = true
	d.startedAt = time.Now()
	go d.generate(d.lines, d.done)
	return nil
}

func (d *DemoSource) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		return
	}
	d.running = false
	close(d.done)
}

func (d *DemoSource) Lines() <-chan Line {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lines
}

// Err is always nil: the generator has no failure mode.
func (d *DemoSource) Err() error { return nil }

func (d *DemoSource) Describe() string {
	return fmt.Sprintf("demo (%.2gs)", d.interval.Seconds())
}

func (d *DemoSource) Stats() Stats { return d.snapshot() }

func (d *DemoSource) generate(lines chan Line, done chan struct{}) {
	defer close(lines)

	timer := time.NewTimer(d.nextDelay())
	defer timer.Stop()

	for {
		select {
		case <-done:
			return
		case <-timer.C:
			d.deliver(lines, demoCorpus[d.rng.Intn(len(demoCorpus))])
			timer.Reset(d.nextDelay())
		}
	}
}

// nextDelay draws an exponential inter-arrival time around the mean
// interval, floored at 1ms so a tiny mean cannot spin the goroutine.
func (d *DemoSource) nextDelay() time.Duration {
	delay := time.Duration(d.rng.ExpFloat64() * float64(d.interval))
	if delay < time.Millisecond {
		delay = time.Millisecond
	}
	return delay
}

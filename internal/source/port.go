package source

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"
)

// readTimeout bounds each blocking read so the reader goroutine
// observes Stop promptly even on a silent port.
const readTimeout = 100 * time.Millisecond

// SerialSource reads newline-terminated text from a serial port in a
// background goroutine.
type SerialSource struct {
	counters
	port string
	baud int

	mu      sync.Mutex
	handle  serial.Port
	lines   chan Line
	done    chan struct{}
	err     error
	running bool
}

// NewSerialSource configures a source for the given port name and baud
// rate (8N1). The port is not opened until Start.
func NewSerialSource(port string, baud int) *SerialSource {
	return &SerialSource{
		port:  port,
		baud:  baud,
		lines: make(chan Line, lineBufferSize),
		done:  make(chan struct{}),
	}
}

func (s *SerialSource) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("serial source already started")
	}

	handle, err := serial.Open(s.port, &serial.Mode{BaudRate: s.baud})
	if err != nil {
		return fmt.Errorf("open %s: %w", s.port, err)
	}
	if err := handle.SetReadTimeout(readTimeout); err != nil {
		handle.Close()
		return fmt.Errorf("set read timeout on %s: %w", s.port, err)
	}

	// Fresh channels each start so the source can be restarted after a
	// Stop or a mid-stream failure.
	s.lines = make(chan Line, lineBufferSize)
	s.done = make(chan struct{})
	s.err = nil
	s.handle = handle
	s.running = true
	s.startedAt = time.Now()
	go s.readLoop(handle, s.lines, s.done)
	return nil
}

func (s *SerialSource) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.done)
	handle := s.handle
	s.mu.Unlock()

	// Closing the port unblocks any pending read.
	if handle != nil {
		handle.Close()
	}
}

func (s *SerialSource) Lines() <-chan Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines
}

func (s *SerialSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *SerialSource) Describe() string {
	return fmt.Sprintf("%s @ %d", s.port, s.baud)
}

func (s *SerialSource) Stats() Stats { return s.snapshot() }

// readLoop accumulates bytes until a newline and emits each complete
// line. It exits on Stop or on a read error (device unplugged), leaving
// the failure in s.err for the consumer.
func (s *SerialSource) readLoop(handle serial.Port, lines chan Line, done chan struct{}) {
	defer close(lines)

	var pending []byte
	buf := make([]byte, 512)

	for {
		select {
		case <-done:
			return
		default:
		}

		n, err := handle.Read(buf)
		if err != nil {
			s.mu.Lock()
			if s.running {
				// Mid-stream failure, not a user Stop.
				s.err = fmt.Errorf("read %s: %w", s.port, err)
				s.running = false
				close(done)
				handle.Close()
			}
			s.mu.Unlock()
			return
		}
		if n == 0 {
			continue // read timeout, re-check done
		}

		pending = append(pending, buf[:n]...)
		for {
			idx := bytes.IndexByte(pending, '\n')
			if idx < 0 {
				break
			}
			line := decodeLine(pending[:idx])
			pending = pending[idx+1:]
			if line != "" {
				s.deliver(lines, line)
			}
		}
	}
}

// decodeLine strips a trailing carriage return and replaces invalid
// UTF-8 sequences so malformed bytes never crash the reader.
func decodeLine(raw []byte) string {
	if n := len(raw); n > 0 && raw[n-1] == '\r' {
		raw = raw[:n-1]
	}
	return strings.ToValidUTF8(string(raw), "�")
}

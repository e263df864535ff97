package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Spinner provides an animated loading indicator
type Spinner struct {
	out      io.Writer
	frames   []string
	interval time.Duration
	message  string
	stop     chan struct{}
	done     chan struct{}
	mu       sync.Mutex
	running  bool
}

// SpinnerFrames defines different spinner animation styles
var SpinnerFrames = struct {
	Dots   []string
	Line   []string
	Circle []string
}{
	Dots:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	Line:   []string{"-", "\\", "|", "/"},
	Circle: []string{"◐", "◓", "◑", "◒"},
}

// NewSpinner creates a spinner drawing on stderr, so stdout stays clean for
// piped output
func NewSpinner() *Spinner {
	return NewSpinnerTo(os.Stderr, SpinnerFrames.Dots)
}

// NewSpinnerTo creates a spinner drawing frames on out
func NewSpinnerTo(out io.Writer, frames []string) *Spinner {
	return &Spinner{
		out:      out,
		frames:   frames,
		interval: 80 * time.Millisecond,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins the spinner animation with the given message
func (s *Spinner) Start(message string) {
	s.mu.Lock()
	if s.running {
		s.message = message
		s.mu.Unlock()
		return
	}
	s.running = true
	s.message = message
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		i := 0
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.draw(i)
		for {
			select {
			case <-s.stop:
				fmt.Fprint(s.out, "\r\033[K")
				close(s.done)
				return
			case <-ticker.C:
				i = (i + 1) % len(s.frames)
				s.draw(i)
			}
		}
	}()
}

func (s *Spinner) draw(frame int) {
	s.mu.Lock()
	msg := s.message
	s.mu.Unlock()
	fmt.Fprintf(s.out, "\r\033[K%s %s", SpinnerStyle.Render(s.frames[frame]), msg)
}

// Stop halts the spinner animation and clears its line
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stop)
	<-s.done
}

// UpdateMessage changes the spinner message while running
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// IsRunning returns whether the spinner is currently active
func (s *Spinner) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Spinner is a simple text-based spinner for indeterminate operations such
// as feed fetches and artifact transfers.
type Spinner struct {
	writer   io.Writer
	message  string
	frames   []string
	interval time.Duration
	active   bool
	done     chan bool
	mu       sync.RWMutex // Protects message field
}

var defaultFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a spinner writing to w.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		writer:   w,
		message:  message,
		frames:   defaultFrames,
		interval: 100 * time.Millisecond,
		done:     make(chan bool),
	}
}

// Start begins the spinner animation
func (s *Spinner) Start() {
	s.active = true
	go s.animate()
}

// Stop stops the spinner and clears the line
func (s *Spinner) Stop() {
	if !s.active {
		return
	}
	s.active = false
	s.done <- true
	// Clear the line
	fmt.Fprint(s.writer, "\r\033[K")
}

// UpdateMessage changes the spinner message
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

func (s *Spinner) animate() {
	frameIndex := 0
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	cyan := color.New(color.FgCyan)
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.RLock()
			message := s.message
			s.mu.RUnlock()
			frame := s.frames[frameIndex%len(s.frames)]
			fmt.Fprint(s.writer, "\r\033[K")
			cyan.Fprintf(s.writer, "%s %s", frame, message)
			frameIndex++
		}
	}
}

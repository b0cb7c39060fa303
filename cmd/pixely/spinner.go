package main

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

var spinnerFrames = []rune(`||//--\\`)

// spinner draws a progress indicator on a terminal while a render runs.
// On anything but a terminal it stays silent.
type spinner struct {
	w       io.Writer
	label   string
	enabled bool
	delay   time.Duration

	stop chan struct{}
	wg   sync.WaitGroup
}

func newSpinner(f *os.File, label string) *spinner {
	return &spinner{
		w:       f,
		label:   label,
		enabled: term.IsTerminal(int(f.Fd())),
		delay:   60 * time.Millisecond,
	}
}

func (s *spinner) Start() {
	if !s.enabled {
		return
	}
	s.stop = make(chan struct{})
	s.showCursor(false)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.delay)
		defer ticker.Stop()
		for i := 0; ; i++ {
			fmt.Fprintf(s.w, "\r%s%c", s.label, spinnerFrames[i%len(spinnerFrames)])
			select {
			case <-s.stop:
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop halts the spinner and erases its line.
func (s *spinner) Stop() {
	if !s.enabled || s.stop == nil {
		return
	}
	close(s.stop)
	s.wg.Wait()
	s.stop = nil
	// Move the cursor to the beginning of the line and clear it
	io.WriteString(s.w, "\033[999D\033[2K")
	s.showCursor(true)
}

func (s *spinner) showCursor(show bool) {
	if show {
		io.WriteString(s.w, "\033[?12l\033[?25h")
	} else {
		io.WriteString(s.w, "\033[?25l")
	}
}

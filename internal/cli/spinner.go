package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a one-line status on out until Stop is called or the
// parent context ends.
type spinner struct {
	out     io.Writer
	message string
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	cancelled atomic.Bool
}

func newSpinnerWithContext(parent context.Context, out io.Writer, message string) *spinner {
	ctx, cancel := context.WithCancel(parent)
	return &spinner{out: out, message: message, parent: parent, ctx: ctx, cancel: cancel}
}

func (s *spinner) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *spinner) run() {
	defer s.wg.Done()
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			if s.parent.Err() != nil {
				s.cancelled.Store(true)
			}
			fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
			return
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
		}
	}
}

// Stop ends the animation and clears the line. It may be called more than
// once, and without Start.
func (s *spinner) Stop() {
	s.cancel()
	s.wg.Wait()
}

// Cancelled reports whether the parent context ended while spinning.
func (s *spinner) Cancelled() bool {
	return s.cancelled.Load()
}

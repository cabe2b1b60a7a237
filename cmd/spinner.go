package cmd

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

//nolint:gochecknoglobals // spinner animation
var spinnerFrames = []string{"|", "/", "-", "\\"}

const spinnerInterval = 100 * time.Millisecond

// spinner animates a status line while a blocking step runs. The line shows
// the time spent so far and, once stopped, is replaced by the final timing.
type spinner struct {
	message string
	out     io.Writer
	started time.Time
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
	mu      sync.Mutex
	width   int
}

func newSpinner(out io.Writer, message string) (s *spinner) {
	s = &spinner{
		message: message,
		out:     out,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	return s
}

func (s *spinner) start() {
	s.started = time.Now()
	s.render(spinnerFrames[0])

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for i := 1; ; i++ {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.render(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// render redraws the status line in place.
func (s *spinner) render(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := fmt.Sprintf("%s %s %s", s.message, frame, hintStyle.Render(elapsed(time.Since(s.started))))
	fmt.Fprintf(s.out, "\r%s%s", line, strings.Repeat(" ", max(0, s.width-len(line))))
	s.width = len(line)
}

// stopSpinner ends the animation and leaves the message with its final
// timing on its own line. Calling it again is a no-op.
func (s *spinner) stopSpinner() {
	s.once.Do(func() {
		if s.started.IsZero() {
			return
		}
		close(s.stop)
		<-s.done

		s.mu.Lock()
		defer s.mu.Unlock()

		line := fmt.Sprintf("%s %s", s.message, hintStyle.Render("("+elapsed(time.Since(s.started))+")"))
		fmt.Fprintf(s.out, "\r%s%s\n", line, strings.Repeat(" ", max(0, s.width-len(line))))
	})
}

// elapsed formats d to a tenth of a second.
func elapsed(d time.Duration) (text string) {
	text = fmt.Sprintf("%.1fs", d.Seconds())
	return text
}

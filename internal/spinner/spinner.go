// Package spinner gives feedback while a backend call is in flight:
// an animated spinner on an interactive terminal, plain lines under CI.
package spinner

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Spinner shows activity between Start and Stop. Implementations are not
// safe for concurrent use; the shopping flow is strictly sequential.
type Spinner interface {
	Start(message string)
	Stop()
}

// New returns a TerminalSpinner, or a CISpinner when a CI environment
// variable is set.
func New() Spinner {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CISpinner{}
	}
	return &TerminalSpinner{}
}

// TerminalSpinner animates an indeterminate progressbar spinner.
type TerminalSpinner struct {
	bar  *progressbar.ProgressBar
	done chan struct{}
}

func (s *TerminalSpinner) Start(message string) {
	s.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(message),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	s.done = make(chan struct{})
	go func(bar *progressbar.ProgressBar, done chan struct{}) {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}(s.bar, s.done)
}

func (s *TerminalSpinner) Stop() {
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	if s.bar != nil {
		_ = s.bar.Finish()
		s.bar = nil
	}
}

// CISpinner prints one line per operation, suitable for CI logs.
type CISpinner struct{}

func (s *CISpinner) Start(message string) {
	fmt.Fprintf(os.Stderr, "%s...\n", message)
}

func (s *CISpinner) Stop() {}

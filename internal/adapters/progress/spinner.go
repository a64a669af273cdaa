package progress

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows activity while waiting on the network. It stays silent when
// the output is not a terminal.
type Spinner struct {
	spinner *spinner.Spinner
}

// NewSpinner creates a spinner writing to w
func NewSpinner(w io.Writer) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.HideCursor = false
	return &Spinner{spinner: s}
}

// Start shows message next to the spinner, starting it if needed
func (s *Spinner) Start(message string) {
	s.spinner.Suffix = " " + message
	if !s.spinner.Active() {
		s.spinner.Start()
	}
}

// Stop stops the spinner if it is running
func (s *Spinner) Stop() {
	if s.spinner.Active() {
		s.spinner.Stop()
	}
}

// Pause stops the spinner and returns a function that restarts it
func (s *Spinner) Pause() (resume func()) {
	if !s.spinner.Active() {
		return func() {}
	}
	s.spinner.Stop()
	return s.spinner.Start
}

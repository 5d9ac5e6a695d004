package progress

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/proxy-deploy/internal/domain"
)

var (
	infoColor    = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen, color.Bold)
	failColor    = color.New(color.FgRed, color.Bold)
)

// SpinnerSink shows the active stage on a spinner and prints markers in colour
type SpinnerSink struct {
	mu           sync.Mutex
	spinner      *spinner.Spinner
	out          io.Writer
	status       io.Writer
	lastStage    domain.Stage
	stageStarted time.Time
}

// NewSpinnerSink creates a sink printing markers to out and the spinner to status
func NewSpinnerSink(out, status io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(status))
	s.HideCursor = false
	return &SpinnerSink{
		spinner: s,
		out:     out,
		status:  status,
	}
}

// ReportStage moves the spinner to the new stage
func (s *SpinnerSink) ReportStage(ctx context.Context, stage domain.Stage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.lastStage
	s.lastStage = stage
	elapsed := time.Since(s.stageStarted).Round(time.Millisecond)
	s.stageStarted = time.Now()

	switch stage {
	case domain.StageStart:
		return
	case domain.StageDone:
		s.spinner.Stop()
		successColor.Fprintln(s.status, "✓ Done")
		return
	case domain.StageFailed:
		s.spinner.Stop()
		failColor.Fprintf(s.status, "✗ %s failed after %s\n", stageTitle(previous), elapsed)
		return
	}

	s.spinner.Suffix = fmt.Sprintf(" %s...", stageTitle(stage))
	if !s.spinner.Active() {
		s.spinner.Start()
	}
}

// Info prints a marker above the spinner
func (s *SpinnerSink) Info(message string) {
	s.print(infoColor, message)
}

// Warn prints a warning above the spinner
func (s *SpinnerSink) Warn(message string) {
	s.print(warnColor, "Warning: "+message)
}

func (s *SpinnerSink) print(c *color.Color, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Stop spinner temporarily
	wasActive := s.spinner.Active()
	if wasActive {
		s.spinner.Stop()
	}

	c.Fprintln(s.out, message)

	if wasActive {
		s.spinner.Start()
	}
}

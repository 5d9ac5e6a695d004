package progress

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/trebuchet-org/proxy-deploy/internal/domain"
)

// LineSink writes markers as plain lines, suitable for logs and pipes
type LineSink struct {
	mu  sync.Mutex
	out io.Writer
}

// NewLineSink creates a sink writing to out
func NewLineSink(out io.Writer) *LineSink {
	return &LineSink{out: out}
}

// Info prints a marker line
func (s *LineSink) Info(message string) {
	s.println(message)
}

// Warn prints a warning line
func (s *LineSink) Warn(message string) {
	s.println("Warning: " + message)
}

// ReportStage prints nothing; only the markers reach plain output
func (s *LineSink) ReportStage(ctx context.Context, stage domain.Stage) {}

func (s *LineSink) println(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, message)
}

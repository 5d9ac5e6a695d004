package progress

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/trebuchet-org/proxy-deploy/internal/domain"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/config"
	"github.com/trebuchet-org/proxy-deploy/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Reporter prints stage markers and follows pipeline transitions
type Reporter interface {
	usecase.ProgressSink
	usecase.StageReporter
}

// NewReporter picks a spinner on interactive terminals and plain lines otherwise.
// Markers go to stdout unless stdout carries structured output.
func NewReporter(cfg *config.RuntimeConfig) Reporter {
	var out io.Writer = os.Stdout
	if cfg.Output != "" && cfg.Output != "text" {
		out = os.Stderr
	}

	if !cfg.NonInteractive && !cfg.Debug && isatty.IsTerminal(os.Stderr.Fd()) {
		return NewSpinnerSink(out, os.Stderr)
	}
	return NewLineSink(out)
}

var titleCaser = cases.Title(language.English)

// stageTitle returns the display name of a stage
func stageTitle(stage domain.Stage) string {
	return titleCaser.String(string(stage))
}

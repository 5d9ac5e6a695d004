package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/proxy-deploy/internal/domain"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/config"
)

func TestLineSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLineSink(&buf)

	sink.ReportStage(context.Background(), domain.StageDeploying)
	sink.Info("proxy deployed to: 0xabc on goerli")
	sink.Warn("previous record replaced")
	sink.Info("0xabc added")

	assert.Equal(t, "proxy deployed to: 0xabc on goerli\nWarning: previous record replaced\n0xabc added\n", buf.String())
}

func TestSpinnerSink(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	var out, status bytes.Buffer
	sink := NewSpinnerSink(&out, &status)
	ctx := context.Background()

	sink.ReportStage(ctx, domain.StageStart)
	sink.ReportStage(ctx, domain.StageDeploying)
	sink.Info("proxy deployed to: 0xabc on goerli")
	sink.ReportStage(ctx, domain.StageInitializing)
	sink.ReportStage(ctx, domain.StageFailed)

	assert.Equal(t, "proxy deployed to: 0xabc on goerli\n", out.String())
	assert.Contains(t, status.String(), "Initializing failed after")
}

func TestSpinnerSink_Done(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	var out, status bytes.Buffer
	sink := NewSpinnerSink(&out, &status)

	sink.ReportStage(context.Background(), domain.StagePersisting)
	sink.ReportStage(context.Background(), domain.StageDone)

	assert.Contains(t, status.String(), "Done")
}

func TestStageTitle(t *testing.T) {
	assert.Equal(t, "Deploying", stageTitle(domain.StageDeploying))
	assert.Equal(t, "Initializing", stageTitle(domain.Stage("initializing")))
}

func TestNewReporter(t *testing.T) {
	// Test binaries do not run on a terminal
	_, ok := NewReporter(&config.RuntimeConfig{Output: "json"}).(*LineSink)
	assert.True(t, ok)
}

package forge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/creack/pty"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/config"
	"github.com/trebuchet-org/proxy-deploy/internal/usecase"
)

// ForgeAdapter runs forge commands in the project root
type ForgeAdapter struct {
	log         *slog.Logger
	projectRoot string
	profile     string
	debug       bool
	binary      string
	stream      io.Writer
}

// NewForgeAdapter creates a new forge executor
func NewForgeAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *ForgeAdapter {
	return &ForgeAdapter{
		log:         log.With("component", "ForgeAdapter"),
		projectRoot: cfg.ProjectRoot,
		profile:     cfg.Profile,
		debug:       cfg.Debug,
		binary:      "forge",
		stream:      os.Stderr,
	}
}

// Build runs forge build. Output is streamed in debug mode and otherwise
// only surfaced when the build fails.
func (f *ForgeAdapter) Build(ctx context.Context) error {
	start := time.Now()
	args := f.buildArgs()
	f.log.Debug("running forge build", "dir", f.projectRoot, "args", args)

	cmd := exec.CommandContext(ctx, f.binary, args...)
	cmd.Dir = f.projectRoot
	cmd.Env = append(os.Environ(), f.buildEnv()...)

	// Start with PTY so forge keeps its colours
	ptyFile, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", f.binary, err)
	}
	defer func() {
		_ = ptyFile.Close()
	}()

	var output bytes.Buffer
	var sink io.Writer = &output
	if f.debug {
		sink = io.MultiWriter(&output, f.stream)
	}
	// Reading the pty master returns EIO once the child exits
	if _, err := io.Copy(sink, ptyFile); err != nil && !errors.Is(err, syscall.EIO) {
		f.log.Debug("reading forge output", "error", err)
	}

	err = cmd.Wait()
	duration := time.Since(start)
	if err != nil {
		f.log.Error("forge build failed", "error", err, "duration", duration)
		return fmt.Errorf("forge build failed: %w\nOutput: %s", err, output.String())
	}

	f.log.Debug("forge build completed successfully", "duration", duration)
	return nil
}

// buildArgs builds the forge build command arguments
func (f *ForgeAdapter) buildArgs() []string {
	args := []string{"build"}
	if f.projectRoot != "" {
		args = append(args, "--root", f.projectRoot)
	}
	return args
}

// buildEnv builds the extra environment for forge
func (f *ForgeAdapter) buildEnv() []string {
	if f.profile == "" {
		return nil
	}
	return []string{"FOUNDRY_PROFILE=" + f.profile}
}

var _ usecase.ContractBuilder = (*ForgeAdapter)(nil)

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Execute runs the root command and returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd, release := NewRootCmd()
	defer release()

	return run(ctx, rootCmd.ExecuteContext, os.Stderr)
}

// run executes and reports the first error as "Error: <err>" on stderr
func run(ctx context.Context, execute func(context.Context) error, stderr io.Writer) int {
	if err := execute(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

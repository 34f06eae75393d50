package testutil

import (
	"bytes"
	"context"
	"testing"

	"github.com/urfave/cli/v3"
)

// RunCommand executes a command with test context and returns its output
func RunCommand(t *testing.T, command *cli.Command, args ...string) (string, error) {
	t.Helper()

	return RunCommandWithContext(context.Background(), t, command, args...)
}

// RunCommandWithContext executes a command with a custom context and returns
// its output
func RunCommandWithContext(ctx context.Context, t *testing.T, command *cli.Command, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	app := &cli.Command{
		Name:      "test",
		Commands:  []*cli.Command{command},
		Writer:    &buf,
		ErrWriter: &buf,
	}

	// Prepend command name to args
	fullArgs := append([]string{"test", command.Name}, args...)

	err := app.Run(ctx, fullArgs)
	return buf.String(), err
}

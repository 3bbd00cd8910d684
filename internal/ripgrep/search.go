package ripgrep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

const jsonFlag = "--json"

// Command describes how to invoke ripgrep.
type Command struct {
	Name   string   // executable, "rg" when empty
	Args   []string // user arguments; --json is added when missing
	Stderr io.Writer
	Env    []string // nil inherits the current environment
}

// Search is a running ripgrep process whose stdout is decoded record by
// record.
type Search struct {
	*Scanner
	cmd *exec.Cmd
	ctx context.Context
}

// WithJSON returns args with --json appended unless it is already present
// before a "--" separator.
func WithJSON(args []string) []string {
	for _, arg := range args {
		if arg == "--" {
			break
		}
		if arg == jsonFlag {
			return args
		}
	}
	out := make([]string, 0, len(args)+1)
	out = append(out, jsonFlag)
	return append(out, args...)
}

// Start launches ripgrep. The process is killed when ctx is cancelled.
func (c Command) Start(ctx context.Context) (*Search, error) {
	name := c.Name
	if name == "" {
		name = "rg"
	}
	cmd := exec.CommandContext(ctx, name, WithJSON(c.Args)...)
	cmd.Stderr = c.Stderr
	cmd.Env = c.Env

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("pipe %s stdout: %w", name, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", name, err)
	}
	return &Search{Scanner: NewScanner(stdout), cmd: cmd, ctx: ctx}, nil
}

// Wait waits for the process to exit. ripgrep exits with status 1 when
// nothing matched, which is not an error. A process killed because the
// context was cancelled reports the context error.
func (s *Search) Wait() error {
	err := s.cmd.Wait()
	if err == nil {
		return nil
	}
	if ctxErr := s.ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return nil
	}
	return fmt.Errorf("%s: %w", s.cmd.Path, err)
}

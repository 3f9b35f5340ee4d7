// Package repl runs the line-oriented prompt loops behind the interactive
// tools. A loop reads one line, hands it to a Handler and repeats until an
// exit token, EOF or context cancellation.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const separator = "------------------------------"

// exitTokens end a loop; "sair" is kept for users of the original Portuguese tools.
var exitTokens = map[string]bool{"sair": true, "exit": true, "quit": true}

// UserError is shown to the user as-is and the loop continues.
type UserError struct {
	Msg string
}

func (e *UserError) Error() string { return e.Msg }

// Userf formats a UserError.
func Userf(format string, args ...any) error {
	return &UserError{Msg: fmt.Sprintf(format, args...)}
}

// Handler processes one input line.
type Handler func(ctx context.Context, line string, out io.Writer) error

// Shell is a prompt loop.
type Shell struct {
	Banner  string
	Prompt  string
	Goodbye string
	Handler Handler
}

// IsExit reports whether line is an exit token.
func IsExit(line string) bool {
	return exitTokens[strings.ToLower(strings.TrimSpace(line))]
}

// Run drives the loop until an exit token, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if s.Banner != "" {
		fmt.Fprintln(out, s.Banner)
	}

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(out, s.Prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			fmt.Fprintln(out)
			return nil
		}

		line := scanner.Text()
		if IsExit(line) {
			if s.Goodbye != "" {
				fmt.Fprintln(out, s.Goodbye)
			}
			return nil
		}

		if err := s.Handler(ctx, line, out); err != nil {
			var userErr *UserError
			switch {
			case errors.As(err, &userErr):
				fmt.Fprintln(out, userErr.Msg)
			case errors.Is(err, context.Canceled):
				return err
			default:
				slog.Debug("handler failed", "error", err)
				fmt.Fprintf(out, "An unexpected error occurred: %v\n", err)
			}
			fmt.Fprintln(out, separator)
		}
	}
}

package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"
)

// DefaultTimeout bounds command execution when the configuration does
// not specify one. Nothing upstream cancels a running command, so the
// executor must cut off a hung process itself.
const DefaultTimeout = 60 * time.Second

// Executor validates commands against an allowlist and runs them as
// child processes, capturing stdout.
type Executor struct {
	allowlist map[string]struct{}
	timeout   time.Duration
	logger    *slog.Logger
}

// NewExecutor builds an executor permitting exactly the given program
// names. Matching is an exact string comparison against the first
// token — no path normalization, no prefix matching.
func NewExecutor(allows []string, timeout time.Duration, logger *slog.Logger) *Executor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	allowlist := make(map[string]struct{}, len(allows))
	for _, name := range allows {
		allowlist[name] = struct{}{}
	}
	return &Executor{
		allowlist: allowlist,
		timeout:   timeout,
		logger:    logger,
	}
}

// Execute runs tokens as a child process and returns its stdout.
//
// The tokens are passed verbatim as the argv vector — no shell ever
// re-interprets them. A process that completes is a Success even when
// its exit status is non-zero; only failing to start, a timeout kill,
// or an I/O failure produce a Failure. Execute never returns an error:
// every failure path is folded into the Result.
func (e *Executor) Execute(ctx context.Context, tokens []string) Result {
	e.logger.Info("execute", "command", tokens)

	if len(tokens) == 0 {
		return Failure("Error: empty command is not allowed")
	}
	if _, ok := e.allowlist[tokens[0]]; !ok {
		return Failure(fmt.Sprintf("Error: %s is not allowed", tokens[0]))
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, tokens[0], tokens[1:]...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()

	if ctxErr := ctx.Err(); ctxErr != nil {
		e.logger.Warn("command cut off", "command", tokens, "error", ctxErr)
		return Failure("Error: Something wrong?")
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			e.logger.Warn("command failed to run", "command", tokens, "error", err)
			return Failure("Error: Something wrong?")
		}
		// Completed with a non-zero exit: stdout was still captured,
		// and this tool reports output, it does not gate on status.
	}

	return Success(stdout.String())
}

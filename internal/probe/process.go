package probe

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxReasonOutput bounds how much command output is echoed into a failure reason
const maxReasonOutput = 200

// Runner starts an external command and returns its combined stdout and stderr
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands through os/exec
type ExecRunner struct{}

// Run executes name with args, blocking until the process exits. A non-zero exit is
// reported as an error together with whatever the process printed.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	configureCommand(cmd)
	return cmd.CombinedOutput()
}

// ProcessProbe runs one external command per fact and maps every failure to a
// Failed result
type ProcessProbe struct {
	runner  Runner
	timeout time.Duration
	logger  *zap.Logger
}

// NewProcessProbe creates a process probe. A zero timeout lets commands run until
// they exit on their own.
func NewProcessProbe(runner Runner, timeout time.Duration, logger *zap.Logger) *ProcessProbe {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProcessProbe{
		runner:  runner,
		timeout: timeout,
		logger:  logger,
	}
}

// Run spawns the command and captures its output as text
func (p *ProcessProbe) Run(ctx context.Context, name string, args ...string) Result[string] {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := p.runner.Run(ctx, name, args...)
	if err != nil {
		err = spawnError(ctx, name, out, err)
		p.logger.Debug("Command failed",
			zap.String("command", name),
			zap.Strings("args", args),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return Failed("", err)
	}

	p.logger.Debug("Command completed",
		zap.String("command", name),
		zap.Strings("args", args),
		zap.Duration("duration", time.Since(start)),
		zap.Int("output_bytes", len(out)))

	return Ok(string(out))
}

// spawnError turns an os/exec error into a human-readable spawn failure
func spawnError(ctx context.Context, name string, out []byte, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return NewError(KindSpawn, "", fmt.Errorf("%s timed out: %w", name, ctx.Err()))
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg := fmt.Sprintf("%s exited with code %d", name, exitErr.ExitCode())
		if detail := truncate(strings.TrimSpace(string(out)), maxReasonOutput); detail != "" {
			msg += ": " + detail
		}
		return NewError(KindSpawn, "", errors.New(msg))
	}

	return NewError(KindSpawn, "", fmt.Errorf("failed to run %s: %w", name, err))
}

// Spec describes how to obtain one fact: the command to run and how to read its output
type Spec[T any] struct {
	Command string
	Args    []string
	Parse   Parser[T]
}

// Exec runs spec through p and parses the output. Any failure, including a parse
// failure, yields sentinel.
func Exec[T any](ctx context.Context, p *ProcessProbe, fact Fact, spec Spec[T], sentinel T) Result[T] {
	if spec.Command == "" {
		return Failed(sentinel, NewError(KindSpawn, fact, errors.New("not supported on this platform")))
	}

	raw := p.Run(ctx, spec.Command, spec.Args...)
	if !raw.OK() {
		return Failed(sentinel, NewError(raw.Kind(), fact, errors.New(raw.Reason())))
	}

	value, err := spec.Parse(raw.Value())
	if err != nil {
		p.logger.Debug("Command output did not parse",
			zap.String("fact", string(fact)),
			zap.String("command", spec.Command),
			zap.Error(err))
		return Failed(sentinel, NewError(KindParse, fact, err))
	}

	return Ok(value)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

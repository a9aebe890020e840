// Package process runs external compiler tools and classifies their outcome.
package process

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"time"

	apperrors "github.com/shaderplay/shaderplay/internal/application/errors"
)

// DefaultMaxOutputSize bounds captured stdout and stderr (10MB each).
const DefaultMaxOutputSize = 10 * 1024 * 1024

const waitDelay = 2 * time.Second

// Runner launches executables synchronously and captures their output.
// It implements ports.ProcessRunner.
type Runner struct {
	logger        *slog.Logger
	timeout       time.Duration
	maxOutputSize int
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout kills a launch that runs longer than d. Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithMaxOutputSize bounds each captured stream.
func WithMaxOutputSize(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxOutputSize = n
		}
	}
}

// WithLogger sets the logger used for per-launch debug lines.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a process runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger:        slog.Default(),
		maxOutputSize: DefaultMaxOutputSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the command and waits for it to exit.
//
// A non-zero exit status is not an error: compilers report invalid shaders
// that way and the captured streams carry the diagnostic. Only a failure to
// start (*apperrors.ProcessError of kind launch) or an abnormal termination by
// signal, timeout or cancellation (kind crash) is returned as an error.
func (r *Runner) Run(ctx context.Context, executable string, args []string) (string, string, error) {
	execCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	//nolint:gosec // G204: executable comes from the binary locator; no shell interpretation
	cmd := exec.CommandContext(execCtx, executable, args...)

	stdout := NewBoundedBuffer(r.maxOutputSize)
	stderr := NewBoundedBuffer(r.maxOutputSize)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	// Grandchildren holding the pipes open must not outlive a killed tool forever.
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	if stdout.Truncated || stderr.Truncated {
		r.logger.WarnContext(ctx, "command output truncated",
			"command", executable,
			"stdout_truncated", stdout.Truncated,
			"stderr_truncated", stderr.Truncated)
	}

	exitCode := 0
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}
	r.logger.DebugContext(ctx, "executed command",
		"command", executable,
		"args", args,
		"exit_code", exitCode,
		"duration", duration,
		"error", err)

	if errors.Is(err, exec.ErrWaitDelay) {
		r.logger.WarnContext(ctx, "command exited but its output pipes stayed open; output may be incomplete",
			"command", executable)
	}

	if err := classify(execCtx, err, executable, args); err != nil {
		return "", "", err
	}
	return stdout.String(), stderr.String(), nil
}

func classify(execCtx context.Context, err error, executable string, args []string) error {
	if ctxErr := execCtx.Err(); ctxErr != nil && err != nil {
		return apperrors.NewProcessError(apperrors.ProcessCrashed, executable, args, ctxErr)
	}
	if err == nil {
		return nil
	}
	// The tool itself exited cleanly; a descendant kept the pipes open past WaitDelay.
	if errors.Is(err, exec.ErrWaitDelay) {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// ExitCode is -1 when the process was terminated by a signal.
		if exitErr.ExitCode() < 0 {
			return apperrors.NewProcessError(apperrors.ProcessCrashed, executable, args, err)
		}
		return nil
	}

	return apperrors.NewProcessError(apperrors.ProcessLaunchFailed, executable, args, err)
}

package uci

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ShellExecutor runs uci commands on the local device. Every invocation is
// wrapped in a bounded timeout; a timeout, a missing binary or a non-zero
// exit is reported as "no data", never as an error, so callers degrade to
// their fallbacks.
type ShellExecutor struct {
	binPath string
	timeout time.Duration
	logger  *zap.Logger
}

// NewShellExecutor returns a live executor using the given uci binary path
// ("uci" to resolve via PATH) and per-command timeout.
func NewShellExecutor(binPath string, timeout time.Duration, logger *zap.Logger) *ShellExecutor {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ShellExecutor{
		binPath: binPath,
		timeout: timeout,
		logger:  logger.Named("uci"),
	}
}

func (e *ShellExecutor) Set(path, value string) {
	e.run(fmt.Sprintf("%s set %s=%s", e.binPath, path, shellQuote(value)))
}

func (e *ShellExecutor) AddList(path, value string) {
	e.run(fmt.Sprintf("%s add_list %s=%s", e.binPath, path, shellQuote(value)))
}

func (e *ShellExecutor) Add(subsystem, sectionType string) string {
	e.run(fmt.Sprintf("%s add %s %s", e.binPath, subsystem, sectionType))
	return anonPath(subsystem, sectionType)
}

func (e *ShellExecutor) Commit(subsystem string) {
	e.run(fmt.Sprintf("%s commit %s", e.binPath, subsystem))
}

func (e *ShellExecutor) Query(query string) (string, bool) {
	out, ok := e.capture(fmt.Sprintf("%s %s", e.binPath, query))
	return out, ok && out != ""
}

func (e *ShellExecutor) RunShell(commandLine string) (string, bool) {
	out, ok := e.capture(commandLine)
	return out, ok && out != ""
}

func (e *ShellExecutor) Live() bool { return true }

// run executes a write command, logging failures without surfacing them.
// Write failures are rare (read-only overlay, bad path) and the remaining
// commands are still worth attempting.
func (e *ShellExecutor) run(commandLine string) {
	if out, ok := e.capture(commandLine); !ok {
		e.logger.Warn("uci command failed",
			zap.String("command", commandLine),
			zap.String("output", out),
		)
	}
}

// capture runs a command line through the shell and returns its trimmed
// combined output. ok is false on a timeout, a missing binary or a non-zero
// exit.
func (e *ShellExecutor) capture(commandLine string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", commandLine)
	out, err := cmd.CombinedOutput()
	text := strings.TrimSpace(string(out))
	if err != nil {
		e.logger.Debug("command returned no data",
			zap.String("command", commandLine),
			zap.Error(err),
		)
		return text, false
	}
	return text, true
}

// shellQuote wraps a value in single quotes so spaces and shell metacharacters
// survive the sh -c round trip.
func shellQuote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}

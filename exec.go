package gitserver

import (
	"context"
	"fmt"
	"io"
	"strings"

	tcexec "github.com/testcontainers/testcontainers-go/exec"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -o mocks/fake_target.go . Target

// Target is the part of a running container that provisioning needs.
// testcontainers.Container satisfies it.
type Target interface {
	Exec(ctx context.Context, cmd []string, options ...tcexec.ProcessOption) (int, io.Reader, error)
	CopyToContainer(ctx context.Context, fileContent []byte, containerFilePath string, fileMode int64) error
	CopyDirToContainer(ctx context.Context, hostDirPath string, containerParentPath string, fileMode int64) error
}

// secretFlags are command line flags whose value is never logged.
var secretFlags = map[string]bool{
	"--password": true,
}

// redact returns cmd as a single line with the values of secret flags masked.
func redact(cmd []string) string {
	masked := make([]string, len(cmd))
	for i, arg := range cmd {
		if i > 0 && secretFlags[cmd[i-1]] {
			masked[i] = "****"
			continue
		}
		if name, _, ok := strings.Cut(arg, "="); ok && secretFlags[name] {
			masked[i] = name + "=****"
			continue
		}
		masked[i] = arg
	}
	return strings.Join(masked, " ")
}

// Exec runs cmd inside target and returns its combined output.
// A non-zero exit code is reported as *ExecError.
func Exec(ctx context.Context, target Target, logger Logger, cmd []string, opts ...tcexec.ProcessOption) (string, error) {
	logger.Logf("⚙️  Running %s", redact(cmd))

	opts = append([]tcexec.ProcessOption{tcexec.Multiplexed()}, opts...)
	exitCode, reader, err := target.Exec(ctx, cmd, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to execute %q: %w", redact(cmd), err)
	}

	var output []byte
	if reader != nil {
		output, err = io.ReadAll(reader)
		if err != nil {
			return "", fmt.Errorf("failed to read command output: %w", err)
		}
	}

	if out := strings.TrimSpace(string(output)); out != "" {
		logger.Logf("📋 Output: %s", out)
	}

	if exitCode != 0 {
		return string(output), NewExecError(cmd, exitCode, string(output))
	}

	return string(output), nil
}

// ExecAll runs the commands in order and stops at the first failure.
func ExecAll(ctx context.Context, target Target, logger Logger, cmds [][]string, opts ...tcexec.ProcessOption) error {
	for _, cmd := range cmds {
		if _, err := Exec(ctx, target, logger, cmd, opts...); err != nil {
			return err
		}
	}
	return nil
}

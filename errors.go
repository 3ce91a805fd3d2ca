package gitserver

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIncompatibleImage is returned when a fixture is configured with a Docker image
	// that is neither the expected image nor declared as a compatible substitute.
	ErrIncompatibleImage = errors.New("incompatible docker image")

	// ErrInvalidImageName is returned when an image reference cannot be parsed.
	ErrInvalidImageName = errors.New("invalid docker image name")

	// ErrCommandFailed is returned when a command executed inside a container exits non-zero.
	ErrCommandFailed = errors.New("container command failed")

	// ErrSSHKeyAuthNotConfigured is returned when SSH access is requested from a fixture
	// that was started without public key authentication.
	ErrSSHKeyAuthNotConfigured = errors.New("ssh key authentication not configured")
)

// ExecError provides structured information about a failed in-container command.
// It supports errors.Is/As for the underlying ErrCommandFailed.
type ExecError struct {
	Cmd      []string
	ExitCode int
	Output   string
	Err      error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("command %q failed (exit code %d): %s: %v",
		redact(e.Cmd), e.ExitCode, strings.TrimSpace(e.Output), e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// NewExecError creates a new ExecError for the given command.
func NewExecError(cmd []string, exitCode int, output string) *ExecError {
	return &ExecError{
		Cmd:      cmd,
		ExitCode: exitCode,
		Output:   output,
		Err:      ErrCommandFailed,
	}
}

// IncompatibleImageError describes an image that failed a compatibility check.
// It supports errors.Is/As for the underlying ErrIncompatibleImage.
type IncompatibleImageError struct {
	Image    string
	Expected string
	Err      error
}

func (e *IncompatibleImageError) Error() string {
	return fmt.Sprintf("image %s is not compatible with %s: %v", e.Image, e.Expected, e.Err)
}

func (e *IncompatibleImageError) Unwrap() error {
	return e.Err
}

// NewIncompatibleImageError creates a new IncompatibleImageError.
func NewIncompatibleImageError(image, expected string) *IncompatibleImageError {
	return &IncompatibleImageError{
		Image:    image,
		Expected: expected,
		Err:      ErrIncompatibleImage,
	}
}

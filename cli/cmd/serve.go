package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	gitserver "github.com/sparsick/testcontainers-gitserver"
	"github.com/sparsick/testcontainers-gitserver/cli/internal/output"
)

// fixture is a started server.
type fixture interface {
	Cleanup() error
}

// serve prints info, blocks until ctx is done or the process is interrupted
// and removes the fixture.
func serve(ctx context.Context, server fixture, info *output.ServerInfo) error {
	if err := output.Get(getOutputFormat()).FormatServerInfo(info); err != nil {
		_ = server.Cleanup()
		return err
	}

	log := newLogger()
	log.Debug("waiting for interrupt", "fixture", info.Kind)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down", "fixture", info.Kind)
	return server.Cleanup()
}

// writeIdentityFile stores the private key of identity in a new file readable
// only by the current user.
func writeIdentityFile(identity *gitserver.SSHIdentity) (string, error) {
	f, err := os.CreateTemp("", "gitserver-id-*")
	if err != nil {
		return "", fmt.Errorf("failed to create identity file: %w", err)
	}
	defer f.Close()

	if err := f.Chmod(0o600); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to restrict identity file: %w", err)
	}
	if _, err := f.Write(identity.PrivateKey); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to write identity file: %w", err)
	}

	return f.Name(), nil
}

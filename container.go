package gitserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// ReadyLogLine is logged by git-server images once their entrypoint has finished.
const ReadyLogLine = "Container configuration completed"

// ReadinessStrategy picks how to wait for a git-server based container.
// Images logging ReadyLogLine are waited for by that line, older ones by their listening port.
func ReadinessStrategy(image ImageName, port string, timeout time.Duration) wait.Strategy {
	if image.AtLeast(LogReadinessMinVersion) {
		return wait.ForLog(ReadyLogLine).WithStartupTimeout(timeout)
	}
	return wait.ForListeningPort(nat.Port(port)).WithStartupTimeout(timeout)
}

// Container is a started fixture container.
type Container struct {
	testcontainers.Container

	Host string

	tag          string
	log          *StructuredLogger
	cleanupFuncs []func() error
	cleaned      bool
}

// StartContainer starts req and waits until it is ready. Container output is
// forwarded to logger, each line tagged with tag. When the host cannot be
// resolved the container is terminated before returning.
func StartContainer(ctx context.Context, req testcontainers.ContainerRequest, logger Logger, tag string) (*Container, error) {
	if logger == nil {
		logger = NoopLogger()
	}

	req.LogConsumerCfg = &testcontainers.LogConsumerConfig{
		Opts:      []testcontainers.LogProductionOption{testcontainers.WithLogProductionTimeout(10 * time.Second)},
		Consumers: []testcontainers.LogConsumer{&containerLogger{logger: logger, tag: tag}},
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if container != nil {
			_ = container.Terminate(context.Background())
		}
		return nil, fmt.Errorf("failed to start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(context.Background())
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	return &Container{
		Container: container,
		Host:      host,
		tag:       tag,
		log:       NewStructuredLogger(logger),
	}, nil
}

// MappedPort returns the host port published for a container port such as "22/tcp".
func (c *Container) MappedPort(ctx context.Context, port string) (string, error) {
	mapped, err := c.Container.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return "", fmt.Errorf("failed to get mapped port %s: %w", port, err)
	}
	return mapped.Port(), nil
}

// AddCleanup registers fn to run after the container was terminated.
func (c *Container) AddCleanup(fn func() error) {
	c.cleanupFuncs = append(c.cleanupFuncs, fn)
}

// Cleanup terminates the container and runs registered cleanups in reverse order.
// Calling it again is a no-op.
func (c *Container) Cleanup() error {
	if c == nil || c.cleaned {
		return nil
	}
	c.cleaned = true

	log := c.log
	if log == nil {
		log = NewStructuredLogger(NoopLogger())
	}
	log.Info("removing container", "fixture", c.tag)

	var errs []error
	if c.Container != nil {
		if err := c.Container.Terminate(context.Background()); err != nil {
			errs = append(errs, fmt.Errorf("failed to terminate container: %w", err))
		}
	}

	for i := len(c.cleanupFuncs) - 1; i >= 0; i-- {
		if err := c.cleanupFuncs[i](); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		log.Error("cleanup incomplete", "fixture", c.tag, "error", err)
		return err
	}

	log.Success("container removed", "fixture", c.tag)
	return nil
}

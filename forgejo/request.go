package forgejo

import (
	"fmt"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	gitserver "github.com/sparsick/testcontainers-gitserver"
)

const (
	sshPort     = "22/tcp"
	httpPort    = "3000/tcp"
	versionPath = "/api/v1/version"
)

func containerRequest(cfg *Config) testcontainers.ContainerRequest {
	req := testcontainers.ContainerRequest{
		Image:        cfg.Image.String(),
		ExposedPorts: []string{sshPort, httpPort},
		Env: map[string]string{
			"FORGEJO__security__INSTALL_LOCK": "true",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(nat.Port(sshPort)).WithStartupTimeout(cfg.StartTimeout),
			wait.ForListeningPort(nat.Port(httpPort)).WithStartupTimeout(cfg.StartTimeout),
			wait.ForHTTP(versionPath).WithPort(nat.Port(httpPort)).WithStartupTimeout(cfg.StartTimeout),
		),
	}

	if cfg.Network != nil {
		req.Networks = []string{cfg.Network.Name}
		req.NetworkAliases = map[string][]string{cfg.Network.Name: cfg.NetworkAliases}
	}

	return req
}

func (c *Config) prepare() error {
	if c.Logger == nil {
		c.Logger = gitserver.NoopLogger()
	}

	if err := c.Image.AssertCompatibleWith(DefaultImage); err != nil {
		return err
	}

	if c.generateIdentity && c.SSHIdentity == nil {
		identity, err := gitserver.GenerateSSHIdentity()
		if err != nil {
			return fmt.Errorf("failed to generate ssh identity: %w", err)
		}
		c.SSHIdentity = identity
	}

	return nil
}

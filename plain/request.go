package plain

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/testcontainers/testcontainers-go"

	gitserver "github.com/sparsick/testcontainers-gitserver"
)

const (
	sshPort            = "22/tcp"
	gitPasswordEnv     = "GIT_PASSWORD"
	repoRoot           = "/srv/git"
	sshdConfigPath     = "/etc/ssh/sshd_config"
	sshDir             = "/home/git/.ssh"
	authorizedKeysPath = sshDir + "/authorized_keys"
	hostKeyPath        = "/etc/ssh/ssh_host_ecdsa_key.pub"
)

//go:embed sshd_config
var sshdConfig []byte

// RepoPath returns the path of a repository inside the container.
func RepoPath(name string) string {
	return fmt.Sprintf("%s/%s.git", repoRoot, name)
}

func containerRequest(cfg *Config) testcontainers.ContainerRequest {
	req := testcontainers.ContainerRequest{
		Image:        cfg.Image.String(),
		ExposedPorts: []string{sshPort},
		Env: map[string]string{
			gitPasswordEnv: cfg.GitPassword,
		},
		Cmd:        []string{"/usr/sbin/sshd", "-D", "-e"},
		WaitingFor: gitserver.ReadinessStrategy(cfg.Image, sshPort, cfg.StartTimeout),
	}

	if cfg.SSHIdentity != nil {
		req.Files = append(req.Files, testcontainers.ContainerFile{
			Reader:            bytes.NewReader(sshdConfig),
			ContainerFilePath: sshdConfigPath,
			FileMode:          0o644,
		})
	}

	if cfg.Network != nil {
		req.Networks = []string{cfg.Network.Name}
		req.NetworkAliases = map[string][]string{cfg.Network.Name: cfg.NetworkAliases}
	}

	return req
}

// prepare validates cfg and fills in generated values.
func (c *Config) prepare() error {
	if c.Logger == nil {
		c.Logger = gitserver.NoopLogger()
	}

	if err := c.Image.AssertCompatibleWith(DefaultImage); err != nil {
		return err
	}

	if c.generateIdentity {
		identity, err := gitserver.GenerateSSHIdentity()
		if err != nil {
			return fmt.Errorf("failed to generate ssh identity: %w", err)
		}
		c.SSHIdentity = identity
		c.generateIdentity = false
	}

	return nil
}

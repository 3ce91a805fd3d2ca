package httpserver

import (
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	gitserver "github.com/sparsick/testcontainers-gitserver"
)

const (
	httpPort = "80/tcp"
	repoRoot = "/srv/git"
)

func repoPath(name string) string {
	return fmt.Sprintf("%s/%s.git", repoRoot, name)
}

func containerRequest(cfg *Config, buildContext string) testcontainers.ContainerRequest {
	req := testcontainers.ContainerRequest{
		FromDockerfile: testcontainers.FromDockerfile{
			Context:    buildContext,
			Dockerfile: "Dockerfile",
			BuildArgs:  buildArgs(cfg.ProxySetting),
		},
		ExposedPorts: []string{httpPort},
		Env:          cfg.ProxySetting.Env(),
		WaitingFor:   waitStrategy(cfg),
	}

	if cfg.Network != nil {
		req.Networks = []string{cfg.Network.Name}
		req.NetworkAliases = map[string][]string{cfg.Network.Name: cfg.NetworkAliases}
	}

	return req
}

// waitStrategy waits for the git-server entrypoint and, because nginx starts
// after it, for the HTTP port as well.
func waitStrategy(cfg *Config) wait.Strategy {
	ready := gitserver.ReadinessStrategy(cfg.Image, httpPort, cfg.StartTimeout)
	if _, ok := ready.(*wait.HostPortStrategy); ok {
		return ready
	}
	return wait.ForAll(ready, wait.ForListeningPort(httpPort).WithStartupTimeout(cfg.StartTimeout))
}

func buildArgs(setting gitserver.HTTPProxySetting) map[string]*string {
	env := setting.Env()
	if len(env) == 0 {
		return nil
	}

	args := make(map[string]*string, len(env))
	for name, value := range env {
		args[name] = &value
	}
	return args
}

func (c *Config) prepare() error {
	if c.Logger == nil {
		c.Logger = gitserver.NoopLogger()
	}
	return c.Image.AssertCompatibleWith(DefaultImage)
}

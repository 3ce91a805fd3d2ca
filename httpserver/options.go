package httpserver

import (
	"time"

	"github.com/testcontainers/testcontainers-go"

	gitserver "github.com/sparsick/testcontainers-gitserver"
)

// Defaults of an HTTP git server.
const (
	DefaultRepoName = "testRepo"
	DefaultTimeout  = 60 * time.Second
)

// DefaultImage is the base image used when WithImage is not given.
var DefaultImage = gitserver.LatestGitServerVersion.ImageName()

// Config holds the configuration of an HTTP git server.
type Config struct {
	Logger        gitserver.Logger
	StartTimeout  time.Duration
	Image         gitserver.ImageName
	RepoName      string
	DefaultBranch string

	// Credentials enable basic authentication when set.
	Credentials  *gitserver.BasicAuthCredentials
	ProxySetting gitserver.HTTPProxySetting

	Network        *testcontainers.DockerNetwork
	NetworkAliases []string
}

func defaultConfig() *Config {
	return &Config{
		Logger:        gitserver.NoopLogger(),
		StartTimeout:  DefaultTimeout,
		Image:         DefaultImage,
		RepoName:      DefaultRepoName,
		DefaultBranch: gitserver.DefaultBranch,
	}
}

// ServerOption configures a Server instance.
type ServerOption func(*Config)

// WithLogger sets the logger for server operations and container output.
func WithLogger(logger gitserver.Logger) ServerOption {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithTimeout sets the startup timeout for the server container.
func WithTimeout(duration time.Duration) ServerOption {
	return func(c *Config) {
		c.StartTimeout = duration
	}
}

// WithImage sets the base image the server is built on. It must be
// rockstorm/git-server or declared a compatible substitute for it.
func WithImage(image gitserver.ImageName) ServerOption {
	return func(c *Config) {
		c.Image = image
	}
}

// WithBasicAuth protects the repository with HTTP basic authentication.
func WithBasicAuth(credentials *gitserver.BasicAuthCredentials) ServerOption {
	return func(c *Config) {
		c.Credentials = credentials
	}
}

// WithHTTPProxySetting forwards proxy settings to the image build and the container.
func WithHTTPProxySetting(setting gitserver.HTTPProxySetting) ServerOption {
	return func(c *Config) {
		c.ProxySetting = setting
	}
}

// WithGitRepo overrides the name of the repository created on startup.
func WithGitRepo(name string) ServerOption {
	return func(c *Config) {
		c.RepoName = name
	}
}

// WithDefaultBranch sets the initial branch of the created repository.
func WithDefaultBranch(branch string) ServerOption {
	return func(c *Config) {
		c.DefaultBranch = branch
	}
}

// WithNetwork attaches the container to network, reachable under the given aliases.
func WithNetwork(network *testcontainers.DockerNetwork, aliases ...string) ServerOption {
	return func(c *Config) {
		c.Network = network
		c.NetworkAliases = aliases
	}
}

package plain

import (
	"time"

	"github.com/testcontainers/testcontainers-go"

	gitserver "github.com/sparsick/testcontainers-gitserver"
)

// Defaults of a plain SSH git server.
const (
	DefaultGitPassword = "12345"
	DefaultRepoName    = "testRepo"
	DefaultTimeout     = 60 * time.Second
)

// DefaultImage is the image used when WithImage is not given.
var DefaultImage = gitserver.LatestGitServerVersion.ImageName()

// Config holds the configuration of a plain SSH git server.
type Config struct {
	Logger        gitserver.Logger
	StartTimeout  time.Duration
	Image         gitserver.ImageName
	GitPassword   string
	RepoName      string
	DefaultBranch string

	// SSHIdentity enables public key authentication when set.
	SSHIdentity *gitserver.SSHIdentity
	// ExistingRepoPath is a local repository whose .git directory is served instead of a fresh one.
	ExistingRepoPath string

	Network        *testcontainers.DockerNetwork
	NetworkAliases []string

	generateIdentity bool
}

func defaultConfig() *Config {
	return &Config{
		Logger:        gitserver.NoopLogger(),
		StartTimeout:  DefaultTimeout,
		Image:         DefaultImage,
		GitPassword:   DefaultGitPassword,
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

// WithImage sets the Docker image. It must be rockstorm/git-server or declared
// a compatible substitute for it.
func WithImage(image gitserver.ImageName) ServerOption {
	return func(c *Config) {
		c.Image = image
	}
}

// WithGitPassword overrides the password of the git user.
func WithGitPassword(password string) ServerOption {
	return func(c *Config) {
		c.GitPassword = password
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

// WithSSHKeyAuth enables public key authentication with a freshly generated client identity.
func WithSSHKeyAuth() ServerOption {
	return func(c *Config) {
		c.generateIdentity = true
	}
}

// WithSSHIdentity enables public key authentication with the given client identity.
func WithSSHIdentity(identity *gitserver.SSHIdentity) ServerOption {
	return func(c *Config) {
		c.SSHIdentity = identity
		c.generateIdentity = false
	}
}

// WithCopyExistingGitRepo serves the repository at path instead of an empty one.
// Its .git directory is copied into the container and turned into a bare repository.
func WithCopyExistingGitRepo(path string) ServerOption {
	return func(c *Config) {
		c.ExistingRepoPath = path
	}
}

// WithNetwork attaches the container to network, reachable under the given aliases.
func WithNetwork(network *testcontainers.DockerNetwork, aliases ...string) ServerOption {
	return func(c *Config) {
		c.Network = network
		c.NetworkAliases = aliases
	}
}

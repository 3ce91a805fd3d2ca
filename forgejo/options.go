package forgejo

import (
	"time"

	"github.com/testcontainers/testcontainers-go"

	gitserver "github.com/sparsick/testcontainers-gitserver"
)

// Defaults of a Forgejo server.
const (
	DefaultInitUserName     = "gitUser"
	DefaultInitUserPassword = "init123"
	DefaultRepoName         = "testRepo"
	DefaultTimeout          = 120 * time.Second
)

// DefaultImage is the image used when WithImage is not given.
var DefaultImage = LatestVersion.ImageName()

// Config holds the configuration of a Forgejo server.
type Config struct {
	Logger       gitserver.Logger
	StartTimeout time.Duration
	Image        gitserver.ImageName

	// InitUserName and InitUserPassword identify the admin user owning the repository.
	InitUserName     string
	InitUserPassword string

	RepoName string
	// AutoInit lets Forgejo create an initial commit. It is ignored when
	// ExistingRepoPath is set.
	AutoInit bool
	// ExistingRepoPath is a local repository whose branches and tags are pushed on startup.
	ExistingRepoPath string

	// SSHIdentity is registered as a key of the init user. Nil disables key auth.
	SSHIdentity      *gitserver.SSHIdentity
	generateIdentity bool

	Network        *testcontainers.DockerNetwork
	NetworkAliases []string
}

func defaultConfig() *Config {
	return &Config{
		Logger:           gitserver.NoopLogger(),
		StartTimeout:     DefaultTimeout,
		Image:            DefaultImage,
		InitUserName:     DefaultInitUserName,
		InitUserPassword: DefaultInitUserPassword,
		RepoName:         DefaultRepoName,
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

// WithImage sets the Forgejo image. It must be forgejoclone/forgejo or
// declared a compatible substitute for it.
func WithImage(image gitserver.ImageName) ServerOption {
	return func(c *Config) {
		c.Image = image
	}
}

// WithInitUserName overrides the name of the admin user.
func WithInitUserName(name string) ServerOption {
	return func(c *Config) {
		c.InitUserName = name
	}
}

// WithInitUserPassword overrides the password of the admin user.
func WithInitUserPassword(password string) ServerOption {
	return func(c *Config) {
		c.InitUserPassword = password
	}
}

// WithGitRepo overrides the name of the repository created on startup.
func WithGitRepo(name string) ServerOption {
	return func(c *Config) {
		c.RepoName = name
	}
}

// WithAutoInit creates the repository with an initial commit.
func WithAutoInit() ServerOption {
	return func(c *Config) {
		c.AutoInit = true
	}
}

// WithSSHKeyAuth registers a freshly generated identity for the init user.
func WithSSHKeyAuth() ServerOption {
	return func(c *Config) {
		c.generateIdentity = true
	}
}

// WithSSHIdentity registers the given identity for the init user.
func WithSSHIdentity(identity *gitserver.SSHIdentity) ServerOption {
	return func(c *Config) {
		c.SSHIdentity = identity
	}
}

// WithCopyExistingGitRepo pushes all branches and tags of the local repository
// at path into the created repository.
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

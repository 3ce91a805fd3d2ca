package auth

import (
	"os"

	"github.com/grafana/nanogit/options"

	gitserver "github.com/sparsick/testcontainers-gitserver"
)

// Config holds authentication configuration
type Config struct {
	Token    string
	Username string
	Password string
}

// FromEnvironment reads authentication from GITSERVER_TOKEN,
// GITSERVER_USERNAME and GITSERVER_PASSWORD.
func FromEnvironment() *Config {
	return &Config{
		Token:    os.Getenv("GITSERVER_TOKEN"),
		Username: os.Getenv("GITSERVER_USERNAME"),
		Password: os.Getenv("GITSERVER_PASSWORD"),
	}
}

// Merge combines environment auth with command-line flags.
// Command-line flags take precedence over environment variables.
func (c *Config) Merge(flagToken, flagUsername, flagPassword string) {
	if flagToken != "" {
		c.Token = flagToken
	}
	if flagUsername != "" {
		c.Username = flagUsername
	}
	if flagPassword != "" {
		c.Password = flagPassword
	}
}

// ToOptions converts authentication config to nanogit options.
func (c *Config) ToOptions() []options.Option {
	var opts []options.Option

	if c.Token != "" {
		opts = append(opts, options.WithTokenAuth(c.Token))
	} else if c.HasBasicAuth() {
		opts = append(opts, options.WithBasicAuth(c.Username, c.Password))
	}

	return opts
}

// HasBasicAuth returns true if both username and password are set
func (c *Config) HasBasicAuth() bool {
	return c.Username != "" && c.Password != ""
}

// HasAuth returns true if any authentication is configured
func (c *Config) HasAuth() bool {
	return c.Token != "" || c.HasBasicAuth()
}

// BasicAuthCredentials returns the configured username and password, or nil
// unless both are set.
func (c *Config) BasicAuthCredentials() *gitserver.BasicAuthCredentials {
	if !c.HasBasicAuth() {
		return nil
	}
	return gitserver.NewBasicAuthCredentials(c.Username, c.Password)
}

package plain

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing/transport"

	gitserver "github.com/sparsick/testcontainers-gitserver"
)

// Server is a running rockstorm/git-server container serving one repository over SSH.
type Server struct {
	*gitserver.Container

	// Port is the host port mapped to the SSH port of the container.
	Port string

	cfg     *Config
	hostKey *gitserver.SSHHostKey
}

// NewServer starts an SSH git server and creates its repository.
//
// The call blocks until the container is ready and provisioned. If any step fails
// the container is terminated and the error returned. Use Cleanup() to stop and
// remove the container.
func NewServer(ctx context.Context, opts ...ServerOption) (*Server, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.prepare(); err != nil {
		return nil, err
	}

	log := gitserver.NewStructuredLogger(cfg.Logger)
	log.Info("starting SSH git server", "image", cfg.Image, "repo", cfg.RepoName, "keyAuth", cfg.SSHIdentity != nil)

	container, err := gitserver.StartContainer(ctx, containerRequest(cfg), cfg.Logger, "SSH")
	if err != nil {
		return nil, err
	}

	port, err := container.MappedPort(ctx, sshPort)
	if err != nil {
		_ = container.Cleanup()
		return nil, err
	}

	hostKey, err := provision(ctx, container, cfg, container.Host)
	if err != nil {
		log.Error("setup failed", "error", err)
		_ = container.Cleanup()
		return nil, err
	}

	server := &Server{
		Container: container,
		Port:      port,
		cfg:       cfg,
		hostKey:   hostKey,
	}

	log.Success("SSH git server ready", "url", server.RepoURL())
	return server, nil
}

// RepoURL returns the SSH URL of the repository,
// e.g. ssh://git@localhost:32768/srv/git/testRepo.git.
func (s *Server) RepoURL() string {
	return fmt.Sprintf("ssh://git@%s:%s%s", s.Host, s.Port, RepoPath(s.cfg.RepoName))
}

// RepoName returns the name of the served repository.
func (s *Server) RepoName() string {
	return s.cfg.RepoName
}

// GitPassword returns the password of the git user.
func (s *Server) GitPassword() string {
	return s.cfg.GitPassword
}

// SSHClientIdentity returns the client identity for public key authentication,
// or nil if the server was started without it.
func (s *Server) SSHClientIdentity() *gitserver.SSHIdentity {
	return s.cfg.SSHIdentity
}

// HostKey returns the ECDSA host key of the server.
func (s *Server) HostKey() *gitserver.SSHHostKey {
	return s.hostKey
}

// KnownHostsLine returns a known_hosts entry pinning the server's host key.
func (s *Server) KnownHostsLine() (string, error) {
	return s.hostKey.KnownHostsLine(s.Port)
}

// PasswordAuth returns go-git password authentication for the git user, pinned to the host key.
func (s *Server) PasswordAuth() (transport.AuthMethod, error) {
	return gitserver.PasswordAuth("git", s.cfg.GitPassword, s.hostKey)
}

// PublicKeyAuth returns go-git public key authentication for the git user, pinned to the host key.
// It fails with ErrSSHKeyAuthNotConfigured unless the server was started with key auth.
func (s *Server) PublicKeyAuth() (transport.AuthMethod, error) {
	if s.cfg.SSHIdentity == nil {
		return nil, gitserver.ErrSSHKeyAuthNotConfigured
	}
	return s.cfg.SSHIdentity.AuthMethod("git", s.hostKey)
}

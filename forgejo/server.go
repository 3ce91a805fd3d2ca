package forgejo

import (
	"context"
	"fmt"

	"code.gitea.io/sdk/gitea"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/grafana/nanogit"
	"github.com/grafana/nanogit/options"

	gitserver "github.com/sparsick/testcontainers-gitserver"
)

// Server is a running Forgejo instance with one user and one repository.
type Server struct {
	*gitserver.Container

	// HTTPPort and SSHPort are the host ports mapped to the web and SSH ports of the container.
	HTTPPort string
	SSHPort  string

	cfg *Config
}

// NewServer starts Forgejo, creates the init user and its repository.
//
// With key auth the client identity is registered for the init user. With an
// existing repository its branches and tags are pushed into the created one.
// If any step fails the container is terminated and the error returned.
func NewServer(ctx context.Context, opts ...ServerOption) (*Server, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.prepare(); err != nil {
		return nil, err
	}

	log := gitserver.NewStructuredLogger(cfg.Logger)
	log.Info("starting Forgejo", "image", cfg.Image, "user", cfg.InitUserName, "repo", cfg.RepoName)

	container, err := gitserver.StartContainer(ctx, containerRequest(cfg), cfg.Logger, "FORGEJO")
	if err != nil {
		return nil, err
	}

	server := &Server{Container: container, cfg: cfg}
	if err := server.setup(ctx); err != nil {
		log.Error("setup failed", "error", err)
		_ = container.Cleanup()
		return nil, err
	}

	log.Success("Forgejo ready", "url", server.URL(), "repo", server.HTTPURL())
	return server, nil
}

func (s *Server) setup(ctx context.Context) error {
	var err error
	if s.HTTPPort, err = s.MappedPort(ctx, httpPort); err != nil {
		return err
	}
	if s.SSHPort, err = s.MappedPort(ctx, sshPort); err != nil {
		return err
	}

	if err := createAdminUser(ctx, s, s.cfg); err != nil {
		return err
	}

	client, err := s.APIClient(ctx)
	if err != nil {
		return err
	}

	if err := createRepository(client, s.cfg); err != nil {
		return err
	}

	if s.cfg.SSHIdentity != nil {
		if err := registerPublicKey(client, s.cfg); err != nil {
			return err
		}
	}

	if s.cfg.ExistingRepoPath != "" {
		return importRepository(ctx, s.cfg.Logger, s.cfg.ExistingRepoPath, s.HTTPURL(), s.BasicAuth())
	}

	return nil
}

// URL returns the base URL of the web interface.
func (s *Server) URL() string {
	return fmt.Sprintf("http://%s:%s", s.Host, s.HTTPPort)
}

// APIURL returns the base URL of the REST API.
func (s *Server) APIURL() string {
	return s.URL() + "/api/v1"
}

// HTTPURL returns the HTTP clone URL, e.g. http://localhost:32768/gitUser/testRepo.git.
func (s *Server) HTTPURL() string {
	return fmt.Sprintf("%s/%s/%s.git", s.URL(), s.cfg.InitUserName, s.cfg.RepoName)
}

// SSHURL returns the SSH clone URL. It fails with ErrSSHKeyAuthNotConfigured
// unless the server was started with key auth.
func (s *Server) SSHURL() (string, error) {
	if s.cfg.SSHIdentity == nil {
		return "", gitserver.ErrSSHKeyAuthNotConfigured
	}
	return fmt.Sprintf("ssh://git@%s:%s/%s/%s.git", s.Host, s.SSHPort, s.cfg.InitUserName, s.cfg.RepoName), nil
}

// RepoName returns the name of the created repository.
func (s *Server) RepoName() string {
	return s.cfg.RepoName
}

// InitUserName returns the name of the admin user owning the repository.
func (s *Server) InitUserName() string {
	return s.cfg.InitUserName
}

// InitUserPassword returns the password of the admin user.
func (s *Server) InitUserPassword() string {
	return s.cfg.InitUserPassword
}

// Credentials returns the init user as basic auth credentials.
func (s *Server) Credentials() *gitserver.BasicAuthCredentials {
	return gitserver.NewBasicAuthCredentials(s.cfg.InitUserName, s.cfg.InitUserPassword)
}

// BasicAuth returns go-git HTTP authentication as the init user.
func (s *Server) BasicAuth() transport.AuthMethod {
	return s.Credentials().AuthMethod()
}

// SSHClientIdentity returns the identity registered for the init user, or nil
// if key auth is disabled.
func (s *Server) SSHClientIdentity() *gitserver.SSHIdentity {
	return s.cfg.SSHIdentity
}

// PublicKeyAuth returns go-git SSH authentication with the registered identity.
// The host key is not verified.
func (s *Server) PublicKeyAuth() (transport.AuthMethod, error) {
	if s.cfg.SSHIdentity == nil {
		return nil, gitserver.ErrSSHKeyAuthNotConfigured
	}
	return s.cfg.SSHIdentity.AuthMethod("git", nil)
}

// APIClient returns a REST client authenticated as the init user.
func (s *Server) APIClient(ctx context.Context) (*gitea.Client, error) {
	return newAPIClient(ctx, s.URL(), s.cfg.InitUserName, s.cfg.InitUserPassword)
}

// NanogitClient returns a nanogit smart-HTTP client for the repository,
// authenticated as the init user.
func (s *Server) NanogitClient() (nanogit.Client, error) {
	client, err := nanogit.NewHTTPClient(s.HTTPURL(),
		options.WithBasicAuth(s.cfg.InitUserName, s.cfg.InitUserPassword))
	if err != nil {
		return nil, fmt.Errorf("failed to create nanogit client: %w", err)
	}
	return client, nil
}

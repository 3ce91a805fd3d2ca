package httpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/grafana/nanogit"
	"github.com/grafana/nanogit/options"

	gitserver "github.com/sparsick/testcontainers-gitserver"
)

// Server is a running smart-HTTP git server serving one repository.
type Server struct {
	*gitserver.Container

	// Port is the host port mapped to the HTTP port of the container.
	Port string

	cfg *Config
}

// NewServer builds the server image, starts it and creates its repository.
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

	buildContext, err := writeBuildContext(Dockerfile(cfg.Image, cfg.Credentials))
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(buildContext)

	log := gitserver.NewStructuredLogger(cfg.Logger)
	log.Info("building HTTP git server", "base", cfg.Image, "repo", cfg.RepoName, "basicAuth", cfg.Credentials != nil)
	if !cfg.ProxySetting.IsEmpty() {
		log.Debug("using proxy settings", "httpProxy", cfg.ProxySetting.HTTPProxy, "httpsProxy", cfg.ProxySetting.HTTPSProxy, "noProxy", cfg.ProxySetting.NoProxy)
	}

	container, err := gitserver.StartContainer(ctx, containerRequest(cfg, buildContext), cfg.Logger, "HTTP")
	if err != nil {
		return nil, err
	}

	port, err := container.MappedPort(ctx, httpPort)
	if err != nil {
		_ = container.Cleanup()
		return nil, err
	}

	if err := provision(ctx, container, cfg); err != nil {
		log.Error("setup failed", "error", err)
		_ = container.Cleanup()
		return nil, err
	}

	server := &Server{
		Container: container,
		Port:      port,
		cfg:       cfg,
	}

	log.Success("HTTP git server ready", "url", server.RepoURL())
	return server, nil
}

// RepoURL returns the HTTP URL of the repository, e.g. http://localhost:32768/git/testRepo.
func (s *Server) RepoURL() string {
	return fmt.Sprintf("http://%s:%s/git/%s", s.Host, s.Port, s.cfg.RepoName)
}

// RepoName returns the name of the served repository.
func (s *Server) RepoName() string {
	return s.cfg.RepoName
}

// BasicAuthCredentials returns the credentials protecting the repository,
// or nil if basic authentication is disabled.
func (s *Server) BasicAuthCredentials() *gitserver.BasicAuthCredentials {
	return s.cfg.Credentials
}

// HasHTTPProxy reports whether proxy settings were forwarded to the container.
func (s *Server) HasHTTPProxy() bool {
	return !s.cfg.ProxySetting.IsEmpty()
}

// HTTPProxySetting returns the forwarded proxy settings.
func (s *Server) HTTPProxySetting() gitserver.HTTPProxySetting {
	return s.cfg.ProxySetting
}

// AuthMethod returns go-git basic authentication, or nil if basic authentication is disabled.
func (s *Server) AuthMethod() transport.AuthMethod {
	if s.cfg.Credentials == nil {
		return nil
	}
	return s.cfg.Credentials.AuthMethod()
}

// NanogitClient returns a nanogit smart-HTTP client for the repository,
// authenticated when basic authentication is enabled.
func (s *Server) NanogitClient() (nanogit.Client, error) {
	var opts []options.Option
	if c := s.cfg.Credentials; c != nil {
		opts = append(opts, options.WithBasicAuth(c.Username(), c.Password()))
	}

	client, err := nanogit.NewHTTPClient(s.RepoURL(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create nanogit client: %w", err)
	}
	return client, nil
}

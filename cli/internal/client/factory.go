package client

import (
	"github.com/grafana/nanogit"

	"github.com/sparsick/testcontainers-gitserver/cli/internal/auth"
)

// New creates a nanogit client for url with the provided authentication.
func New(url string, authConfig *auth.Config) (nanogit.Client, error) {
	return nanogit.NewHTTPClient(url, authConfig.ToOptions()...)
}

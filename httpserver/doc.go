// Package httpserver starts a disposable smart-HTTP git server.
//
// The image is built on the fly on top of rockstorm/git-server and serves
// /srv/git through nginx, fcgiwrap and git-http-backend. Basic authentication
// is optional:
//
//	server, err := httpserver.NewServer(ctx,
//		httpserver.WithBasicAuth(gitserver.NewBasicAuthCredentials("user", "secret")),
//	)
//	if err != nil {
//		return err
//	}
//	defer server.Cleanup()
//
//	repo, err := gitserver.CloneLocalRepo(ctx, server.RepoURL(), server.AuthMethod())
package httpserver

// Package gitserver holds the shared building blocks of disposable git server
// fixtures backed by testcontainers.
//
// The fixtures themselves live in sub-packages:
//   - plain: SSH git server with password or public key authentication
//   - httpserver: smart-HTTP git server with optional basic authentication
//   - forgejo: Forgejo hosting service with an initial user and repository
//
// Every fixture follows the same shape:
//
//	server, err := plain.NewServer(ctx,
//		plain.WithLogger(gitserver.NewTestLogger(t)),
//		plain.WithSSHKeyAuth(),
//	)
//	require.NoError(t, err)
//	defer server.Cleanup()
//
//	auth, err := server.PublicKeyAuth()
//	require.NoError(t, err)
//	repo, err := gitserver.CloneLocalRepo(ctx, server.RepoURL(), auth)
//
// This package provides the value objects handed to git clients (credentials,
// SSH identities and host keys), image name handling, logging, and the
// container base every fixture builds on.
package gitserver

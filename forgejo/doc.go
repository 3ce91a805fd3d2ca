// Package forgejo starts a disposable Forgejo instance for integration tests.
//
// On startup an admin user and one repository owned by it are created. The
// repository is reachable over HTTP with basic auth and, when started with
// WithSSHKeyAuth, over SSH with a generated key:
//
//	server, err := forgejo.NewServer(ctx, forgejo.WithSSHKeyAuth())
//	if err != nil {
//		return err
//	}
//	defer server.Cleanup()
//
//	url, err := server.SSHURL()
//	auth, err := server.PublicKeyAuth()
package forgejo

// Package plain starts a disposable SSH git server based on the rockstorm/git-server image.
//
// The server creates one bare repository under /srv/git and accepts the git user
// with a password and, optionally, with a public key:
//
//	server, err := plain.NewServer(ctx,
//		plain.WithGitRepo("myRepo"),
//		plain.WithSSHKeyAuth(),
//	)
//	if err != nil {
//		return err
//	}
//	defer server.Cleanup()
//
//	auth, err := server.PublicKeyAuth()
//	// clone server.RepoURL() with auth
package plain

package gitserver_test

import (
	"testing"

	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	gitserver "github.com/sparsick/testcontainers-gitserver"
)

func TestSSHAuthMethods(t *testing.T) {
	identity, err := gitserver.GenerateSSHIdentity()
	require.NoError(t, err)

	hostKey, err := gitserver.ParseSSHHostKey("localhost", identity.PublicKey)
	require.NoError(t, err)

	t.Run("public keys pinned to host key", func(t *testing.T) {
		auth, err := identity.AuthMethod("git", hostKey)
		require.NoError(t, err)
		assert.Equal(t, gitssh.PublicKeysName, auth.Name())

		sshAuth, ok := auth.(gitssh.AuthMethod)
		require.True(t, ok)

		cfg, err := sshAuth.ClientConfig()
		require.NoError(t, err)
		assert.Equal(t, "git", cfg.User)
		assert.Equal(t, []string{ssh.KeyAlgoED25519}, cfg.HostKeyAlgorithms)
		assert.NotNil(t, cfg.HostKeyCallback)
	})

	t.Run("password without host key", func(t *testing.T) {
		auth, err := gitserver.PasswordAuth("git", "12345", nil)
		require.NoError(t, err)
		assert.Equal(t, gitssh.PasswordName, auth.Name())

		sshAuth, ok := auth.(gitssh.AuthMethod)
		require.True(t, ok)

		cfg, err := sshAuth.ClientConfig()
		require.NoError(t, err)
		assert.Equal(t, "git", cfg.User)
		assert.Equal(t, ssh.SupportedAlgorithms().HostKeys, cfg.HostKeyAlgorithms)
	})

	t.Run("encrypted identity", func(t *testing.T) {
		encrypted, err := gitserver.GenerateSSHIdentityWithPassphrase([]byte("secret"))
		require.NoError(t, err)

		_, err = encrypted.AuthMethod("git", nil)
		require.NoError(t, err)
	})
}

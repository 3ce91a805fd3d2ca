package plain

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	gitserver "github.com/sparsick/testcontainers-gitserver"
)

func configWith(opts ...ServerOption) *Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, "rockstorm/git-server:2.49", cfg.Image.String())
	assert.Equal(t, "12345", cfg.GitPassword)
	assert.Equal(t, "testRepo", cfg.RepoName)
	assert.Equal(t, "main", cfg.DefaultBranch)
	assert.Equal(t, 60*time.Second, cfg.StartTimeout)
	assert.Nil(t, cfg.SSHIdentity)
}

func TestContainerRequest(t *testing.T) {
	t.Run("exposes only the ssh port", func(t *testing.T) {
		req := containerRequest(configWith())
		assert.Equal(t, []string{"22/tcp"}, req.ExposedPorts)
		assert.Equal(t, []string{"/usr/sbin/sshd", "-D", "-e"}, req.Cmd)
		assert.Empty(t, req.Files)
	})

	t.Run("git password", func(t *testing.T) {
		req := containerRequest(configWith(WithGitPassword("s3cret")))
		assert.Equal(t, "s3cret", req.Env["GIT_PASSWORD"])

		req = containerRequest(configWith())
		assert.Equal(t, "12345", req.Env["GIT_PASSWORD"])
	})

	t.Run("ssh key auth installs sshd config", func(t *testing.T) {
		cfg := configWith(WithSSHKeyAuth())
		require.NoError(t, cfg.prepare())
		require.NotNil(t, cfg.SSHIdentity)

		req := containerRequest(cfg)
		require.Len(t, req.Files, 1)
		assert.Equal(t, "/etc/ssh/sshd_config", req.Files[0].ContainerFilePath)

		content, err := io.ReadAll(req.Files[0].Reader)
		require.NoError(t, err)
		assert.Contains(t, string(content), "PubkeyAuthentication yes")
		assert.Contains(t, string(content), "PasswordAuthentication yes")
	})

	t.Run("network aliases", func(t *testing.T) {
		network := &testcontainers.DockerNetwork{Name: "gitnet"}
		req := containerRequest(configWith(WithNetwork(network, "git")))
		assert.Equal(t, []string{"gitnet"}, req.Networks)
		assert.Equal(t, map[string][]string{"gitnet": {"git"}}, req.NetworkAliases)
	})
}

func TestWaitStrategy(t *testing.T) {
	tests := []struct {
		version gitserver.GitServerVersion
		waitLog bool
	}{
		{version: gitserver.GitServer249, waitLog: true},
		{version: gitserver.GitServer238, waitLog: true},
		{version: gitserver.GitServer236, waitLog: false},
		{version: gitserver.GitServer2342, waitLog: false},
		{version: gitserver.GitServer234, waitLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.version.String(), func(t *testing.T) {
			req := containerRequest(configWith(WithImage(tt.version.ImageName())))

			if tt.waitLog {
				strategy, ok := req.WaitingFor.(*wait.LogStrategy)
				require.True(t, ok, "expected log strategy, got %T", req.WaitingFor)
				assert.Equal(t, "Container configuration completed", strategy.Log)
				return
			}

			strategy, ok := req.WaitingFor.(*wait.HostPortStrategy)
			require.True(t, ok, "expected port strategy, got %T", req.WaitingFor)
			assert.Equal(t, "22/tcp", string(strategy.Port))
		})
	}
}

func TestPrepare(t *testing.T) {
	t.Run("rejects foreign images", func(t *testing.T) {
		cfg := configWith(WithImage(gitserver.MustParseImageName("alpine:3.20")))
		require.ErrorIs(t, cfg.prepare(), gitserver.ErrIncompatibleImage)
	})

	t.Run("accepts declared substitutes", func(t *testing.T) {
		image := gitserver.MustParseImageName("mirror.local/git-server:2.49").
			AsCompatibleSubstituteFor("rockstorm/git-server")
		cfg := configWith(WithImage(image))
		require.NoError(t, cfg.prepare())
	})

	t.Run("keeps a given identity", func(t *testing.T) {
		identity, err := gitserver.GenerateSSHIdentity()
		require.NoError(t, err)

		cfg := configWith(WithSSHKeyAuth(), WithSSHIdentity(identity))
		require.NoError(t, cfg.prepare())
		assert.Same(t, identity, cfg.SSHIdentity)
	})
}

func TestRepoPath(t *testing.T) {
	assert.Equal(t, "/srv/git/testRepo.git", RepoPath("testRepo"))
	assert.Equal(t, "/srv/git/other.git", RepoPath("other"))
}

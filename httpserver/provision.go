package httpserver

import (
	"context"
	"fmt"

	gitserver "github.com/sparsick/testcontainers-gitserver"
)

// provision creates the bare repository and allows anonymous pushes over
// git-http-backend. Access control is left to nginx.
func provision(ctx context.Context, target gitserver.Target, cfg *Config) error {
	path := repoPath(cfg.RepoName)
	configFile := shellQuote(path + "/config")

	cfg.Logger.Logf("📁 Creating bare repository %s", path)

	err := gitserver.ExecAll(ctx, target, cfg.Logger, [][]string{
		{"mkdir", "-p", path},
		{"git", "init", "--bare", "--initial-branch=" + cfg.DefaultBranch, path},
		{"sh", "-c", "echo '[http]' >> " + configFile},
		{"sh", "-c", "echo '        receivepack = true' >> " + configFile},
		{"chown", "-R", "git:git", repoRoot},
	})
	if err != nil {
		return fmt.Errorf("failed to configure git repository: %w", err)
	}
	return nil
}

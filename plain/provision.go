package plain

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	gitserver "github.com/sparsick/testcontainers-gitserver"
)

// provision prepares a started container: repository, host key and, with
// public key auth, the authorized_keys file. The first failure aborts.
func provision(ctx context.Context, target gitserver.Target, cfg *Config, host string) (*gitserver.SSHHostKey, error) {
	if err := setupRepository(ctx, target, cfg); err != nil {
		return nil, fmt.Errorf("failed to configure git repository: %w", err)
	}

	hostKey, err := collectHostKey(ctx, target, cfg.Logger, host)
	if err != nil {
		return nil, fmt.Errorf("failed to collect host key: %w", err)
	}

	if cfg.SSHIdentity != nil {
		if err := installAuthorizedKey(ctx, target, cfg); err != nil {
			return nil, fmt.Errorf("failed to install authorized key: %w", err)
		}
	}

	return hostKey, nil
}

func setupRepository(ctx context.Context, target gitserver.Target, cfg *Config) error {
	repoPath := RepoPath(cfg.RepoName)

	if cfg.ExistingRepoPath == "" {
		cfg.Logger.Logf("📁 Creating bare repository %s", repoPath)
		return gitserver.ExecAll(ctx, target, cfg.Logger, [][]string{
			{"mkdir", "-p", repoPath},
			{"git", "init", "--bare", "--initial-branch=" + cfg.DefaultBranch, repoPath},
			{"chown", "-R", "git:git", repoRoot},
		})
	}

	cfg.Logger.Logf("📦 Copying existing repository %s to %s", cfg.ExistingRepoPath, repoPath)
	staging := path.Join("/tmp", cfg.RepoName+"-import")
	return copyExistingRepository(ctx, target, cfg.Logger, filepath.Join(cfg.ExistingRepoPath, ".git"), staging, repoPath)
}

// copyExistingRepository copies a local .git directory into the container at
// repoPath and marks it as bare repository owned by the git user. The directory
// lands in staging first since the copy keeps its base name.
func copyExistingRepository(ctx context.Context, target gitserver.Target, logger gitserver.Logger, gitDir, staging, repoPath string) error {
	info, err := os.Stat(gitDir)
	if err != nil {
		return fmt.Errorf("failed to read existing repository: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("existing repository %s is not a directory", gitDir)
	}

	if _, err := gitserver.Exec(ctx, target, logger, []string{"mkdir", "-p", staging}); err != nil {
		return err
	}

	if err := target.CopyDirToContainer(ctx, gitDir, path.Join(staging, ".git"), 0o755); err != nil {
		return fmt.Errorf("failed to copy repository: %w", err)
	}

	return gitserver.ExecAll(ctx, target, logger, [][]string{
		{"mkdir", "-p", path.Dir(repoPath)},
		{"mv", path.Join(staging, ".git"), repoPath},
		{"rm", "-rf", staging},
		{"git", "--git-dir", repoPath, "config", "--bool", "core.bare", "true"},
		{"chown", "-R", "git:git", repoRoot},
	})
}

func collectHostKey(ctx context.Context, target gitserver.Target, logger gitserver.Logger, host string) (*gitserver.SSHHostKey, error) {
	out, err := gitserver.Exec(ctx, target, logger, []string{"cat", hostKeyPath})
	if err != nil {
		return nil, err
	}
	return gitserver.ParseSSHHostKey(host, []byte(out))
}

func installAuthorizedKey(ctx context.Context, target gitserver.Target, cfg *Config) error {
	cfg.Logger.Logf("🔑 Installing client public key")

	if err := target.CopyToContainer(ctx, cfg.SSHIdentity.AuthorizedKey(), "/tmp/authorized_keys", 0o600); err != nil {
		return fmt.Errorf("failed to copy public key: %w", err)
	}

	// sshd rejects keys in files that other users can write.
	return gitserver.ExecAll(ctx, target, cfg.Logger, [][]string{
		{"mkdir", "-p", sshDir},
		{"mv", "/tmp/authorized_keys", authorizedKeysPath},
		{"chown", "-R", "git:git", sshDir},
		{"chmod", "700", sshDir},
		{"chmod", "600", authorizedKeysPath},
	})
}

package gitserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// DefaultBranch is the branch fixtures initialize repositories with.
const DefaultBranch = "main"

// LocalRepo is a git repository in a temporary directory, used to prepare
// content for a fixture or to verify what a fixture serves.
type LocalRepo struct {
	Path string

	repo   *git.Repository
	logger Logger
}

// RepoOption configures a LocalRepo.
type RepoOption func(*repoConfig)

type repoConfig struct {
	logger  Logger
	tempDir string
}

// WithRepoLogger sets the logger of the local repository.
func WithRepoLogger(logger Logger) RepoOption {
	return func(c *repoConfig) {
		c.logger = logger
	}
}

// WithTempDir sets the parent directory of the temporary repository directory.
func WithTempDir(dir string) RepoOption {
	return func(c *repoConfig) {
		c.tempDir = dir
	}
}

func newRepoConfig(opts []RepoOption) *repoConfig {
	cfg := &repoConfig{logger: NoopLogger()}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// NewLocalRepo initializes an empty repository on the main branch in a new temporary directory.
func NewLocalRepo(opts ...RepoOption) (*LocalRepo, error) {
	cfg := newRepoConfig(opts)

	dir, err := os.MkdirTemp(cfg.tempDir, "gitserver-repo-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	cfg.logger.Logf("📦 [LOCAL] 📁 Creating new local repository at %s", dir)

	repo, err := git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName(DefaultBranch),
		},
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to initialize repository: %w", err)
	}

	return &LocalRepo{Path: dir, repo: repo, logger: cfg.logger}, nil
}

// CloneLocalRepo clones url into a new temporary directory.
func CloneLocalRepo(ctx context.Context, url string, auth transport.AuthMethod, opts ...RepoOption) (*LocalRepo, error) {
	cfg := newRepoConfig(opts)

	dir, err := os.MkdirTemp(cfg.tempDir, "gitserver-clone-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	cfg.logger.Logf("📦 [LOCAL] 📥 Cloning %s into %s", url, dir)

	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:  url,
		Auth: auth,
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to clone %s: %w", url, err)
	}

	return &LocalRepo{Path: dir, repo: repo, logger: cfg.logger}, nil
}

// Repository returns the underlying go-git repository.
func (r *LocalRepo) Repository() *git.Repository {
	return r.repo
}

// CreateFile writes a file relative to the repository root, creating parent directories.
func (r *LocalRepo) CreateFile(name, content string) error {
	path := filepath.Join(r.Path, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	r.logger.Logf("📦 [LOCAL] 📝 Created file %s", name)
	return nil
}

// ReadFile reads a file relative to the repository root.
func (r *LocalRepo) ReadFile(name string) (string, error) {
	content, err := os.ReadFile(filepath.Join(r.Path, filepath.FromSlash(name)))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(content), nil
}

// Commit stages all changes and commits them.
func (r *LocalRepo) Commit(message string) (plumbing.Hash, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to get worktree: %w", err)
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to stage changes: %w", err)
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to commit: %w", err)
	}

	r.logger.Logf("📦 [LOCAL] ✅ Committed %s: %s", hash.String()[:7], message)
	return hash, nil
}

// AddRemote registers a remote, e.g. "origin" pointing at a fixture's repository URL.
func (r *LocalRepo) AddRemote(name, url string) error {
	if _, err := r.repo.CreateRemote(&config.RemoteConfig{Name: name, URLs: []string{url}}); err != nil {
		return fmt.Errorf("failed to add remote %s: %w", name, err)
	}
	return nil
}

// Push pushes all branches to origin.
func (r *LocalRepo) Push(ctx context.Context, auth transport.AuthMethod) error {
	r.logger.Logf("📦 [LOCAL] 📤 Pushing to origin")
	if err := r.repo.PushContext(ctx, &git.PushOptions{Auth: auth}); err != nil {
		return fmt.Errorf("failed to push: %w", err)
	}
	return nil
}

// Cleanup removes the repository directory.
func (r *LocalRepo) Cleanup() error {
	r.logger.Logf("📦 [LOCAL] 🧹 Cleaning up local repository at %s", r.Path)
	return os.RemoveAll(r.Path)
}

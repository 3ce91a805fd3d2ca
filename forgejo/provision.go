package forgejo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"code.gitea.io/sdk/gitea"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	tcexec "github.com/testcontainers/testcontainers-go/exec"

	gitserver "github.com/sparsick/testcontainers-gitserver"
)

const (
	adminEmail   = "admin@example.com"
	sshKeyTitle  = "ssh-key"
	importRemote = "forgejo"
)

var importRefSpecs = []config.RefSpec{
	"refs/heads/*:refs/heads/*",
	"refs/tags/*:refs/tags/*",
}

// createAdminUser creates the init user with the forgejo CLI. The CLI refuses
// to run as root, so the command runs as git.
func createAdminUser(ctx context.Context, target gitserver.Target, cfg *Config) error {
	cfg.Logger.Logf("👤 Creating admin user '%s'...", cfg.InitUserName)

	_, err := gitserver.Exec(ctx, target, cfg.Logger, []string{
		"forgejo", "admin", "user", "create",
		"--username", cfg.InitUserName,
		"--password", cfg.InitUserPassword,
		"--email", adminEmail,
		"--admin",
		"--must-change-password=false",
	}, tcexec.WithUser("git"))
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	cfg.Logger.Logf("✅ Admin user '%s' created", cfg.InitUserName)
	return nil
}

// newAPIClient returns a REST client authenticated as user. The server version
// is not queried since Forgejo reports its own version scheme.
func newAPIClient(ctx context.Context, baseURL, user, password string) (*gitea.Client, error) {
	client, err := gitea.NewClient(baseURL,
		gitea.SetContext(ctx),
		gitea.SetBasicAuth(user, password),
		gitea.SetGiteaVersion(""),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}
	return client, nil
}

func createRepository(client *gitea.Client, cfg *Config) error {
	cfg.Logger.Logf("📦 Creating repository '%s' for user '%s'...", cfg.RepoName, cfg.InitUserName)

	_, _, err := client.CreateRepo(gitea.CreateRepoOption{
		Name:          cfg.RepoName,
		DefaultBranch: gitserver.DefaultBranch,
		AutoInit:      cfg.AutoInit && cfg.ExistingRepoPath == "",
	})
	if err != nil {
		return fmt.Errorf("failed to create repository %s: %w", cfg.RepoName, err)
	}

	cfg.Logger.Logf("✅ Repository '%s' created", cfg.RepoName)
	return nil
}

func registerPublicKey(client *gitea.Client, cfg *Config) error {
	cfg.Logger.Logf("🔑 Registering ssh key for user '%s'...", cfg.InitUserName)

	_, _, err := client.CreatePublicKey(gitea.CreateKeyOption{
		Title: sshKeyTitle,
		Key:   strings.TrimSpace(string(cfg.SSHIdentity.PublicKey)),
	})
	if err != nil {
		return fmt.Errorf("failed to register ssh key: %w", err)
	}
	return nil
}

// importRepository pushes all branches and tags of the local repository at
// path to url. The local repository configuration is left untouched.
func importRepository(ctx context.Context, logger gitserver.Logger, path, url string, auth transport.AuthMethod) error {
	logger.Logf("📤 Importing %s...", path)

	repo, err := git.PlainOpen(path)
	if err != nil {
		return fmt.Errorf("failed to open repository %s: %w", path, err)
	}

	remote := git.NewRemote(repo.Storer, &config.RemoteConfig{
		Name: importRemote,
		URLs: []string{url},
	})

	err = remote.PushContext(ctx, &git.PushOptions{
		RemoteName: importRemote,
		RefSpecs:   importRefSpecs,
		Auth:       auth,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to push %s: %w", path, err)
	}

	logger.Logf("✅ Imported %s", path)
	return nil
}

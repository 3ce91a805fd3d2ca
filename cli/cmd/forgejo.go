package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	gitserver "github.com/sparsick/testcontainers-gitserver"
	"github.com/sparsick/testcontainers-gitserver/cli/internal/auth"
	"github.com/sparsick/testcontainers-gitserver/cli/internal/output"
	"github.com/sparsick/testcontainers-gitserver/forgejo"
)

var (
	forgejoFlags    serverFlags
	forgejoKeyAuth  bool
	forgejoAutoInit bool
	forgejoExisting string
)

var forgejoCmd = &cobra.Command{
	Use:   "forgejo",
	Short: "Start a Forgejo server",
	Long: `Start a Forgejo server with an admin user owning one repository.

The admin user defaults to gitUser/init123 and can be set with --username and
--password or GITSERVER_USERNAME and GITSERVER_PASSWORD.

Examples:
  # Empty repository
  gitserver forgejo

  # Repository with an initial commit, reachable over SSH
  gitserver forgejo --auto-init --ssh-key-auth

  # Import an existing local repository
  gitserver forgejo --existing-repo ./my-repo --repo my-repo`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		authConfig := auth.FromEnvironment()
		authConfig.Merge(token, username, password)

		opts, err := forgejoOptions(authConfig)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		server, err := forgejo.NewServer(ctx, opts...)
		if err != nil {
			return err
		}

		info, err := forgejoInfo(server)
		if err != nil {
			_ = server.Cleanup()
			return err
		}

		return serve(ctx, server, info)
	},
}

func forgejoOptions(authConfig *auth.Config) ([]forgejo.ServerOption, error) {
	image, err := forgejoFlags.imageName()
	if err != nil {
		return nil, err
	}

	opts := []forgejo.ServerOption{
		forgejo.WithLogger(newLogger()),
		forgejo.WithImage(image),
		forgejo.WithTimeout(forgejoFlags.timeout),
		forgejo.WithGitRepo(forgejoFlags.repo),
	}
	if authConfig.Username != "" {
		opts = append(opts, forgejo.WithInitUserName(authConfig.Username))
	}
	if authConfig.Password != "" {
		opts = append(opts, forgejo.WithInitUserPassword(authConfig.Password))
	}
	if forgejoKeyAuth {
		opts = append(opts, forgejo.WithSSHKeyAuth())
	}
	if forgejoAutoInit {
		opts = append(opts, forgejo.WithAutoInit())
	}
	if forgejoExisting != "" {
		opts = append(opts, forgejo.WithCopyExistingGitRepo(forgejoExisting))
	}

	return opts, nil
}

func forgejoInfo(server *forgejo.Server) (*output.ServerInfo, error) {
	info := &output.ServerInfo{
		Kind:     "Forgejo",
		Image:    forgejoFlags.image,
		RepoURL:  server.HTTPURL(),
		APIURL:   server.APIURL(),
		Username: server.InitUserName(),
		Password: server.InitUserPassword(),
	}

	sshURL, err := server.SSHURL()
	switch {
	case errors.Is(err, gitserver.ErrSSHKeyAuthNotConfigured):
		return info, nil
	case err != nil:
		return nil, err
	}
	info.SSHURL = sshURL

	path, err := identityFile(server.Container, server.SSHClientIdentity())
	if err != nil {
		return nil, err
	}
	info.IdentityFile = path

	return info, nil
}

func init() {
	forgejoFlags.register(forgejoCmd, forgejo.DefaultImage, forgejo.DefaultTimeout)
	forgejoCmd.Flags().BoolVar(&forgejoKeyAuth, "ssh-key-auth", false, "Register a generated key for the admin user")
	forgejoCmd.Flags().BoolVar(&forgejoAutoInit, "auto-init", false, "Create the repository with an initial commit")
	forgejoCmd.Flags().StringVar(&forgejoExisting, "existing-repo", "", "Local repository to push into the created one")
	rootCmd.AddCommand(forgejoCmd)
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	gitserver "github.com/sparsick/testcontainers-gitserver"
	"github.com/sparsick/testcontainers-gitserver/cli/internal/auth"
	"github.com/sparsick/testcontainers-gitserver/cli/internal/output"
	"github.com/sparsick/testcontainers-gitserver/plain"
)

var (
	plainFlags    serverFlags
	plainKeyAuth  bool
	plainBranch   string
	plainExisting string
)

var plainCmd = &cobra.Command{
	Use:   "plain",
	Short: "Start an SSH git server",
	Long: `Start an SSH git server with one bare repository.

The user is always "git". Its password defaults to 12345 and can be set with
--password or GITSERVER_PASSWORD.

Examples:
  # Password authentication
  gitserver plain

  # Public key authentication, the private key is written to a temp file
  gitserver plain --ssh-key-auth

  # Serve an existing local repository
  gitserver plain --existing-repo ./my-repo --repo my-repo`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		authConfig := auth.FromEnvironment()
		authConfig.Merge(token, username, password)

		opts, err := plainOptions(authConfig)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		server, err := plain.NewServer(ctx, opts...)
		if err != nil {
			return err
		}

		info, err := plainInfo(server)
		if err != nil {
			_ = server.Cleanup()
			return err
		}

		return serve(ctx, server, info)
	},
}

func plainOptions(authConfig *auth.Config) ([]plain.ServerOption, error) {
	image, err := plainFlags.imageName()
	if err != nil {
		return nil, err
	}

	opts := []plain.ServerOption{
		plain.WithLogger(newLogger()),
		plain.WithImage(image),
		plain.WithTimeout(plainFlags.timeout),
		plain.WithGitRepo(plainFlags.repo),
		plain.WithDefaultBranch(plainBranch),
	}
	if authConfig.Password != "" {
		opts = append(opts, plain.WithGitPassword(authConfig.Password))
	}
	if plainKeyAuth {
		opts = append(opts, plain.WithSSHKeyAuth())
	}
	if plainExisting != "" {
		opts = append(opts, plain.WithCopyExistingGitRepo(plainExisting))
	}

	return opts, nil
}

func plainInfo(server *plain.Server) (*output.ServerInfo, error) {
	knownHosts, err := server.KnownHostsLine()
	if err != nil {
		return nil, err
	}

	info := &output.ServerInfo{
		Kind:       "SSH",
		Image:      plainFlags.image,
		RepoURL:    server.RepoURL(),
		Username:   "git",
		Password:   server.GitPassword(),
		KnownHosts: knownHosts,
	}

	if identity := server.SSHClientIdentity(); identity != nil {
		path, err := identityFile(server.Container, identity)
		if err != nil {
			return nil, err
		}
		info.IdentityFile = path
	}

	return info, nil
}

// identityFile writes the private key of identity and removes it with the container.
func identityFile(container *gitserver.Container, identity *gitserver.SSHIdentity) (string, error) {
	path, err := writeIdentityFile(identity)
	if err != nil {
		return "", err
	}
	container.AddCleanup(func() error {
		return os.Remove(path)
	})
	return path, nil
}

func init() {
	plainFlags.register(plainCmd, plain.DefaultImage, plain.DefaultTimeout)
	plainCmd.Flags().BoolVar(&plainKeyAuth, "ssh-key-auth", false, "Enable public key authentication with a generated key")
	plainCmd.Flags().StringVar(&plainBranch, "branch", gitserver.DefaultBranch, "Initial branch of the repository")
	plainCmd.Flags().StringVar(&plainExisting, "existing-repo", "", "Local repository to serve instead of an empty one")
	rootCmd.AddCommand(plainCmd)
}

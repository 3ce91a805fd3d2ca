package cmd

import (
	"github.com/spf13/cobra"

	gitserver "github.com/sparsick/testcontainers-gitserver"
	"github.com/sparsick/testcontainers-gitserver/cli/internal/auth"
	"github.com/sparsick/testcontainers-gitserver/cli/internal/output"
	"github.com/sparsick/testcontainers-gitserver/httpserver"
)

var (
	httpFlags  serverFlags
	httpBranch string
	httpProxy  gitserver.HTTPProxySetting
)

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Start a smart-HTTP git server",
	Long: `Start a smart-HTTP git server with one bare repository.

Basic authentication is enabled when both a username and a password are given.

Examples:
  # Anonymous read and write access
  gitserver http

  # Basic authentication
  gitserver http --username testuser --password testPassword

  # Build the image behind a proxy
  gitserver http --http-proxy http://proxy:3128 --no-proxy localhost`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		authConfig := auth.FromEnvironment()
		authConfig.Merge(token, username, password)

		opts, err := httpOptions(authConfig)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		server, err := httpserver.NewServer(ctx, opts...)
		if err != nil {
			return err
		}

		return serve(ctx, server, httpInfo(server))
	},
}

func httpOptions(authConfig *auth.Config) ([]httpserver.ServerOption, error) {
	image, err := httpFlags.imageName()
	if err != nil {
		return nil, err
	}

	opts := []httpserver.ServerOption{
		httpserver.WithLogger(newLogger()),
		httpserver.WithImage(image),
		httpserver.WithTimeout(httpFlags.timeout),
		httpserver.WithGitRepo(httpFlags.repo),
		httpserver.WithDefaultBranch(httpBranch),
	}
	if credentials := authConfig.BasicAuthCredentials(); credentials != nil {
		opts = append(opts, httpserver.WithBasicAuth(credentials))
	}
	if !httpProxy.IsEmpty() {
		opts = append(opts, httpserver.WithHTTPProxySetting(httpProxy))
	}

	return opts, nil
}

func httpInfo(server *httpserver.Server) *output.ServerInfo {
	info := &output.ServerInfo{
		Kind:    "HTTP",
		Image:   httpFlags.image,
		RepoURL: server.RepoURL(),
	}
	if credentials := server.BasicAuthCredentials(); credentials != nil {
		info.Username = credentials.Username()
		info.Password = credentials.Password()
	}
	return info
}

func init() {
	httpFlags.register(httpCmd, httpserver.DefaultImage, httpserver.DefaultTimeout)
	httpCmd.Flags().StringVar(&httpBranch, "branch", gitserver.DefaultBranch, "Initial branch of the repository")
	httpCmd.Flags().StringVar(&httpProxy.HTTPProxy, "http-proxy", "", "http_proxy for the image build and the container")
	httpCmd.Flags().StringVar(&httpProxy.HTTPSProxy, "https-proxy", "", "https_proxy for the image build and the container")
	httpCmd.Flags().StringVar(&httpProxy.NoProxy, "no-proxy", "", "no_proxy for the image build and the container")
	rootCmd.AddCommand(httpCmd)
}

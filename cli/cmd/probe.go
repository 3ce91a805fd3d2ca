package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sparsick/testcontainers-gitserver/cli/internal/auth"
	"github.com/sparsick/testcontainers-gitserver/cli/internal/client"
	"github.com/sparsick/testcontainers-gitserver/cli/internal/output"
)

var probeCmd = &cobra.Command{
	Use:   "probe <url>",
	Short: "Check access to a smart-HTTP repository",
	Long: `Check whether the configured credentials are accepted by a smart-HTTP
repository and whether the repository exists.

Examples:
  # Anonymous access
  gitserver probe http://localhost:32768/git/testRepo

  # Basic authentication
  gitserver probe http://localhost:32768/git/testRepo --username testuser --password testPassword

  # JSON output
  gitserver probe http://localhost:3000/gitUser/testRepo.git --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]

		// Setup authentication
		authConfig := auth.FromEnvironment()
		authConfig.Merge(token, username, password)

		c, err := client.New(url, authConfig)
		if err != nil {
			return err
		}

		result, err := probe(cmd.Context(), url, c)
		if err != nil {
			return err
		}

		return output.Get(getOutputFormat()).FormatProbeResult(result)
	},
}

// prober is the part of nanogit.Client used by probe.
type prober interface {
	IsAuthorized(ctx context.Context) (bool, error)
	RepoExists(ctx context.Context) (bool, error)
}

// probe reports authorization first. Existence is only checked once authorized
// since servers hide repositories from unauthorized clients.
func probe(ctx context.Context, url string, p prober) (*output.ProbeResult, error) {
	result := &output.ProbeResult{URL: url}

	authorized, err := p.IsAuthorized(ctx)
	if err != nil {
		return nil, err
	}
	result.Authorized = authorized
	if !authorized {
		return result, nil
	}

	exists, err := p.RepoExists(ctx)
	if err != nil {
		return nil, err
	}
	result.Exists = exists

	return result, nil
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	gitserver "github.com/sparsick/testcontainers-gitserver"
)

var (
	// Global flags
	token    string
	username string
	password string
	jsonOut  bool
	debug    bool
)

var rootCmd = &cobra.Command{
	Use:   "gitserver",
	Short: "Disposable git servers for integration tests",
	Long: `gitserver starts throwaway git servers in Docker containers and prints
how to reach them. The container is removed on Ctrl+C.

Credentials can be provided via flags or environment variables:
  - GITSERVER_USERNAME + GITSERVER_PASSWORD: Basic auth, Forgejo init user
  - GITSERVER_PASSWORD: SSH password of the plain server
  - GITSERVER_TOKEN: Token used by probe`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Authentication token")
	rootCmd.PersistentFlags().StringVar(&username, "username", "", "Username for basic auth")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "Password for basic auth")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log setup steps and container output to stderr")
}

// serverFlags are the flags shared by all server commands.
type serverFlags struct {
	image        string
	substitute   bool
	defaultImage gitserver.ImageName
	repo         string
	timeout      time.Duration
}

func (f *serverFlags) register(cmd *cobra.Command, defaultImage gitserver.ImageName, defaultTimeout time.Duration) {
	f.defaultImage = defaultImage
	cmd.Flags().StringVar(&f.image, "image", defaultImage.String(), "Docker image of the server")
	cmd.Flags().BoolVar(&f.substitute, "substitute", false, "Accept --image as a compatible substitute for "+defaultImage.Repository())
	cmd.Flags().StringVar(&f.repo, "repo", "testRepo", "Name of the repository to create")
	cmd.Flags().DurationVar(&f.timeout, "timeout", defaultTimeout, "Startup timeout")
}

// imageName returns the chosen image. An image of another repository is only
// declared a compatible substitute when --substitute is set; otherwise the
// fixture rejects it.
func (f *serverFlags) imageName() (gitserver.ImageName, error) {
	if f.image == "" || f.image == f.defaultImage.String() {
		return f.defaultImage, nil
	}

	name, err := gitserver.ParseImageName(f.image)
	if err != nil {
		return gitserver.ImageName{}, err
	}
	if f.substitute {
		name = name.AsCompatibleSubstituteFor(f.defaultImage.Repository())
	}
	return name, nil
}

// getOutputFormat returns "json" if json flag is set, otherwise "human"
func getOutputFormat() string {
	if jsonOut {
		return "json"
	}
	return "human"
}

func newLogger() *gitserver.StructuredLogger {
	if debug {
		return gitserver.NewStructuredLogger(gitserver.NewColoredLogger(os.Stderr))
	}
	return gitserver.NewStructuredLogger(gitserver.NoopLogger())
}

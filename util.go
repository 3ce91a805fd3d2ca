package gitserver

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// RandomRepoName returns a repository name for tests sharing one server,
// e.g. "repo-20261019-4f1c2a". It is a single path segment, so it is valid for
// every fixture.
func RandomRepoName() string {
	return fmt.Sprintf("repo-%s-%06x", time.Now().Format("20060102"), rand.IntN(1<<24))
}

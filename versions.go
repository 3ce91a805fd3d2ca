package gitserver

// GitServerRepository is the Docker repository of the SSH git server image.
const GitServerRepository = "rockstorm/git-server"

// GitServerVersion is a tag of the rockstorm/git-server image.
type GitServerVersion string

// Supported rockstorm/git-server tags, newest first.
const (
	GitServer249  GitServerVersion = "2.49"
	GitServer247  GitServerVersion = "2.47"
	GitServer245  GitServerVersion = "2.45"
	GitServer243  GitServerVersion = "2.43"
	GitServer240  GitServerVersion = "2.40"
	GitServer238  GitServerVersion = "2.38"
	GitServer236  GitServerVersion = "2.36"
	GitServer2342 GitServerVersion = "2.34.2"
	GitServer234  GitServerVersion = "2.34"

	LatestGitServerVersion = GitServer249
)

// LogReadinessMinVersion is the first git-server tag that logs
// "Container configuration completed" once it is ready.
const LogReadinessMinVersion = "2.38"

// GitServerVersions returns all supported git-server tags, newest first.
func GitServerVersions() []GitServerVersion {
	return []GitServerVersion{
		GitServer249,
		GitServer247,
		GitServer245,
		GitServer243,
		GitServer240,
		GitServer238,
		GitServer236,
		GitServer2342,
		GitServer234,
	}
}

// ImageName returns the full image name for this version.
func (v GitServerVersion) ImageName() ImageName {
	return MustParseImageName(GitServerRepository + ":" + string(v))
}

// SupportsPublicKeyAuth reports whether the image of this version accepts
// public key logins for the git user.
func (v GitServerVersion) SupportsPublicKeyAuth() bool {
	return v.ImageName().AtLeast(LogReadinessMinVersion)
}

func (v GitServerVersion) String() string {
	return string(v)
}

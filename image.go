package gitserver

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/distribution/reference"
)

// ImageName is a parsed Docker image reference of the form repository:tag.
type ImageName struct {
	repository string
	tag        string
	substitute string
}

// ParseImageName parses a Docker image reference such as "rockstorm/git-server:2.47".
// A missing tag defaults to "latest".
func ParseImageName(s string) (ImageName, error) {
	named, err := reference.ParseNormalizedNamed(s)
	if err != nil {
		return ImageName{}, fmt.Errorf("%w %q: %v", ErrInvalidImageName, s, err)
	}

	tagged, ok := reference.TagNameOnly(named).(reference.Tagged)
	if !ok {
		return ImageName{}, fmt.Errorf("%w %q: digest references are not supported", ErrInvalidImageName, s)
	}

	return ImageName{
		repository: reference.FamiliarName(named),
		tag:        tagged.Tag(),
	}, nil
}

// MustParseImageName is like ParseImageName but panics on error.
// Intended for package-level image constants.
func MustParseImageName(s string) ImageName {
	name, err := ParseImageName(s)
	if err != nil {
		panic(err)
	}
	return name
}

// Repository returns the familiar repository name, e.g. "rockstorm/git-server".
func (n ImageName) Repository() string {
	return n.repository
}

// Tag returns the image tag.
func (n ImageName) Tag() string {
	return n.tag
}

// String returns the reference in repository:tag form.
func (n ImageName) String() string {
	return n.repository + ":" + n.tag
}

// IsZero reports whether the image name is unset.
func (n ImageName) IsZero() bool {
	return n.repository == ""
}

// AsCompatibleSubstituteFor declares the image a drop-in replacement for the given repository,
// e.g. a mirror or a custom build of "rockstorm/git-server".
func (n ImageName) AsCompatibleSubstituteFor(repository string) ImageName {
	n.substitute = repository
	return n
}

// AssertCompatibleWith checks that the image is the expected repository or was declared
// a compatible substitute for it. Tags are not compared.
func (n ImageName) AssertCompatibleWith(expected ImageName) error {
	if n.repository == expected.repository || n.substitute == expected.repository {
		return nil
	}
	return NewIncompatibleImageError(n.String(), expected.repository)
}

// AtLeast reports whether the image tag is a version greater than or equal to min.
// Tags that are not versions, such as "latest", count as the newest version.
func (n ImageName) AtLeast(min string) bool {
	minVersion, err := semver.NewVersion(min)
	if err != nil {
		return false
	}

	version, err := semver.NewVersion(n.tag)
	if err != nil {
		return true
	}

	return !version.LessThan(minVersion)
}

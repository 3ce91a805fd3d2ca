package forgejo

import gitserver "github.com/sparsick/testcontainers-gitserver"

// Repository is the image repository Forgejo servers are started from.
const Repository = "forgejoclone/forgejo"

// Version is a tested tag of the Forgejo image.
type Version string

// Tested Forgejo versions, one per major release.
const (
	Forgejo14 Version = "14.0.2"
	Forgejo13 Version = "13.0.5"
	Forgejo12 Version = "12.0.4"
	Forgejo11 Version = "11.0.10"
	Forgejo10 Version = "10.0.3"
	Forgejo9  Version = "9.0.3"
	Forgejo8  Version = "8.0.3"
	Forgejo7  Version = "7.0.9"

	LatestVersion = Forgejo14
)

// Versions returns all tested versions, newest first.
func Versions() []Version {
	return []Version{
		Forgejo14,
		Forgejo13,
		Forgejo12,
		Forgejo11,
		Forgejo10,
		Forgejo9,
		Forgejo8,
		Forgejo7,
	}
}

// ImageName returns the image of this version.
func (v Version) ImageName() gitserver.ImageName {
	return gitserver.MustParseImageName(Repository + ":" + string(v))
}

func (v Version) String() string {
	return string(v)
}

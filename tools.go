//go:build tools

package gitserver

import (
	_ "github.com/maxbrunsfeld/counterfeiter/v6"
)

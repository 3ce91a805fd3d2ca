package gitserver

import "strings"

// BasicAuthCredentials is a username/password pair for HTTP basic authentication.
// It cannot be modified after construction.
type BasicAuthCredentials struct {
	username string
	password string
}

// NewBasicAuthCredentials creates credentials for HTTP basic authentication.
func NewBasicAuthCredentials(username, password string) *BasicAuthCredentials {
	return &BasicAuthCredentials{username: username, password: password}
}

// Username returns the user name.
func (c *BasicAuthCredentials) Username() string {
	return c.username
}

// Password returns the password.
func (c *BasicAuthCredentials) Password() string {
	return c.password
}

// HTTPProxySetting holds proxy settings forwarded into an image build and the
// running container. Empty fields are not forwarded.
type HTTPProxySetting struct {
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// IsEmpty reports whether no proxy is configured.
func (s HTTPProxySetting) IsEmpty() bool {
	return s.HTTPProxy == "" && s.HTTPSProxy == "" && s.NoProxy == ""
}

// Env returns the proxy variables in lower and upper case for every field that is set.
func (s HTTPProxySetting) Env() map[string]string {
	env := make(map[string]string)
	add := func(name, value string) {
		if value == "" {
			return
		}
		env[name] = value
		env[strings.ToUpper(name)] = value
	}
	add("http_proxy", s.HTTPProxy)
	add("https_proxy", s.HTTPSProxy)
	add("no_proxy", s.NoProxy)
	return env
}

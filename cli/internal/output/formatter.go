package output

import "os"

// ServerInfo describes a started fixture.
type ServerInfo struct {
	Kind     string `json:"kind"`
	Image    string `json:"image"`
	RepoURL  string `json:"repo_url"`
	SSHURL   string `json:"ssh_url,omitempty"`
	APIURL   string `json:"api_url,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	// IdentityFile is the path of the private key accepted by the server.
	IdentityFile string `json:"identity_file,omitempty"`
	KnownHosts   string `json:"known_hosts,omitempty"`
}

// ProbeResult is the outcome of probing a remote repository.
type ProbeResult struct {
	URL        string `json:"url"`
	Authorized bool   `json:"authorized"`
	Exists     bool   `json:"exists"`
}

// Formatter defines the interface for different output formats
type Formatter interface {
	// FormatServerInfo outputs the connection details of a running fixture
	FormatServerInfo(info *ServerInfo) error

	// FormatProbeResult outputs the result of a probe
	FormatProbeResult(result *ProbeResult) error
}

// Get returns the appropriate formatter based on format type
func Get(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter(os.Stdout)
	default:
		return NewHumanFormatter(os.Stdout)
	}
}

package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// HumanFormatter outputs in human-readable format with colors
type HumanFormatter struct {
	out     io.Writer
	success *color.Color
	info    *color.Color
	warn    *color.Color
	dim     *color.Color
}

// NewHumanFormatter creates a new human-readable formatter writing to out
func NewHumanFormatter(out io.Writer) *HumanFormatter {
	return &HumanFormatter{
		out:     out,
		success: color.New(color.FgGreen),
		info:    color.New(color.FgCyan),
		warn:    color.New(color.FgYellow),
		dim:     color.New(color.Faint),
	}
}

// FormatServerInfo outputs connection details in human-readable format
func (f *HumanFormatter) FormatServerInfo(info *ServerInfo) error {
	f.success.Fprintf(f.out, "✓ %s git server running (%s)\n", info.Kind, info.Image)
	f.field("Repository", info.RepoURL)
	f.field("SSH", info.SSHURL)
	f.field("API", info.APIURL)
	f.field("Username", info.Username)
	f.field("Password", info.Password)
	f.field("Identity", info.IdentityFile)
	f.field("known_hosts", info.KnownHosts)
	f.dim.Fprintln(f.out, "Press Ctrl+C to stop and remove the container.")
	return nil
}

// FormatProbeResult outputs a probe result in human-readable format
func (f *HumanFormatter) FormatProbeResult(result *ProbeResult) error {
	fmt.Fprintf(f.out, "%s\n", result.URL)
	f.check("authorized", result.Authorized)
	f.check("exists", result.Exists)
	return nil
}

func (f *HumanFormatter) field(name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(f.out, "  %s %s\n", f.info.Sprintf("%-12s", name+":"), value)
}

func (f *HumanFormatter) check(name string, ok bool) {
	if ok {
		f.success.Fprintf(f.out, "  ✓ %s\n", name)
		return
	}
	f.warn.Fprintf(f.out, "  ✗ %s\n", name)
}

package httpserver

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitserver "github.com/sparsick/testcontainers-gitserver"
)

const (
	nginxConfigPath = "http-config/nginx.conf"
	htpasswdPath    = "/etc/nginx/.htpasswd"
	fcgiSocket      = "/run/fcgi.sock"
)

//go:embed nginx.conf
var nginxConfig []byte

// gitPins holds base image tags whose git package must be upgraded to a fixed
// version that ships a working git-http-backend.
var gitPins = map[string]string{
	string(gitserver.GitServer236): "2.36.6-r0",
	string(gitserver.GitServer234): "2.34.8-r0",
}

// Dockerfile renders the Dockerfile of the HTTP server image.
func Dockerfile(image gitserver.ImageName, credentials *gitserver.BasicAuthCredentials) string {
	var b strings.Builder

	fmt.Fprintf(&b, "FROM %s\n", image)

	b.WriteString("RUN apk add --update nginx && ")
	if pin, ok := gitPins[image.Tag()]; ok {
		fmt.Fprintf(&b, "apk add --update git=%s && ", pin)
	}
	b.WriteString("apk add --update git git-daemon && ")
	b.WriteString("apk add --update fcgiwrap && ")
	b.WriteString("apk add --update spawn-fcgi && ")
	if credentials != nil {
		b.WriteString("apk add --update openssl && ")
	}
	b.WriteString("rm -rf /var/cache/apk/*\n")

	fmt.Fprintf(&b, "COPY ./%s /etc/nginx/nginx.conf\n", nginxConfigPath)

	if credentials != nil {
		htpasswd := fmt.Sprintf("echo %s:\"$(openssl passwd -apr1 %s)\" > %s",
			shellQuote(credentials.Username()), shellQuote(credentials.Password()), htpasswdPath)
		fmt.Fprintf(&b, "RUN %s\n", execForm("sh", "-c", htpasswd))
		fmt.Fprintf(&b, "RUN %s\n", execForm("sh", "-c", "sed -i -e 's/#auth_basic/auth_basic/g' /etc/nginx/nginx.conf"))
	}

	fmt.Fprintf(&b, "CMD spawn-fcgi -s %s -u git -g git -M 0666 -- /usr/bin/fcgiwrap -f && nginx -g \"daemon off;\"\n", fcgiSocket)

	return b.String()
}

// writeBuildContext writes the Dockerfile and the nginx configuration into a new
// temporary directory. The caller removes the directory.
func writeBuildContext(dockerfile string) (string, error) {
	dir, err := os.MkdirTemp("", "gitserver-http-*")
	if err != nil {
		return "", fmt.Errorf("failed to create build context: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte(dockerfile), 0o644); err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("failed to write Dockerfile: %w", err)
	}

	configPath := filepath.Join(dir, filepath.FromSlash(nginxConfigPath))
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("failed to create nginx config directory: %w", err)
	}
	if err := os.WriteFile(configPath, nginxConfig, 0o644); err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("failed to write nginx config: %w", err)
	}

	return dir, nil
}

// execForm renders a Dockerfile instruction argument in JSON exec form.
func execForm(args ...string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a []string cannot fail.
	_ = enc.Encode(args)
	return strings.TrimSpace(buf.String())
}

// shellQuote quotes s for POSIX sh.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFormatter_FormatServerInfo(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewJSONFormatter(&buf)

	err := formatter.FormatServerInfo(&ServerInfo{
		Kind:         "SSH",
		Image:        "rockstorm/git-server:2.49",
		RepoURL:      "ssh://git@localhost:32768/srv/git/testRepo.git",
		Password:     "12345",
		IdentityFile: "/tmp/gitserver-id-123",
		KnownHosts:   "[localhost]:32768 ecdsa-sha2-nistp256 AAAA",
	})
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

	assert.Equal(t, "SSH", result["kind"])
	assert.Equal(t, "ssh://git@localhost:32768/srv/git/testRepo.git", result["repo_url"])
	assert.Equal(t, "12345", result["password"])
	assert.Equal(t, "/tmp/gitserver-id-123", result["identity_file"])
	assert.Equal(t, "[localhost]:32768 ecdsa-sha2-nistp256 AAAA", result["known_hosts"])
	assert.NotContains(t, result, "ssh_url")
	assert.NotContains(t, result, "api_url")
	assert.NotContains(t, result, "username")
}

func TestJSONFormatter_FormatProbeResult(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewJSONFormatter(&buf)

	err := formatter.FormatProbeResult(&ProbeResult{
		URL:        "http://localhost:8080/git/testRepo",
		Authorized: false,
		Exists:     false,
	})
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

	assert.Equal(t, "http://localhost:8080/git/testRepo", result["url"])
	assert.Equal(t, false, result["authorized"])
	assert.Equal(t, false, result["exists"])
}

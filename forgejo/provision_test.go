package forgejo

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcexec "github.com/testcontainers/testcontainers-go/exec"

	gitserver "github.com/sparsick/testcontainers-gitserver"
	"github.com/sparsick/testcontainers-gitserver/mocks"
)

func TestCreateAdminUser(t *testing.T) {
	target := &mocks.FakeTarget{}
	target.ExecReturns(0, strings.NewReader("New user 'admin' has been successfully created!"), nil)

	cfg := configWith(WithInitUserName("admin"), WithInitUserPassword("s3cret"))
	require.NoError(t, createAdminUser(context.Background(), target, cfg))

	require.Equal(t, 1, target.ExecCallCount())
	_, cmd, opts := target.ExecArgsForCall(0)
	assert.Equal(t, []string{
		"forgejo", "admin", "user", "create",
		"--username", "admin",
		"--password", "s3cret",
		"--email", "admin@example.com",
		"--admin",
		"--must-change-password=false",
	}, cmd)

	processOptions := &tcexec.ProcessOptions{Reader: strings.NewReader("")}
	for _, opt := range opts {
		opt.Apply(processOptions)
	}
	assert.Equal(t, "git", processOptions.ExecConfig.User)
}

func TestCreateAdminUserFailure(t *testing.T) {
	target := &mocks.FakeTarget{}
	target.ExecReturns(1, strings.NewReader("user already exists"), nil)

	err := createAdminUser(context.Background(), target, configWith())
	require.ErrorIs(t, err, gitserver.ErrCommandFailed)
	assert.Contains(t, err.Error(), "user already exists")
}

// fakeAPI records the bodies posted to the REST endpoints used during setup.
type fakeAPI struct {
	mu       sync.Mutex
	requests map[string]map[string]any
	user     string
	password string
	status   int
}

func newFakeAPI(t *testing.T, status int) (*fakeAPI, *httptest.Server) {
	t.Helper()

	api := &fakeAPI{requests: make(map[string]map[string]any), status: status}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var payload map[string]any
		_ = json.Unmarshal(body, &payload)

		api.mu.Lock()
		api.requests[r.Method+" "+r.URL.Path] = payload
		api.user, api.password, _ = r.BasicAuth()
		api.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(api.status)
		if api.status >= http.StatusBadRequest {
			_, _ = w.Write([]byte(`{"message":"repository already exists"}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	return api, server
}

func TestCreateRepository(t *testing.T) {
	tests := []struct {
		name     string
		opts     []ServerOption
		autoInit bool
	}{
		{name: "empty repository", autoInit: false},
		{name: "auto init", opts: []ServerOption{WithAutoInit()}, autoInit: true},
		{name: "auto init ignored on import", opts: []ServerOption{WithAutoInit(), WithCopyExistingGitRepo("/tmp/repo")}, autoInit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, server := newFakeAPI(t, http.StatusCreated)
			cfg := configWith(append(tt.opts, WithGitRepo("myRepo"))...)

			client, err := newAPIClient(context.Background(), server.URL, cfg.InitUserName, cfg.InitUserPassword)
			require.NoError(t, err)
			require.NoError(t, createRepository(client, cfg))

			payload, ok := api.requests["POST /api/v1/user/repos"]
			require.True(t, ok, "repository was not created")
			assert.Equal(t, "myRepo", payload["name"])
			assert.Equal(t, "main", payload["default_branch"])
			assert.Equal(t, tt.autoInit, payload["auto_init"])
			assert.Equal(t, "gitUser", api.user)
			assert.Equal(t, "init123", api.password)
		})
	}
}

func TestCreateRepositoryFailure(t *testing.T) {
	_, server := newFakeAPI(t, http.StatusConflict)
	cfg := configWith()

	client, err := newAPIClient(context.Background(), server.URL, cfg.InitUserName, cfg.InitUserPassword)
	require.NoError(t, err)
	require.Error(t, createRepository(client, cfg))
}

func TestRegisterPublicKey(t *testing.T) {
	api, server := newFakeAPI(t, http.StatusCreated)
	cfg := configWith(WithSSHKeyAuth())
	require.NoError(t, cfg.prepare())

	client, err := newAPIClient(context.Background(), server.URL, cfg.InitUserName, cfg.InitUserPassword)
	require.NoError(t, err)
	require.NoError(t, registerPublicKey(client, cfg))

	payload, ok := api.requests["POST /api/v1/user/keys"]
	require.True(t, ok, "key was not registered")
	assert.Equal(t, "ssh-key", payload["title"])
	assert.Equal(t, strings.TrimSpace(string(cfg.SSHIdentity.PublicKey)), payload["key"])
}

func TestImportRepository(t *testing.T) {
	ctx := context.Background()

	local, err := gitserver.NewLocalRepo(gitserver.WithTempDir(t.TempDir()))
	require.NoError(t, err)
	require.NoError(t, local.CreateFile("testFile", "existing content"))
	head, err := local.Commit("init")
	require.NoError(t, err)
	_, err = local.Repository().CreateTag("v1.0.0", head, nil)
	require.NoError(t, err)

	remotePath := t.TempDir()
	remote, err := git.PlainInitWithOptions(remotePath, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName(gitserver.DefaultBranch)},
		Bare:        true,
	})
	require.NoError(t, err)

	require.NoError(t, importRepository(ctx, gitserver.NoopLogger(), local.Path, remotePath, nil))

	branch, err := remote.Reference(plumbing.NewBranchReferenceName("main"), true)
	require.NoError(t, err)
	assert.Equal(t, head, branch.Hash())

	tag, err := remote.Reference(plumbing.NewTagReferenceName("v1.0.0"), true)
	require.NoError(t, err)
	assert.Equal(t, head, tag.Hash())

	remotes, err := local.Repository().Remotes()
	require.NoError(t, err)
	assert.Empty(t, remotes, "import must not add remotes to the local repository")

	// A second import has nothing to push.
	require.NoError(t, importRepository(ctx, gitserver.NoopLogger(), local.Path, remotePath, nil))
}

func TestImportRepositoryMissing(t *testing.T) {
	err := importRepository(context.Background(), gitserver.NoopLogger(), t.TempDir(), "/nowhere", nil)
	require.Error(t, err)
}

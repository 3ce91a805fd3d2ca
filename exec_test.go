package gitserver_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcexec "github.com/testcontainers/testcontainers-go/exec"

	gitserver "github.com/sparsick/testcontainers-gitserver"
	"github.com/sparsick/testcontainers-gitserver/mocks"
)

func TestExec(t *testing.T) {
	ctx := context.Background()

	t.Run("returns output", func(t *testing.T) {
		target := &mocks.FakeTarget{}
		target.ExecReturns(0, strings.NewReader("ecdsa-sha2-nistp256 AAAA root@host\n"), nil)

		out, err := gitserver.Exec(ctx, target, gitserver.NoopLogger(), []string{"cat", "/etc/ssh/ssh_host_ecdsa_key.pub"})
		require.NoError(t, err)
		assert.Equal(t, "ecdsa-sha2-nistp256 AAAA root@host\n", out)

		require.Equal(t, 1, target.ExecCallCount())
		_, cmd, opts := target.ExecArgsForCall(0)
		assert.Equal(t, []string{"cat", "/etc/ssh/ssh_host_ecdsa_key.pub"}, cmd)
		assert.Len(t, opts, 1, "output is always multiplexed")
	})

	t.Run("non-zero exit code", func(t *testing.T) {
		target := &mocks.FakeTarget{}
		target.ExecReturns(128, strings.NewReader("fatal: not a git repository"), nil)

		_, err := gitserver.Exec(ctx, target, gitserver.NoopLogger(), []string{"git", "init", "--bare"})
		require.ErrorIs(t, err, gitserver.ErrCommandFailed)

		var execErr *gitserver.ExecError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, 128, execErr.ExitCode)
		assert.Equal(t, []string{"git", "init", "--bare"}, execErr.Cmd)
		assert.Contains(t, execErr.Error(), "fatal: not a git repository")
	})

	t.Run("exec error", func(t *testing.T) {
		target := &mocks.FakeTarget{}
		target.ExecReturns(0, nil, errors.New("container gone"))

		_, err := gitserver.Exec(ctx, target, gitserver.NoopLogger(), []string{"true"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, gitserver.ErrCommandFailed)
		assert.Contains(t, err.Error(), "container gone")
	})
}

func TestExecAll(t *testing.T) {
	ctx := context.Background()

	target := &mocks.FakeTarget{}
	target.ExecStub = func(_ context.Context, cmd []string, _ ...tcexec.ProcessOption) (int, io.Reader, error) {
		if cmd[0] == "false" {
			return 1, strings.NewReader(""), nil
		}
		return 0, strings.NewReader(""), nil
	}

	err := gitserver.ExecAll(ctx, target, gitserver.NoopLogger(), [][]string{
		{"mkdir", "-p", "/srv/git"},
		{"false"},
		{"chown", "-R", "git:git", "/srv"},
	})
	require.ErrorIs(t, err, gitserver.ErrCommandFailed)
	assert.Equal(t, 2, target.ExecCallCount(), "stops at first failure")
}

func TestExecMasksPasswords(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	target := &mocks.FakeTarget{}
	target.ExecReturns(1, strings.NewReader("user already exists"), nil)

	_, err := gitserver.Exec(ctx, target, gitserver.NewWriterLogger(&buf), []string{
		"forgejo", "admin", "user", "create", "--username", "alice", "--password", "s3cret", "--admin",
	})
	require.ErrorIs(t, err, gitserver.ErrCommandFailed)

	assert.Contains(t, buf.String(), "--username alice --password **** --admin")
	assert.NotContains(t, buf.String(), "s3cret")
	assert.NotContains(t, err.Error(), "s3cret")

	_, cmd, _ := target.ExecArgsForCall(0)
	assert.Contains(t, cmd, "s3cret", "the container still receives the real value")

	buf.Reset()
	target.ExecReturns(0, strings.NewReader(""), nil)
	_, err = gitserver.Exec(ctx, target, gitserver.NewWriterLogger(&buf), []string{"tool", "--password=s3cret"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "--password=****")
	assert.NotContains(t, buf.String(), "s3cret")
}

package gitserver

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"golang.org/x/crypto/ssh"
)

// PasswordAuth returns go-git SSH password authentication for user.
// A nil hostKey disables host key verification.
func PasswordAuth(user, password string, hostKey *SSHHostKey) (transport.AuthMethod, error) {
	callback, algorithms, err := hostKeyVerification(hostKey)
	if err != nil {
		return nil, err
	}

	return &pinnedAuth{
		AuthMethod: &gitssh.Password{
			User:     user,
			Password: password,
			HostKeyCallbackHelper: gitssh.HostKeyCallbackHelper{
				HostKeyCallback: callback,
			},
		},
		algorithms: algorithms,
	}, nil
}

// AuthMethod returns go-git SSH public key authentication for user.
// A nil hostKey disables host key verification.
func (i *SSHIdentity) AuthMethod(user string, hostKey *SSHHostKey) (transport.AuthMethod, error) {
	auth, err := gitssh.NewPublicKeys(user, i.PrivateKey, string(i.Passphrase))
	if err != nil {
		return nil, fmt.Errorf("failed to create public key auth: %w", err)
	}

	callback, algorithms, err := hostKeyVerification(hostKey)
	if err != nil {
		return nil, err
	}
	auth.HostKeyCallback = callback

	return &pinnedAuth{AuthMethod: auth, algorithms: algorithms}, nil
}

// AuthMethod returns go-git HTTP basic authentication.
func (c *BasicAuthCredentials) AuthMethod() transport.AuthMethod {
	return &githttp.BasicAuth{
		Username: c.username,
		Password: c.password,
	}
}

// pinnedAuth fixes the host key algorithms offered to the server. Without them
// go-git derives the algorithms from ~/.ssh/known_hosts and fails if it is missing.
type pinnedAuth struct {
	gitssh.AuthMethod
	algorithms []string
}

func (a *pinnedAuth) ClientConfig() (*ssh.ClientConfig, error) {
	cfg, err := a.AuthMethod.ClientConfig()
	if err != nil {
		return nil, err
	}
	cfg.HostKeyAlgorithms = a.algorithms
	return cfg, nil
}

func hostKeyVerification(hostKey *SSHHostKey) (ssh.HostKeyCallback, []string, error) {
	if hostKey == nil {
		return ssh.InsecureIgnoreHostKey(), ssh.SupportedAlgorithms().HostKeys, nil //nolint:gosec
	}

	pub, err := hostKey.PublicKey()
	if err != nil {
		return nil, nil, err
	}

	return ssh.FixedHostKey(pub), hostKeyAlgorithms(pub.Type()), nil
}

// hostKeyAlgorithms lists the signature algorithms usable with a key type.
func hostKeyAlgorithms(keyType string) []string {
	if keyType == ssh.KeyAlgoRSA {
		return []string{ssh.KeyAlgoRSASHA512, ssh.KeyAlgoRSASHA256, ssh.KeyAlgoRSA}
	}
	return []string{keyType}
}

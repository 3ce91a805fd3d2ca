package gitserver

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"net"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// SSHIdentity is the key material of an SSH client.
type SSHIdentity struct {
	// PrivateKey is the PEM encoded (OpenSSH format) private key.
	PrivateKey []byte
	// PublicKey is the public key in authorized_keys format.
	PublicKey []byte
	// Passphrase protects PrivateKey. Empty for unencrypted keys.
	Passphrase []byte
}

// NewSSHIdentity wraps existing key material.
func NewSSHIdentity(privateKey, publicKey, passphrase []byte) *SSHIdentity {
	return &SSHIdentity{
		PrivateKey: privateKey,
		PublicKey:  publicKey,
		Passphrase: passphrase,
	}
}

// GenerateSSHIdentity creates a fresh, unencrypted ed25519 identity.
func GenerateSSHIdentity() (*SSHIdentity, error) {
	return GenerateSSHIdentityWithPassphrase(nil)
}

// GenerateSSHIdentityWithPassphrase creates a fresh ed25519 identity whose private key
// is encrypted with passphrase. An empty passphrase leaves the key unencrypted.
func GenerateSSHIdentityWithPassphrase(passphrase []byte) (*SSHIdentity, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ed25519 key: %w", err)
	}

	var block *pem.Block
	if len(passphrase) > 0 {
		block, err = ssh.MarshalPrivateKeyWithPassphrase(priv, "gitserver", passphrase)
	} else {
		block, err = ssh.MarshalPrivateKey(priv, "gitserver")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal private key: %w", err)
	}

	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("failed to convert public key: %w", err)
	}

	return &SSHIdentity{
		PrivateKey: pem.EncodeToMemory(block),
		PublicKey:  ssh.MarshalAuthorizedKey(sshPub),
		Passphrase: passphrase,
	}, nil
}

// Signer parses the private key, decrypting it with the passphrase if one is set.
func (i *SSHIdentity) Signer() (ssh.Signer, error) {
	var (
		signer ssh.Signer
		err    error
	)
	if len(i.Passphrase) > 0 {
		signer, err = ssh.ParsePrivateKeyWithPassphrase(i.PrivateKey, i.Passphrase)
	} else {
		signer, err = ssh.ParsePrivateKey(i.PrivateKey)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return signer, nil
}

// AuthorizedKey returns the public key as a single authorized_keys line
// terminated by a newline.
func (i *SSHIdentity) AuthorizedKey() []byte {
	line := bytes.TrimSpace(i.PublicKey)
	return append(line, '\n')
}

// SSHHostKey is the public host key of an SSH server, used to pin the server identity.
type SSHHostKey struct {
	Hostname string
	// Key is the public key in SSH wire format.
	Key []byte
}

// ParseSSHHostKey parses a public key line as found in /etc/ssh/ssh_host_*_key.pub.
func ParseSSHHostKey(hostname string, line []byte) (*SSHHostKey, error) {
	pub, _, _, _, err := ssh.ParseAuthorizedKey(bytes.TrimSpace(line))
	if err != nil {
		return nil, fmt.Errorf("failed to parse host key of %s: %w", hostname, err)
	}

	return &SSHHostKey{
		Hostname: hostname,
		Key:      pub.Marshal(),
	}, nil
}

// PublicKey parses the wire format key.
func (k *SSHHostKey) PublicKey() (ssh.PublicKey, error) {
	pub, err := ssh.ParsePublicKey(k.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to parse host key of %s: %w", k.Hostname, err)
	}
	return pub, nil
}

// HostKeyCallback returns a callback accepting only this host key.
func (k *SSHHostKey) HostKeyCallback() (ssh.HostKeyCallback, error) {
	pub, err := k.PublicKey()
	if err != nil {
		return nil, err
	}
	return ssh.FixedHostKey(pub), nil
}

// KnownHostsLine renders a known_hosts entry for the host on the given port.
func (k *SSHHostKey) KnownHostsLine(port string) (string, error) {
	pub, err := k.PublicKey()
	if err != nil {
		return "", err
	}
	address := knownhosts.Normalize(net.JoinHostPort(k.Hostname, port))
	return knownhosts.Line([]string{address}, pub), nil
}

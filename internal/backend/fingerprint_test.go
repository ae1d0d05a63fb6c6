package backend

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

func TestFingerprint(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	sshPub, err := ssh.NewPublicKey(pub)
	require.NoError(t, err)

	line := string(ssh.MarshalAuthorizedKey(sshPub))

	got, err := Fingerprint(line)
	require.NoError(t, err)
	assert.Equal(t, ssh.FingerprintSHA256(sshPub), got)
	assert.Contains(t, got, "SHA256:")
}

func TestFingerprint_Invalid(t *testing.T) {
	_, err := Fingerprint("")
	assert.Error(t, err)

	_, err = Fingerprint("ssh-ed25519 not-base64!!")
	assert.Error(t, err)
}

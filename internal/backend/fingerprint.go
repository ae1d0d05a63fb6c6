package backend

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/ssh"
)

// Fingerprint returns the SHA256 fingerprint of an authorized_keys line,
// e.g. "SHA256:nThbg6kXUpJWGl7E1IGOCspRomTxdCARLviKw6E5SY8".
func Fingerprint(authorizedKey string) (string, error) {
	authorizedKey = strings.TrimSpace(authorizedKey)
	if authorizedKey == "" {
		return "", fmt.Errorf("empty public key")
	}

	pub, _, _, _, err := ssh.ParseAuthorizedKey([]byte(authorizedKey))
	if err != nil {
		return "", fmt.Errorf("parse public key: %w", err)
	}
	return ssh.FingerprintSHA256(pub), nil
}

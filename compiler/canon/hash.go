package canon

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint computes the SHA-256 digest of a program's canonical
// encoding. Two programs with the same canonical tree have the same
// fingerprint regardless of layout, comments other than the description,
// or redundant parentheses.
func Fingerprint(p *Program) ([32]byte, error) {
	data, err := Serialize(p)
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(data), nil
}

// FingerprintHex is Fingerprint rendered as lowercase hex.
func FingerprintHex(p *Program) (string, error) {
	sum, err := Fingerprint(p)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sum[:]), nil
}

package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for new password hashes
const BcryptCost = 12

// HashPassword returns a salted bcrypt digest of password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword reports whether password matches digest. Besides bcrypt it
// accepts the unsalted SHA-256 hex digests written by the earlier desktop
// release, so existing accounts keep working until they are upgraded.
func CheckPassword(digest, password string) bool {
	if IsLegacyDigest(digest) {
		sum := sha256.Sum256([]byte(password))
		return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(digest)) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// IsLegacyDigest reports whether digest is a bare SHA-256 hex string.
func IsLegacyDigest(digest string) bool {
	if len(digest) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(digest)
	return err == nil
}

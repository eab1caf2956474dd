package password

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2-SHA256 parameters. 120k iterations keeps offline brute force
// expensive while staying fast enough for interactive login.
const (
	iterations = 120000
	keyLength  = 32
	saltBytes  = 16
)

// Hash derives a salted hash for the password with a fresh random salt.
// Both the salt and the hash are hex-encoded.
func Hash(password string) (salt string, hash string, err error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	salt = hex.EncodeToString(raw)
	return salt, hashWith(password, salt), nil
}

// Verify checks the password against a stored salt and hash in constant time.
func Verify(password, salt, hash string) bool {
	return hmac.Equal([]byte(hashWith(password, salt)), []byte(hash))
}

func hashWith(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLength, sha256.New)
	return hex.EncodeToString(key)
}

package credential

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// SaltSize là số byte random cho mỗi salt
const SaltSize = 16

// GenerateSalt returns SaltSize random bytes encoded as standard base64.
// A fresh salt is generated per account and stored next to the digest.
func GenerateSalt() (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// HashPassword hashes salt bytes followed by password bytes with SHA-512
// and renders the digest as lowercase hex.
func HashPassword(password, salt string) (string, error) {
	saltBytes, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("decode salt: %w", err)
	}

	salted := make([]byte, 0, len(saltBytes)+len(password))
	salted = append(salted, saltBytes...)
	salted = append(salted, password...)

	sum := sha512.Sum512(salted)
	return hex.EncodeToString(sum[:]), nil
}

// VerifyPassword recomputes the digest of candidate with the stored salt and
// compares it case-insensitively in constant time.
func VerifyPassword(candidate, storedSalt, storedDigest string) bool {
	digest, err := HashPassword(candidate, storedSalt)
	if err != nil {
		return false
	}
	stored := strings.ToLower(storedDigest)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(stored)) == 1
}

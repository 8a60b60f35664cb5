package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	hashVersion    = "v1"
	hashIters      = 120000
	hashKeyLen     = 32
	minPasswordLen = 8
)

// HashPassword derives a PBKDF2-SHA256 digest and encodes it together with
// its salt and iteration count.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLen {
		return "", fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	digest := pbkdf2.Key([]byte(password), salt, hashIters, hashKeyLen, sha256.New)
	return fmt.Sprintf("%s$%d$%s$%s",
		hashVersion,
		hashIters,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	), nil
}

// VerifyPassword checks a candidate password against an encoded hash in
// constant time. Any malformed input verifies as false, never as an error.
func VerifyPassword(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 || parts[0] != hashVersion {
		return false
	}

	iters, err := strconv.Atoi(parts[1])
	if err != nil || iters < 10000 {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil || len(salt) == 0 {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil || len(expected) != hashKeyLen {
		return false
	}

	actual := pbkdf2.Key([]byte(password), salt, iters, hashKeyLen, sha256.New)
	return subtle.ConstantTimeCompare(actual, expected) == 1
}

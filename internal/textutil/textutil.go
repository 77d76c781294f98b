// Package textutil provides the small text and credential helpers shared by
// the identity and post layers: salt generation, credential hashing,
// whitespace squeezing, teasers, and relative timestamps.
package textutil

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

const saltAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSalt returns a random string of length alphanumeric characters.
// The source is crypto/rand so distinct calls collide only with negligible
// probability.
func GenerateSalt(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("salt length must be a positive integer, got %d", length)
	}

	var b strings.Builder
	b.Grow(length)
	max := big.NewInt(int64(len(saltAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("reading random source: %w", err)
		}
		b.WriteByte(saltAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// HashCredential derives the stored credential hash from a salt and password:
// hex-encoded HMAC-SHA256 with the salt as key and the password as message.
// The result is deterministic, which the session cookie scheme depends on.
func HashCredential(salt, password string) (string, error) {
	if salt == "" || password == "" {
		return "", fmt.Errorf("salt and password cannot be empty")
	}
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(password))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Squeeze collapses each run of repeated characters drawn from charset into a
// single occurrence. Characters outside charset pass through unchanged and
// never deduplicate against their neighbors.
func Squeeze(text, charset string) string {
	if text == "" {
		return ""
	}
	if charset == "" {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	var prev rune = -1
	for _, r := range text {
		if !strings.ContainsRune(charset, r) || r != prev {
			b.WriteRune(r)
		}
		prev = r
	}
	return b.String()
}

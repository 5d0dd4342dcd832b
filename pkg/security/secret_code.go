package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// SecretCodeLength is the length of the printed customer codes.
const SecretCodeLength = 8

var secretCodeCharset = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// GenerateSecretCode produces a random alphanumeric code for a customer QR card.
func GenerateSecretCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive")
	}

	result := make([]rune, length)
	for i := 0; i < length; i++ {
		idx, err := randInt(len(secretCodeCharset))
		if err != nil {
			return "", err
		}
		result[i] = secretCodeCharset[idx]
	}
	return string(result), nil
}

// IsSecretCode reports whether value looks like a code produced by GenerateSecretCode.
func IsSecretCode(value string) bool {
	if len(value) == 0 || len(value) > 64 {
		return false
	}
	for _, r := range value {
		if !isCharsetRune(r) {
			return false
		}
	}
	return true
}

func isCharsetRune(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

func randInt(max int) (int, error) {
	if max <= 0 {
		return 0, fmt.Errorf("invalid max %d", max)
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}

package security

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math/big"
)

var (
	errInvalidLength = errors.New("length must be positive")
	errEmptyAlphabet = errors.New("alphabet must not be empty")
)

// HexToken renders byteLength bytes from crypto/rand as lowercase hex, so the
// result is twice as long as the requested entropy.
func HexToken(byteLength int) (string, error) {
	if byteLength <= 0 {
		return "", errInvalidLength
	}

	raw := make([]byte, byteLength)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// RandomString draws each character uniformly from alphabet.
func RandomString(length int, alphabet string) (string, error) {
	if length <= 0 {
		return "", errInvalidLength
	}
	if alphabet == "" {
		return "", errEmptyAlphabet
	}

	size := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for index := range out {
		position, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}
		out[index] = alphabet[position.Int64()]
	}
	return string(out), nil
}

// Package tokens generates the random credentials used by the OTP flows:
// numeric one-time codes and opaque temp tokens.
package tokens

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// CodeLength is the number of digits in a one-time passcode.
	CodeLength = 6

	// TempTokenLength is the length of the opaque token minted on
	// successful OTP verification.
	TempTokenLength = 12

	digits        = "0123456789"
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// GenerateCode returns a random numeric code of CodeLength digits.
func GenerateCode() (string, error) {
	return randomString(digits, CodeLength)
}

// GenerateTempToken returns a random alphanumeric token of TempTokenLength.
func GenerateTempToken() (string, error) {
	return randomString(tokenAlphabet, TempTokenLength)
}

func randomString(alphabet string, n int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("tokens: read random: %w", err)
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b), nil
}

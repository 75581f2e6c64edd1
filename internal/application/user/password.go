package user

import (
	"crypto/rand"
	"math/big"
)

const (
	passwordLength = 12
	upperChars     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars     = "abcdefghijklmnopqrstuvwxyz"
	digitChars     = "0123456789"
	symbolChars    = "!@#$%^&*"
	passwordChars  = lowerChars + upperChars + digitChars + symbolChars
)

// GeneratePassword builds a 12-character credential with at least one
// uppercase letter, one lowercase letter, one digit, and one symbol, the
// rest drawn from the combined alphabet, then shuffles the result. The
// directory hashes it immediately and it is never shown to the caller, so
// this is not meant to be a hardened secret.
func GeneratePassword() string {
	out := make([]byte, 0, passwordLength)
	out = append(out, upperChars[randomIndex(len(upperChars))])
	out = append(out, lowerChars[randomIndex(len(lowerChars))])
	out = append(out, digitChars[randomIndex(len(digitChars))])
	out = append(out, symbolChars[randomIndex(len(symbolChars))])

	for len(out) < passwordLength {
		out = append(out, passwordChars[randomIndex(len(passwordChars))])
	}

	for i := len(out) - 1; i > 0; i-- {
		j := randomIndex(i + 1)
		out[i], out[j] = out[j], out[i]
	}

	return string(out)
}

func randomIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the platform source is broken.
		panic(err)
	}
	return int(v.Int64())
}

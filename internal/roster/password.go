package roster

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Character classes for generated credentials. Ambiguous glyphs (0/O, 1/l/I)
// are excluded because the password is read off a printed slip exactly once.
const (
	passwordLength = 10
	lowerChars     = "abcdefghijkmnpqrstuvwxyz"
	upperChars     = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	digitChars     = "23456789"
	passwordChars  = lowerChars + upperChars + digitChars
)

// GeneratePassword returns a one-time credential of passwordLength characters
// containing at least one lower-case letter, one upper-case letter and one
// digit.
func GeneratePassword() (string, error) {
	buf := make([]byte, passwordLength)

	// Guarantee one of each class, fill the rest from the full set.
	classes := []string{lowerChars, upperChars, digitChars}
	for i := range buf {
		set := passwordChars
		if i < len(classes) {
			set = classes[i]
		}
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
		if err != nil {
			return "", fmt.Errorf("generating password: %w", err)
		}
		buf[i] = set[n.Int64()]
	}

	// Shuffle so the guaranteed classes are not always in the same slots.
	for i := len(buf) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", fmt.Errorf("generating password: %w", err)
		}
		j := n.Int64()
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf), nil
}

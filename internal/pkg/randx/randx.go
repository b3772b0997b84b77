/*
Package randx provides functions for generating cryptographically secure random identifiers.

It is primarily used for fixed-length Base62 appointment confirmation codes and
UUID-based photo object keys.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the total number of characters in the Base62 character set (62).
	Base62Len = int64(len(Base62Chars))

	// ConfirmationCodeLength is the fixed length of appointment confirmation codes.
	ConfirmationCodeLength = 8
)

// base62String generates a cryptographically random Base62 string of the given length.
func base62String(length int) (string, error) {
	result := make([]byte, length)

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %v", err)
		}

		result[i] = Base62Chars[num.Int64()]
	}

	return string(result), nil
}

// ConfirmationCode generates a Base62 appointment confirmation code of length
// ConfirmationCodeLength.
func ConfirmationCode() (string, error) {
	return base62String(ConfirmationCodeLength)
}

// IsValidConfirmationCode checks length and character set of a confirmation code.
func IsValidConfirmationCode(code string) bool {
	if len(code) != ConfirmationCodeLength {
		return false
	}

	for _, char := range code {
		if !strings.ContainsRune(Base62Chars, char) {
			return false
		}
	}

	return true
}

// PhotoKey generates a UUID v4 string used as the object key stem for an
// uploaded pet photo.
func PhotoKey() string {
	return uuid.New().String()
}

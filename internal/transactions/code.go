package transactions

import (
	"crypto/rand"
	"fmt"
	"time"
)

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateCode builds a human-readable transaction code like
// TRX-20250601-8KQ2ZN. The random suffix avoids ambiguous characters
// (0/O, 1/I/L).
func GenerateCode(now time.Time) (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate transaction code: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return fmt.Sprintf("TRX-%s-%s", now.Format("20060102"), string(buf)), nil
}

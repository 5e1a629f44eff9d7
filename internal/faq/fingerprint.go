// File path: internal/faq/fingerprint.go
package faq

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// TextFingerprint derives a stable hash for the base text of a step. The
// enhancement cache keys on this value rather than on the step index, so an
// index reused across edits can never surface a stale enhancement.
func TextFingerprint(question, userText string) string {
	hasher := sha256.New()
	for _, part := range []string{strings.TrimSpace(question), strings.TrimSpace(userText)} {
		if part == "" {
			continue
		}
		_, _ = hasher.Write([]byte(part))
		_, _ = hasher.Write([]byte{0})
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

package pathguard

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ChooseNonCollidingName returns desired unchanged if the exists check
// reports it free. Otherwise it probes "<base> (2).<ext>" through
// "<base> (maxAttempts).<ext>", and if every numbered candidate collides it
// appends a random suffix and retries until a free name turns up. The final
// loop is intentionally unbounded: with a fresh random suffix per attempt an
// indefinite collision streak is astronomically unlikely, so the function is
// best-effort rather than failure-returning.
func ChooseNonCollidingName(exists func(string) bool, desired string, maxAttempts int) string {
	if !exists(desired) {
		return desired
	}

	ext := filepath.Ext(desired)
	base := strings.TrimSuffix(desired, ext)

	for i := 2; i <= maxAttempts; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, i, ext)
		if !exists(candidate) {
			return candidate
		}
	}

	for {
		suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		candidate := fmt.Sprintf("%s-%s%s", base, suffix, ext)
		if !exists(candidate) {
			return candidate
		}
	}
}

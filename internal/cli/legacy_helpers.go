package cli

import (
	"phnx/internal/cipher"
	"phnx/internal/legacy"
)

// scheduleFor derives a one-shot key schedule for the legacy paths, which
// don't go through pipeline's KeyMaterial lifecycle since they process a
// whole file at once rather than streaming.
func scheduleFor(password []byte) cipher.RoundKeys {
	return cipher.ExpandKey(cipher.KeyFromPassword(password))
}

func legacyDecryptStandard(schedule cipher.RoundKeys, data []byte) ([]byte, error) {
	return legacy.DecryptStandard(schedule, data)
}

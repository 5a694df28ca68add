package cipher

// SecureZero overwrites b with zeros. It does not defend against a Go
// compiler that proves the write is dead, but it does stop a key from
// lingering in memory past the point the caller is done with it.
func SecureZero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// KeyMaterial bundles a password-derived key schedule with the raw password
// bytes it was built from, so both can be wiped together with one call.
type KeyMaterial struct {
	Password []byte
	Schedule RoundKeys
}

// NewKeyMaterial derives a key schedule from password and retains a copy of
// the password bytes for later zeroing. The caller still owns the original
// slice passed in.
func NewKeyMaterial(password []byte) *KeyMaterial {
	cp := make([]byte, len(password))
	copy(cp, password)
	return &KeyMaterial{
		Password: cp,
		Schedule: ExpandKey(KeyFromPassword(password)),
	}
}

// Close zeros the retained password copy and the expanded round key
// schedule. Safe to call more than once.
func (k *KeyMaterial) Close() {
	if k == nil {
		return
	}
	SecureZero(k.Password)
	for i := range k.Schedule {
		k.Schedule[i] = 0
	}
}

// Package suffix marshals and encrypts the 24-byte trailer that phnx
// appends (Golay-protected, spread across all 8 shards) to every encoded
// file: two copies of the body CRC, the nonce, and the plaintext length.
//
// The two CRC copies are not error-correction padding — they are a
// wrong-password check that runs before the body is ever touched: after
// decrypting the suffix, if the two copies disagree, the password used to
// derive the key schedule was wrong.
package suffix

import (
	"encoding/binary"

	"phnx/internal/cipher"
)

// Size is the plaintext (and ciphertext) size of the suffix in bytes.
const Size = 24

// Suffix is the trailer written after every file's ciphertext body.
type Suffix struct {
	CRC    uint32
	Nonce  uint64
	Length uint64
}

// ToBytes serializes s into its 24-byte plaintext layout: CRC copy A (4B),
// CRC copy B (4B), nonce (8B), length (8B), all little-endian.
func (s Suffix) ToBytes() [Size]byte {
	var b [Size]byte
	binary.LittleEndian.PutUint32(b[0:4], s.CRC)
	binary.LittleEndian.PutUint32(b[4:8], s.CRC)
	binary.LittleEndian.PutUint64(b[8:16], s.Nonce)
	binary.LittleEndian.PutUint64(b[16:24], s.Length)
	return b
}

// FromBytes parses a 24-byte plaintext suffix, reporting a CRC mismatch
// between the two copies (the wrong-password signal) via ok=false.
func FromBytes(b [Size]byte) (s Suffix, ok bool) {
	crcA := binary.LittleEndian.Uint32(b[0:4])
	crcB := binary.LittleEndian.Uint32(b[4:8])
	if crcA != crcB {
		return Suffix{}, false
	}
	s.CRC = crcA
	s.Nonce = binary.LittleEndian.Uint64(b[8:16])
	s.Length = binary.LittleEndian.Uint64(b[16:24])
	return s, true
}

// Encrypt produces the 24-byte ciphertext suffix using the two reserved
// sentinel keystream blocks: gamma1 covers the CRC-pair and nonce words,
// gamma2's first 8 bytes cover the length word (its second half is
// discarded, matching the reference layout).
func Encrypt(schedule cipher.RoundKeys, s Suffix) [Size]byte {
	plain := s.ToBytes()
	gamma1 := cipher.SentinelGamma1(schedule)
	gamma2 := cipher.SentinelGamma2(schedule)

	var out [Size]byte
	for i := 0; i < 16; i++ {
		out[i] = plain[i] ^ gamma1[i]
	}
	for i := 0; i < 8; i++ {
		out[16+i] = plain[16+i] ^ gamma2[i]
	}
	return out
}

// Decrypt reverses Encrypt and validates the CRC-pair check.
func Decrypt(schedule cipher.RoundKeys, ct [Size]byte) (Suffix, bool) {
	gamma1 := cipher.SentinelGamma1(schedule)
	gamma2 := cipher.SentinelGamma2(schedule)

	var plain [Size]byte
	for i := 0; i < 16; i++ {
		plain[i] = ct[i] ^ gamma1[i]
	}
	for i := 0; i < 8; i++ {
		plain[16+i] = ct[16+i] ^ gamma2[i]
	}
	return FromBytes(plain)
}

package cipher

import "encoding/binary"

// BlockSize is the width of one Speck128 block and one keystream unit.
const BlockSize = 16

// SentinelWord is the reserved counter value that only ever appears in the
// suffix keystream calls, so it can never collide with an ascending body
// counter (bodies never encrypt 2^64 blocks).
const SentinelWord = ^uint64(0)

// Keystream produces one 16-byte keystream block for the given nonce and
// counter: EncryptBlock(nonce, counter) laid out as little-endian y then
// little-endian x, matching the reference word order exactly.
func Keystream(schedule RoundKeys, nonce, counter uint64) [BlockSize]byte {
	y, x := EncryptBlock(schedule, nonce, counter)
	var out [BlockSize]byte
	binary.LittleEndian.PutUint64(out[0:8], y)
	binary.LittleEndian.PutUint64(out[8:16], x)
	return out
}

// XORKeystream encrypts or decrypts (the operation is its own inverse) src
// into dst starting at the given block counter, advancing the counter by
// one per 16-byte block. dst and src may be the same slice.
func XORKeystream(schedule RoundKeys, nonce uint64, counter uint64, dst, src []byte) {
	for off := 0; off < len(src); off += BlockSize {
		ks := Keystream(schedule, nonce, counter)
		counter++
		end := off + BlockSize
		if end > len(src) {
			end = len(src)
		}
		for i := off; i < end; i++ {
			dst[i] = src[i] ^ ks[i-off]
		}
	}
}

// SentinelGamma1 is the keystream block reserved for the first half of the
// 24-byte suffix (the CRC pair and the nonce), generated at (nonce=MAX,
// counter=MAX) so it never overlaps a body counter.
func SentinelGamma1(schedule RoundKeys) [BlockSize]byte {
	return Keystream(schedule, SentinelWord, SentinelWord)
}

// SentinelGamma2 is the keystream block reserved for the second half of the
// suffix (the plaintext length), generated at (nonce=MAX, counter=MAX-1).
func SentinelGamma2(schedule RoundKeys) [BlockSize]byte {
	return Keystream(schedule, SentinelWord, SentinelWord-1)
}

// LegacySentinelGamma is the single keystream block the legacy
// ".encrypted" container uses to protect its 16-byte suffix (CRC pair plus
// nonce, no length field), generated at (nonce=MAX, counter=MAX).
func LegacySentinelGamma(schedule RoundKeys) [BlockSize]byte {
	return Keystream(schedule, SentinelWord, SentinelWord)
}

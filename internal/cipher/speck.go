// Package cipher implements the Speck128/256 block cipher and its use as a
// counter-mode keystream generator for the phnx pipeline.
//
// This is audit-critical code: the round function, key schedule, and word
// order below are pinned bit-for-bit to the reference implementation and
// changing any of them breaks interoperability with every phnx file ever
// written.
package cipher

import "math/bits"

// Rounds is the number of Speck128/256 rounds.
const Rounds = 34

// RoundKeys is the expanded key schedule for one password.
type RoundKeys [Rounds]uint64

// round applies one Speck round in place: x = ROR(x,8)+y XOR k; y = ROL(y,3) XOR x.
func round(x, y *uint64, k uint64) {
	*x = bits.RotateLeft64(*x, -8)
	*x += *y
	*x ^= k
	*y = bits.RotateLeft64(*y, 3)
	*y ^= *x
}

// ExpandKey derives the 34-word round key schedule from a 256-bit key
// expressed as four little-endian 64-bit words (k[0] is the "a" word driving
// the schedule, k[1..3] are the rotating "b,c,d" words).
func ExpandKey(key [4]uint64) RoundKeys {
	var schedule RoundKeys
	a := key[0]
	bcd := [3]uint64{key[1], key[2], key[3]}

	for i := uint64(0); i < Rounds-1; i++ {
		schedule[i] = a
		round(&bcd[i%3], &a, i)
	}
	schedule[Rounds-1] = a
	return schedule
}

// EncryptBlock encrypts one 128-bit block given as two 64-bit words (y, x)
// and returns the result as (yFinal, xFinal) — the same word order the
// reference implementation uses, which matters because callers rely on it
// to lay out keystream bytes correctly.
func EncryptBlock(schedule RoundKeys, y, x uint64) (uint64, uint64) {
	for i := 0; i < Rounds; i++ {
		round(&x, &y, schedule[i])
	}
	return y, x
}

// KeyFromPassword derives the four key words from raw password bytes,
// zero-padding on the right or truncating to 32 bytes total, per the "no
// KDF, no salt" design of this system.
func KeyFromPassword(password []byte) [4]uint64 {
	var padded [32]byte
	n := copy(padded[:], password)
	_ = n

	var key [4]uint64
	for i := 0; i < 4; i++ {
		key[i] = bytesToWord(padded[i*8 : i*8+8])
	}
	return key
}

func bytesToWord(b []byte) uint64 {
	var w uint64
	for i, v := range b {
		w |= uint64(v) << (8 * i)
	}
	return w
}

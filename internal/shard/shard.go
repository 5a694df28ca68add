// Package shard implements the bit-interleaving that spreads each Golay
// codeword across all 8 output shards, and the group packing that turns
// plaintext bytes into the 12-bit values Golay encodes.
//
// The processing unit throughout is 12 bytes of plaintext: exactly 8
// twelve-bit groups, encoded into 8 Golay codewords, interleaved into
// exactly 3 output bytes per shard (24 output bytes total, one 2x-rate
// group).
package shard

import "phnx/internal/golay"

// GroupSize is the plaintext input size of one processing unit, in bytes.
const GroupSize = 12

// ShardCount is the fixed number of output shards.
const ShardCount = 8

// EncodedGroupSize is the number of bytes each shard contributes per
// processing unit.
const EncodedGroupSize = 3

// PackGroups splits 12 bytes of plaintext into 8 twelve-bit groups by bit
// plane: group i's bit j is bit i of data[j]. This is the same
// transposition the reference implementation's BMI2 pext path performs,
// just done here with a plain shift/mask loop.
func PackGroups(data [GroupSize]byte) [ShardCount]uint16 {
	var groups [ShardCount]uint16
	for i := 0; i < ShardCount; i++ {
		var g uint16
		for j := 0; j < GroupSize; j++ {
			if data[j]&(1<<uint(i)) != 0 {
				g |= 1 << uint(j)
			}
		}
		groups[i] = g
	}
	return groups
}

// UnpackGroups is the inverse of PackGroups.
func UnpackGroups(groups [ShardCount]uint16) [GroupSize]byte {
	var data [GroupSize]byte
	for j := 0; j < GroupSize; j++ {
		var b byte
		for i := 0; i < ShardCount; i++ {
			if groups[i]&(1<<uint(j)) != 0 {
				b |= 1 << uint(i)
			}
		}
		data[j] = b
	}
	return data
}

// Interleave distributes 8 Golay codewords across 8 shards. Codeword i's
// bit m (m in 0..23, bit 0 the codeword's LSB) lands at bit i of byte m's
// shard-local byte; byte m belongs to shard m/3, at offset m%3 within that
// shard's 3-byte output. Eight codewords' worth of bit planes exactly fill
// the 3 bytes every shard contributes per group.
func Interleave(codewords [8]uint32) [ShardCount][EncodedGroupSize]byte {
	var triplets [ShardCount * EncodedGroupSize]byte
	for m := 0; m < ShardCount*EncodedGroupSize; m++ {
		var b byte
		for i, cw := range codewords {
			if cw&(1<<uint(m)) != 0 {
				b |= 1 << uint(i)
			}
		}
		triplets[m] = b
	}

	var shards [ShardCount][EncodedGroupSize]byte
	for s := 0; s < ShardCount; s++ {
		copy(shards[s][:], triplets[s*EncodedGroupSize:s*EncodedGroupSize+EncodedGroupSize])
	}
	return shards
}

// Deinterleave is the inverse of Interleave: it reassembles 8 codewords
// from 8 shards' 3-byte contributions. A missing shard should be passed as
// a zeroed [3]byte; that induces at most 3 bit errors per codeword, which
// golay.Decode always corrects.
func Deinterleave(shards [ShardCount][EncodedGroupSize]byte) [8]uint32 {
	var triplets [ShardCount * EncodedGroupSize]byte
	for s, b := range shards {
		copy(triplets[s*EncodedGroupSize:s*EncodedGroupSize+EncodedGroupSize], b[:])
	}

	var codewords [8]uint32
	for m, b := range triplets {
		for i := 0; i < 8; i++ {
			if b&(1<<uint(i)) != 0 {
				codewords[i] |= 1 << uint(m)
			}
		}
	}
	return codewords
}

// EncodeGroup takes 12 bytes of plaintext and returns the 8 shards' worth
// of encoded output (3 bytes each) for that group.
func EncodeGroup(data [GroupSize]byte) [ShardCount][EncodedGroupSize]byte {
	groups := PackGroups(data)
	var codewords [8]uint32
	for i, g := range groups {
		codewords[i] = golay.Encode(g)
	}
	return Interleave(codewords)
}

// DecodeGroup reconstructs 12 bytes of plaintext from 8 shards' 3-byte
// contributions (one of which may be a zeroed placeholder for a missing
// shard). ok is false if any of the 8 codewords was uncorrectable.
func DecodeGroup(shards [ShardCount][EncodedGroupSize]byte) (data [GroupSize]byte, ok bool) {
	codewords := Deinterleave(shards)
	var groups [ShardCount]uint16
	for i, cw := range codewords {
		g, decOK := golay.Decode(cw)
		if !decOK {
			return data, false
		}
		groups[i] = g
	}
	return UnpackGroups(groups), true
}

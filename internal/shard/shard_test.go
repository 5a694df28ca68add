package shard

import "testing"

func TestPackUnpackGroupsRoundTrip(t *testing.T) {
	data := [GroupSize]byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef, 0x10, 0x32, 0x54, 0x76}
	groups := PackGroups(data)
	for _, g := range groups {
		if g > 0xfff {
			t.Fatalf("group %#x exceeds 12 bits", g)
		}
	}
	got := UnpackGroups(groups)
	if got != data {
		t.Fatalf("UnpackGroups(PackGroups(data)) = %v; want %v", got, data)
	}
}

func TestInterleaveDeinterleaveRoundTrip(t *testing.T) {
	var codewords [8]uint32
	for i := range codewords {
		codewords[i] = uint32(0x100000 + i*0x010101)
	}
	shards := Interleave(codewords)
	got := Deinterleave(shards)
	if got != codewords {
		t.Fatalf("Deinterleave(Interleave(cw)) = %v; want %v", got, codewords)
	}
}

func TestEncodeDecodeGroupRoundTripNoErrors(t *testing.T) {
	data := [GroupSize]byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0xff, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66}
	shards := EncodeGroup(data)
	got, ok := DecodeGroup(shards)
	if !ok || got != data {
		t.Fatalf("DecodeGroup(EncodeGroup(data)) = (%v, %v); want (%v, true)", got, ok, data)
	}
}

func TestDecodeGroupToleratesOneMissingShard(t *testing.T) {
	data := [GroupSize]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	shards := EncodeGroup(data)
	for missing := 0; missing < ShardCount; missing++ {
		withGap := shards
		withGap[missing] = [EncodedGroupSize]byte{}
		got, ok := DecodeGroup(withGap)
		if !ok || got != data {
			t.Fatalf("missing shard %d: DecodeGroup = (%v, %v); want (%v, true)", missing, got, ok, data)
		}
	}
}

func TestInterleaveShardsAreIndependentBitLanes(t *testing.T) {
	// Flipping a bit that belongs to shard 0's lane must not change any
	// other shard's bytes.
	var codewords [8]uint32
	base := Interleave(codewords)

	codewords[0] = 1 << 0 // codeword 0's bit 0, belongs to shard 0's first byte
	changed := Interleave(codewords)

	for s := 1; s < ShardCount; s++ {
		if changed[s] != base[s] {
			t.Fatalf("flipping shard-0's bit changed shard %d: %v -> %v", s, base[s], changed[s])
		}
	}
	if changed[0] == base[0] {
		t.Fatal("expected shard 0 to change")
	}
}

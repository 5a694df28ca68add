package cipher

import "testing"

// TestSelfTest reproduces the reference vector: key bytes 0x00..0x1f as four
// little-endian 64-bit words, plaintext taken from the ASCII strings
// "pooner. " and "In those", ciphertext pinned exactly.
func TestSelfTest(t *testing.T) {
	var keyBytes [32]byte
	for i := range keyBytes {
		keyBytes[i] = byte(i)
	}
	var key [4]uint64
	for i := 0; i < 4; i++ {
		key[i] = bytesToWord(keyBytes[i*8 : i*8+8])
	}
	schedule := ExpandKey(key)

	y := bytesToWord([]byte("pooner. "))
	x := bytesToWord([]byte("In those"))

	gotY, gotX := EncryptBlock(schedule, y, x)

	const wantY = 0x4eeeb48d9c188f43
	const wantX = 0x4109010405c0f53e
	if gotY != wantY || gotX != wantX {
		t.Fatalf("EncryptBlock = (%#x, %#x); want (%#x, %#x)", gotY, gotX, wantY, wantX)
	}
}

func TestKeyFromPasswordPadsAndTruncates(t *testing.T) {
	short := KeyFromPassword([]byte("abc"))
	if short[1] != 0 || short[2] != 0 || short[3] != 0 {
		t.Errorf("short password should zero-pad trailing words, got %#v", short)
	}

	long := make([]byte, 64)
	for i := range long {
		long[i] = byte(i + 1)
	}
	k := KeyFromPassword(long)
	want := bytesToWord(long[24:32])
	if k[3] != want {
		t.Errorf("last word = %#x; want %#x (truncated to 32 bytes)", k[3], want)
	}
}

func TestEncryptBlockDeterministic(t *testing.T) {
	schedule := ExpandKey([4]uint64{1, 2, 3, 4})
	y1, x1 := EncryptBlock(schedule, 10, 20)
	y2, x2 := EncryptBlock(schedule, 10, 20)
	if y1 != y2 || x1 != x2 {
		t.Fatal("EncryptBlock is not deterministic for identical inputs")
	}
	if y1 == 10 && x1 == 20 {
		t.Fatal("EncryptBlock returned the plaintext unchanged")
	}
}

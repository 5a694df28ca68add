package cipher

import "testing"

func testSchedule() RoundKeys {
	return ExpandKey([4]uint64{0x0102030405060708, 1, 2, 3})
}

func TestXORKeystreamRoundTrips(t *testing.T) {
	schedule := testSchedule()
	plaintext := []byte("the quick brown fox jumps over the lazy dog, twice for luck")

	ciphertext := make([]byte, len(plaintext))
	XORKeystream(schedule, 42, 0, ciphertext, plaintext)

	if string(ciphertext) == string(plaintext) {
		t.Fatal("ciphertext equals plaintext")
	}

	recovered := make([]byte, len(ciphertext))
	XORKeystream(schedule, 42, 0, recovered, ciphertext)
	if string(recovered) != string(plaintext) {
		t.Fatalf("round trip failed: got %q want %q", recovered, plaintext)
	}
}

func TestXORKeystreamHandlesPartialFinalBlock(t *testing.T) {
	schedule := testSchedule()
	plaintext := []byte("13 bytes here")
	if len(plaintext) >= BlockSize {
		t.Fatalf("test fixture must be shorter than one block, got %d bytes", len(plaintext))
	}

	ct := make([]byte, len(plaintext))
	XORKeystream(schedule, 7, 3, ct, plaintext)
	pt := make([]byte, len(ct))
	XORKeystream(schedule, 7, 3, pt, ct)
	if string(pt) != string(plaintext) {
		t.Fatalf("partial block round trip failed: got %q want %q", pt, plaintext)
	}
}

func TestSentinelGammasAreDistinctFromBodyCounters(t *testing.T) {
	schedule := testSchedule()
	g1 := SentinelGamma1(schedule)
	g2 := SentinelGamma2(schedule)
	if g1 == g2 {
		t.Fatal("SentinelGamma1 and SentinelGamma2 must differ (different counters)")
	}

	body := Keystream(schedule, SentinelWord, 0)
	if body == g1 || body == g2 {
		t.Fatal("a body counter of 0 collided with a sentinel gamma")
	}
}

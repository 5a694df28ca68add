package suffix

import (
	"testing"

	"phnx/internal/cipher"
)

func testSchedule() cipher.RoundKeys {
	return cipher.ExpandKey([4]uint64{9, 8, 7, 6})
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	schedule := testSchedule()
	s := Suffix{CRC: 0xdeadbeef, Nonce: 0x1122334455667788, Length: 123456789}

	ct := Encrypt(schedule, s)
	got, ok := Decrypt(schedule, ct)
	if !ok {
		t.Fatal("Decrypt reported CRC mismatch on a freshly encrypted suffix")
	}
	if got != s {
		t.Fatalf("Decrypt(Encrypt(s)) = %+v; want %+v", got, s)
	}
}

func TestDecryptWrongPasswordDetectsCRCMismatch(t *testing.T) {
	writer := testSchedule()
	reader := cipher.ExpandKey([4]uint64{1, 2, 3, 4})

	s := Suffix{CRC: 42, Nonce: 7, Length: 100}
	ct := Encrypt(writer, s)

	if _, ok := Decrypt(reader, ct); ok {
		t.Fatal("Decrypt with the wrong schedule should fail the CRC-pair check")
	}
}

func TestToBytesFromBytesRoundTrip(t *testing.T) {
	s := Suffix{CRC: 0x01020304, Nonce: 0xaabbccdd11223344, Length: 999}
	b := s.ToBytes()
	got, ok := FromBytes(b)
	if !ok || got != s {
		t.Fatalf("FromBytes(ToBytes(s)) = (%+v, %v); want (%+v, true)", got, ok, s)
	}
}

func TestFromBytesRejectsMismatchedCRCCopies(t *testing.T) {
	s := Suffix{CRC: 1, Nonce: 2, Length: 3}
	b := s.ToBytes()
	b[4] ^= 0xff // corrupt only the second CRC copy
	if _, ok := FromBytes(b); ok {
		t.Fatal("FromBytes should reject mismatched CRC copies")
	}
}

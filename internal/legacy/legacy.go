// Package legacy reads and writes the two container formats produced by
// this tool's predecessor ("cryptolocker"): a plain ".encrypted" suffix
// with an embedded 16-byte trailer, and an older ".encrypted-XXXXXXXX"
// form that has no trailer at all and instead encodes an 8-hex-digit
// verification word into the filename itself.
//
// Neither format is Golay-protected or shard-split; both operate on the
// whole file at once, matching how the original tool processed them.
package legacy

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"os"
	"strings"

	"phnx/internal/cipher"
	"phnx/internal/crc32c"
	phnxerrors "phnx/internal/errors"
)

// StandardSuffix is the plain legacy container extension.
const StandardSuffix = ".encrypted"

// hexPrefix is how the older, suffix-less container tags its filename.
const hexPrefix = ".encrypted-"

// EncryptStandard returns an encrypted copy of data (data itself is left
// unchanged) followed by a 16-byte trailer (two CRC copies plus the nonce),
// the trailer protected by the single sentinel keystream block reserved for
// legacy suffixes.
func EncryptStandard(schedule cipher.RoundKeys, data []byte) ([]byte, error) {
	nonce, err := randomNonce()
	if err != nil {
		return nil, err
	}

	ct := make([]byte, len(data))
	cipher.XORKeystream(schedule, nonce, 0, ct, data)
	crc := crc32c.Checksum(data)

	var plainSuffix [16]byte
	binary.LittleEndian.PutUint32(plainSuffix[0:4], crc)
	binary.LittleEndian.PutUint32(plainSuffix[4:8], crc)
	binary.LittleEndian.PutUint64(plainSuffix[8:16], nonce)

	gamma := cipher.LegacySentinelGamma(schedule)
	var encSuffix [16]byte
	for i := range encSuffix {
		encSuffix[i] = plainSuffix[i] ^ gamma[i]
	}

	return append(ct, encSuffix[:]...), nil
}

// DecryptStandard reverses EncryptStandard, checking the CRC-pair
// wrong-password signal and the body checksum.
func DecryptStandard(schedule cipher.RoundKeys, container []byte) ([]byte, error) {
	if len(container) < 16 {
		return nil, phnxerrors.Wrap("decrypt legacy suffix", "", phnxerrors.ErrFileFormat)
	}
	body := container[:len(container)-16]
	var encSuffix [16]byte
	copy(encSuffix[:], container[len(container)-16:])

	gamma := cipher.LegacySentinelGamma(schedule)
	var plainSuffix [16]byte
	for i := range plainSuffix {
		plainSuffix[i] = encSuffix[i] ^ gamma[i]
	}

	crcA := binary.LittleEndian.Uint32(plainSuffix[0:4])
	crcB := binary.LittleEndian.Uint32(plainSuffix[4:8])
	if crcA != crcB {
		return nil, phnxerrors.Wrap("decrypt legacy suffix", "", phnxerrors.ErrPasswordMismatch)
	}
	nonce := binary.LittleEndian.Uint64(plainSuffix[8:16])

	plain := make([]byte, len(body))
	cipher.XORKeystream(schedule, nonce, 0, plain, body)

	if crc32c.Checksum(plain) != crcA {
		return nil, phnxerrors.Wrap("verify legacy checksum", "", phnxerrors.ErrUncorrectable)
	}
	return plain, nil
}

// EncryptHex encrypts data with no trailer at all (nonce equals the exact
// plaintext length, matching the original bare cryptolocker format) and
// returns the ciphertext along with the 8 hex verification digits that
// must be appended to the output filename as ".encrypted-XXXXXXXX".
func EncryptHex(schedule cipher.RoundKeys, data []byte) (ciphertext []byte, verification string) {
	nonce := uint64(len(data))
	ct := make([]byte, len(data))
	cipher.XORKeystream(schedule, nonce, 0, ct, data)

	crcBefore := crc32c.Checksum(data)
	crcAfter := crc32c.Checksum(ct)
	word := (uint64(crcBefore) << 32) | uint64(crcAfter)
	y, _ := cipher.EncryptBlock(schedule, word, nonce)

	return ct, hex.EncodeToString(bigEndian32(uint32(y)))
}

// DecryptHex reverses EncryptHex given the ciphertext and the verification
// digits recovered from the filename. Length is implicit: it's the nonce,
// so it's recovered directly from the ciphertext's own length.
func DecryptHex(schedule cipher.RoundKeys, ciphertext []byte, verification string) ([]byte, error) {
	want, err := hex.DecodeString(verification)
	if err != nil || len(want) != 4 {
		return nil, phnxerrors.Wrap("parse legacy verification word", verification, phnxerrors.ErrFileFormat)
	}

	nonce := uint64(len(ciphertext))
	plain := make([]byte, len(ciphertext))
	cipher.XORKeystream(schedule, nonce, 0, plain, ciphertext)

	crcBefore := crc32c.Checksum(plain)
	crcAfter := crc32c.Checksum(ciphertext)
	word := (uint64(crcBefore) << 32) | uint64(crcAfter)
	y, _ := cipher.EncryptBlock(schedule, word, nonce)

	if !bytesEqual(bigEndian32(uint32(y)), want) {
		return nil, phnxerrors.Wrap("verify legacy checksum", "", phnxerrors.ErrFileFormat)
	}
	return plain, nil
}

// SplitHexName recognizes a "name.encrypted-XXXXXXXX" filename and returns
// the base name and the 8 hex digits.
func SplitHexName(name string) (base, digits string, ok bool) {
	idx := strings.LastIndex(name, hexPrefix)
	if idx < 0 {
		return "", "", false
	}
	candidate := name[idx+len(hexPrefix):]
	if len(candidate) != 8 {
		return "", "", false
	}
	for _, c := range candidate {
		if !isHexDigit(byte(c)) {
			return "", "", false
		}
	}
	return name[:idx], candidate, true
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func randomNonce() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func bigEndian32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ReadFile is a small convenience wrapper so CLI callers don't need to
// import os directly for this package's whole-file processing model.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, phnxerrors.Wrap("read legacy file", path, err)
	}
	return data, nil
}

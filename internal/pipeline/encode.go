package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"os"

	"phnx/internal/cipher"
	"phnx/internal/crc32c"
	phnxerrors "phnx/internal/errors"
	"phnx/internal/log"
	"phnx/internal/shard"
	"phnx/internal/suffix"
)

// Encode reads req.InputPath, encrypts it with a key schedule derived from
// req.Password, and writes 8 sibling ".phnx_A".."phnx_H" shard files next
// to it. The nonce is drawn from a cryptographic RNG, deliberately
// stronger than the wall-clock-derived nonce older tooling in this lineage
// used.
func Encode(req EncodeRequest) error {
	progress := reporterOrNoop(req.Progress)
	chunkBytes := normalizeChunkBytes(req.ChunkBytes)

	in, err := os.Open(req.InputPath)
	if err != nil {
		return phnxerrors.Wrap("open input", req.InputPath, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return phnxerrors.Wrap("stat input", req.InputPath, err)
	}
	length := uint64(info.Size())
	progress.SetTotal(info.Size())

	nonce, err := randomNonce()
	if err != nil {
		return phnxerrors.Wrap("generate nonce", req.InputPath, err)
	}

	key := cipher.NewKeyMaterial(req.Password)
	defer key.Close()

	outs, err := createShardFiles(req.InputPath)
	if err != nil {
		return err
	}
	defer closeAll(outs)

	crc := crc32c.NewHash()
	buf := make([]byte, chunkBytes)
	shardBuf := make([][]byte, shard.ShardCount)
	for i := range shardBuf {
		shardBuf[i] = make([]byte, 0, chunkBytes/shard.GroupSize*shard.EncodedGroupSize)
	}

	var counter uint64
	for {
		n, readErr := io.ReadFull(in, buf)
		if n > 0 {
			crc.Write(buf[:n])
			if n%shard.GroupSize != 0 {
				// Final short read: zero-pad to a full group; Length in
				// the suffix tells the reader how much to keep.
				padded := make([]byte, n+(shard.GroupSize-n%shard.GroupSize))
				copy(padded, buf[:n])
				n = len(padded)
				buf = padded
			}

			plain := buf[:n]
			cipherText := make([]byte, n)
			cipher.XORKeystream(key.Schedule, nonce, counter, cipherText, plain)
			counter += uint64(n / cipher.BlockSize)

			for i := range shardBuf {
				shardBuf[i] = shardBuf[i][:0]
			}
			for off := 0; off < n; off += shard.GroupSize {
				var group [shard.GroupSize]byte
				copy(group[:], cipherText[off:off+shard.GroupSize])
				encoded := shard.EncodeGroup(group)
				for i := 0; i < shard.ShardCount; i++ {
					shardBuf[i] = append(shardBuf[i], encoded[i][:]...)
				}
			}
			for i, f := range outs {
				if _, err := f.Write(shardBuf[i]); err != nil {
					return phnxerrors.Wrap("write shard", f.Name(), err)
				}
			}
			progress.Advance(int64(n))
		}

		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			break
		}
		if readErr != nil {
			return phnxerrors.Wrap("read input", req.InputPath, readErr)
		}
	}

	suf := suffix.Suffix{CRC: crc.Sum32(), Nonce: nonce, Length: length}
	if err := writeSuffix(outs, key.Schedule, suf); err != nil {
		return err
	}

	log.Info("encoded file", log.String("path", req.InputPath), log.Int("shards", shard.ShardCount))
	return nil
}

func randomNonce() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func createShardFiles(base string) ([shard.ShardCount]*os.File, error) {
	var outs [shard.ShardCount]*os.File
	for i := 0; i < shard.ShardCount; i++ {
		path := ShardPath(base, i)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
		if err != nil {
			closeAll(outs)
			return outs, phnxerrors.Wrap("create shard", path, err)
		}
		outs[i] = f
	}
	return outs, nil
}

func closeAll(files [shard.ShardCount]*os.File) {
	for _, f := range files {
		if f != nil {
			f.Close()
		}
	}
}

// writeSuffix appends the 24-byte encrypted trailer to all 8 shards,
// Golay-encoding it exactly like the body: 24 bytes is two 12-byte groups.
func writeSuffix(outs [shard.ShardCount]*os.File, schedule cipher.RoundKeys, suf suffix.Suffix) error {
	ct := suffix.Encrypt(schedule, suf)

	var g0, g1 [shard.GroupSize]byte
	copy(g0[:], ct[:shard.GroupSize])
	copy(g1[:], ct[shard.GroupSize:])

	e0 := shard.EncodeGroup(g0)
	e1 := shard.EncodeGroup(g1)
	for i, f := range outs {
		if _, err := f.Write(e0[i][:]); err != nil {
			return phnxerrors.Wrap("write suffix", f.Name(), err)
		}
		if _, err := f.Write(e1[i][:]); err != nil {
			return phnxerrors.Wrap("write suffix", f.Name(), err)
		}
	}
	return nil
}

package pipeline

import (
	"os"

	"phnx/internal/cipher"
	"phnx/internal/crc32c"
	phnxerrors "phnx/internal/errors"
	"phnx/internal/log"
	"phnx/internal/shard"
	"phnx/internal/suffix"
)

// suffixEncodedBytes is how many encoded bytes per shard the trailer
// occupies: 24 plaintext bytes is 2 Golay groups, each 3 encoded bytes.
const suffixEncodedBytes = 2 * shard.EncodedGroupSize

// Decode reconstructs the original file from up to 8 sibling shard files
// identified by req.ShardPath, tolerating exactly one missing shard.
func Decode(req DecodeRequest) error {
	progress := reporterOrNoop(req.Progress)

	base, _, ok := ParseShardPath(req.ShardPath)
	if !ok {
		return phnxerrors.Wrap("parse shard name", req.ShardPath, phnxerrors.ErrFileFormat)
	}

	ins, missing, err := openShardFiles(base)
	if err != nil {
		return err
	}
	defer closeAll(ins)

	fileSize, err := shardFileSize(ins)
	if err != nil {
		return err
	}
	if fileSize < int64(suffixEncodedBytes) {
		return phnxerrors.Wrap("shard too small", base, phnxerrors.ErrFileFormat)
	}
	bodyEncodedBytes := fileSize - int64(suffixEncodedBytes)
	if bodyEncodedBytes%shard.EncodedGroupSize != 0 {
		return phnxerrors.Wrap("shard body misaligned", base, phnxerrors.ErrFileFormat)
	}

	key := cipher.NewKeyMaterial(req.Password)
	defer key.Close()

	suf, err := readSuffix(ins, missing, key.Schedule, base)
	if err != nil {
		return err
	}

	out, err := os.OpenFile(base, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return phnxerrors.Wrap("create output", base, err)
	}
	defer out.Close()

	progress.SetTotal(int64(suf.Length))

	crc := crc32c.NewHash()
	var written uint64
	var counter uint64

	chunkGroups := normalizeChunkBytes(req.ChunkBytes) / shard.GroupSize
	if chunkGroups < 1 {
		chunkGroups = 1
	}
	readBuf := make([][]byte, shard.ShardCount)
	for i := range readBuf {
		readBuf[i] = make([]byte, chunkGroups*shard.EncodedGroupSize)
	}

	remainingEncoded := bodyEncodedBytes
	for remainingEncoded > 0 {
		want := int64(chunkGroups * shard.EncodedGroupSize)
		if want > remainingEncoded {
			want = remainingEncoded
		}
		numGroups := int(want) / shard.EncodedGroupSize

		for i, f := range ins {
			if f == nil {
				continue
			}
			if _, err := readFull(f, readBuf[i][:want]); err != nil {
				return phnxerrors.Wrap("read shard body", shardName(base, i), err)
			}
		}

		plainChunk := make([]byte, 0, numGroups*shard.GroupSize)
		for g := 0; g < numGroups; g++ {
			var groups [shard.ShardCount][shard.EncodedGroupSize]byte
			for i := range ins {
				if ins[i] == nil {
					continue // leaves groups[i] zeroed: the erasure-by-zeroing shard
				}
				copy(groups[i][:], readBuf[i][g*shard.EncodedGroupSize:(g+1)*shard.EncodedGroupSize])
			}
			cipherGroup, ok := shard.DecodeGroup(groups)
			if !ok {
				return phnxerrors.Wrap("decode group", base, phnxerrors.ErrUncorrectable)
			}
			plainChunk = append(plainChunk, cipherGroup[:]...)
		}

		decrypted := make([]byte, len(plainChunk))
		cipher.XORKeystream(key.Schedule, suf.Nonce, counter, decrypted, plainChunk)
		counter += uint64(len(plainChunk) / cipher.BlockSize)

		toWrite := decrypted
		if written+uint64(len(toWrite)) > suf.Length {
			trim := suf.Length - written
			toWrite = decrypted[:trim]
		}
		crc.Write(toWrite)
		if _, err := out.Write(toWrite); err != nil {
			return phnxerrors.Wrap("write output", base, err)
		}
		written += uint64(len(toWrite))
		progress.Advance(int64(len(toWrite)))

		remainingEncoded -= want
	}

	if crc.Sum32() != suf.CRC {
		return phnxerrors.Wrap("verify body checksum", base, phnxerrors.ErrUncorrectable)
	}

	log.Info("decoded file", log.String("path", base))
	return nil
}

func shardName(base string, i int) string { return ShardPath(base, i) }

// openShardFiles opens the 8 sibling shards, tolerating exactly one
// missing file. missing is -1 if all 8 are present, else the missing
// shard's index.
func openShardFiles(base string) (ins [shard.ShardCount]*os.File, missing int, err error) {
	missing = -1
	for i := 0; i < shard.ShardCount; i++ {
		path := ShardPath(base, i)
		f, openErr := os.Open(path)
		if openErr != nil {
			if !os.IsNotExist(openErr) {
				closeAll(ins)
				return ins, -1, phnxerrors.Wrap("open shard", path, openErr)
			}
			if missing != -1 {
				closeAll(ins)
				return ins, -1, phnxerrors.Wrap("too many missing shards", base, phnxerrors.ErrFileFormat)
			}
			missing = i
			continue
		}
		ins[i] = f
	}
	return ins, missing, nil
}

func shardFileSize(ins [shard.ShardCount]*os.File) (int64, error) {
	for _, f := range ins {
		if f == nil {
			continue
		}
		info, err := f.Stat()
		if err != nil {
			return 0, phnxerrors.Wrap("stat shard", f.Name(), err)
		}
		return info.Size(), nil
	}
	return 0, phnxerrors.Wrap("no shards present", "", phnxerrors.ErrIo)
}

func readSuffix(ins [shard.ShardCount]*os.File, missing int, schedule cipher.RoundKeys, base string) (suffix.Suffix, error) {
	var groups [shard.ShardCount][shard.EncodedGroupSize]byte
	var groups2 [shard.ShardCount][shard.EncodedGroupSize]byte

	for i, f := range ins {
		if f == nil {
			continue
		}
		info, err := f.Stat()
		if err != nil {
			return suffix.Suffix{}, phnxerrors.Wrap("stat shard", f.Name(), err)
		}
		var tail [suffixEncodedBytes]byte
		if _, err := f.ReadAt(tail[:], info.Size()-suffixEncodedBytes); err != nil {
			return suffix.Suffix{}, phnxerrors.Wrap("read suffix", f.Name(), err)
		}
		copy(groups[i][:], tail[:shard.EncodedGroupSize])
		copy(groups2[i][:], tail[shard.EncodedGroupSize:])
	}

	g0, ok := shard.DecodeGroup(groups)
	if !ok {
		return suffix.Suffix{}, phnxerrors.Wrap("decode suffix", base, phnxerrors.ErrUncorrectable)
	}
	g1, ok := shard.DecodeGroup(groups2)
	if !ok {
		return suffix.Suffix{}, phnxerrors.Wrap("decode suffix", base, phnxerrors.ErrUncorrectable)
	}

	var ct [suffix.Size]byte
	copy(ct[:shard.GroupSize], g0[:])
	copy(ct[shard.GroupSize:], g1[:])

	suf, ok := suffix.Decrypt(schedule, ct)
	if !ok {
		return suffix.Suffix{}, phnxerrors.Wrap("decrypt suffix", base, phnxerrors.ErrPasswordMismatch)
	}
	return suf, nil
}

func readFull(f *os.File, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := f.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Package pipeline drives the end-to-end encode and decode state machines:
// chunked reads, CTR encryption, Golay-protected bit interleaving across 8
// shard files, and the suffix trailer that carries the CRC, nonce, and
// original length.
//
// It never reads configuration or prompts for anything itself — every
// tunable comes in on the request struct — so it can be driven equally by
// the CLI or a future test harness.
package pipeline

import (
	"fmt"

	"phnx/internal/shard"
)

// shardSuffixLetters is the fixed ".phnx_A".."phnx_H" naming scheme.
const shardSuffixLetters = "ABCDEFGH"

// ShardPath returns the path of shard index (0-7) belonging to a file whose
// canonical body path is base.
func ShardPath(base string, index int) string {
	return fmt.Sprintf("%s.phnx_%c", base, shardSuffixLetters[index])
}

// ParseShardPath recognizes a ".phnx_[A-H]" suffix and returns the base
// path and shard index it belongs to.
func ParseShardPath(path string) (base string, index int, ok bool) {
	if len(path) < 7 {
		return "", 0, false
	}
	tail := path[len(path)-7:]
	if tail[:6] != ".phnx_" {
		return "", 0, false
	}
	letter := tail[6]
	if letter < 'A' || letter > 'H' {
		return "", 0, false
	}
	return path[:len(path)-7], int(letter - 'A'), true
}

// ProgressReporter receives coarse progress updates during a long encode or
// decode. The zero value (nil) means "don't report".
type ProgressReporter interface {
	SetTotal(bytes int64)
	Advance(bytes int64)
}

type noopReporter struct{}

func (noopReporter) SetTotal(int64)  {}
func (noopReporter) Advance(int64) {}

func reporterOrNoop(r ProgressReporter) ProgressReporter {
	if r == nil {
		return noopReporter{}
	}
	return r
}

// EncodeRequest describes one file to split into 8 encrypted, Golay-coded
// shards.
type EncodeRequest struct {
	InputPath  string
	Password   []byte
	ChunkBytes int
	Progress   ProgressReporter
}

// DecodeRequest describes one recombination attempt, identified by any
// single one of the 8 sibling shard paths.
type DecodeRequest struct {
	ShardPath  string
	Password   []byte
	ChunkBytes int
	Progress   ProgressReporter
}

// chunkUnit is the least common multiple of the Golay group size (12) and
// the cipher block size (16).
const chunkUnit = 48

// normalizeChunkBytes floors req.ChunkBytes to a positive multiple of both
// the Golay group size and the cipher block size, so every read but the last
// lines up on a group boundary and every chunk starts on a fresh keystream
// counter.
func normalizeChunkBytes(n int) int {
	if n <= 0 {
		n = shard.GroupSize * 64
	}
	n -= n % chunkUnit
	if n < chunkUnit {
		n = chunkUnit
	}
	return n
}

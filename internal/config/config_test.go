package config

import "testing"

func TestDefault(t *testing.T) {
	s := Default()
	if s.ChunkKiB != DefaultChunkKiB {
		t.Errorf("ChunkKiB = %d; want %d", s.ChunkKiB, DefaultChunkKiB)
	}
	if !s.SelfTest {
		t.Error("SelfTest should default to true")
	}
}

func TestChunkBytesRoundsToGroupBoundary(t *testing.T) {
	s := Settings{ChunkKiB: 1} // 1024 bytes, not a multiple of 12
	got := s.ChunkBytes()
	if got%12 != 0 {
		t.Errorf("ChunkBytes() = %d; want a multiple of 12", got)
	}
	if got == 0 {
		t.Error("ChunkBytes() should never round down to zero")
	}
}

func TestChunkBytesFloorsAtOneGroup(t *testing.T) {
	s := Settings{ChunkKiB: 0}
	if got := s.ChunkBytes(); got < 12 {
		t.Errorf("ChunkBytes() = %d; want at least 12", got)
	}
}

func TestLoadWithoutConfigFileReturnsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v; want nil when no config file exists", err)
	}
	if s.ChunkKiB != DefaultChunkKiB {
		t.Errorf("ChunkKiB = %d; want default %d", s.ChunkKiB, DefaultChunkKiB)
	}
}

package errors

import (
	"errors"
	"testing"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{ErrIo, 1},
		{ErrPasswordMismatch, 2},
		{ErrUncorrectable, 3},
		{ErrFileFormat, 4},
		{ErrSelfTestFailed, 5},
		{errors.New("some other failure"), 1},
	}

	for _, c := range cases {
		if got := ExitCode(c.err); got != c.want {
			t.Errorf("ExitCode(%v) = %d; want %d", c.err, got, c.want)
		}
	}
}

func TestPipelineErrorUnwrap(t *testing.T) {
	err := Wrap("decode suffix", "file.phnx_A", ErrPasswordMismatch)
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("errors.Is failed to see through PipelineError wrapping")
	}

	var pe *PipelineError
	if !errors.As(err, &pe) {
		t.Fatalf("errors.As failed to extract *PipelineError")
	}
	if pe.Op != "decode suffix" || pe.Path != "file.phnx_A" {
		t.Errorf("PipelineError fields = %q, %q; want %q, %q", pe.Op, pe.Path, "decode suffix", "file.phnx_A")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap("op", "path", nil) != nil {
		t.Fatal("Wrap(nil) should return nil")
	}
}

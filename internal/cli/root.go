// Package cli wires phnx's cobra command surface: one positional file
// argument, dispatched to encode or decode by inspecting its name, plus
// flags for chunk size, verbosity, and legacy-container handling.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"phnx/internal/config"
	phnxerrors "phnx/internal/errors"
	"phnx/internal/legacy"
	"phnx/internal/log"
	"phnx/internal/pipeline"
	"phnx/internal/selftest"
)

var (
	flagChunkKiB int
	flagVerbose  bool
	flagLogLevel string
	flagCompat   bool
)

// NewRootCommand builds the phnx cobra command tree.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phnx <file>",
		Short: "Split a file into 8 encrypted, error-corrected shards, or reassemble one",
		Long: "phnx encrypts a file with Speck128/256-CTR and splits it into 8 shards\n" +
			"protected by an extended binary Golay(24,12,8) code, so that any one\n" +
			"shard can be lost and the file still recovered. Running it again on a\n" +
			"shard, or on a legacy .encrypted/.encrypted-HEX container, reverses it.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runE,
	}

	cmd.Flags().IntVar(&flagChunkKiB, "chunk-kib", 0, "streaming chunk size in KiB (default: from ~/.phnxrc or 768)")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging to stderr")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().BoolVarP(&flagCompat, "compat", "c", false, "write a legacy <file>.encrypted container instead of 8 shards")

	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		return phnxerrors.ExitCode(err)
	}
	return 0
}

func runE(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: ignoring malformed config: %v\n", err)
		settings = config.Default()
	}

	if settings.SelfTest {
		if err := selftest.Run(); err != nil {
			return err
		}
	}

	level := settings.LogLevel
	if env := os.Getenv("PHNX_LOG_LEVEL"); env != "" {
		level = env
	}
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	if flagVerbose {
		level = "debug"
	}
	log.EnableStderr(log.ParseLevel(level))

	chunkKiB := settings.ChunkKiB
	if flagChunkKiB > 0 {
		chunkKiB = flagChunkKiB
	}
	chunkBytes := (config.Settings{ChunkKiB: chunkKiB}).ChunkBytes()

	path := args[0]
	reporter := newProgressReporter(cmd.OutOrStdout())

	switch {
	case isLegacyHexPath(path):
		return runLegacyHexDecode(cmd, path)
	case hasLegacySuffix(path):
		return runLegacyStandardDecode(cmd, path)
	case isShardPath(path):
		password, err := ResolvePassword(cmd.InOrStdin(), cmd.OutOrStdout(), false)
		if err != nil {
			return err
		}
		defer clear(password)
		return pipeline.Decode(pipeline.DecodeRequest{
			ShardPath:  path,
			Password:   password,
			ChunkBytes: chunkBytes,
			Progress:   reporter,
		})
	case strings.Contains(filepath.Base(path), legacy.StandardSuffix+"-"):
		// An ".encrypted-" name whose tail is not 8 hex digits: an
		// unrecognized legacy variant, reported as a file-format error.
		return runLegacyHexDecode(cmd, path)
	case flagCompat:
		return runLegacyStandardEncode(cmd, path)
	default:
		password, err := ResolvePassword(cmd.InOrStdin(), cmd.OutOrStdout(), true)
		if err != nil {
			return err
		}
		defer clear(password)
		return pipeline.Encode(pipeline.EncodeRequest{
			InputPath:  path,
			Password:   password,
			ChunkBytes: chunkBytes,
			Progress:   reporter,
		})
	}
}

func isShardPath(path string) bool {
	_, _, ok := pipeline.ParseShardPath(path)
	return ok
}

func hasLegacySuffix(path string) bool {
	if isLegacyHexPath(path) {
		return false
	}
	return len(path) > len(legacy.StandardSuffix) && path[len(path)-len(legacy.StandardSuffix):] == legacy.StandardSuffix
}

func isLegacyHexPath(path string) bool {
	_, _, ok := legacy.SplitHexName(path)
	return ok
}

func runLegacyStandardEncode(cmd *cobra.Command, path string) error {
	password, err := ResolvePassword(cmd.InOrStdin(), cmd.OutOrStdout(), true)
	if err != nil {
		return err
	}
	defer clear(password)

	data, err := legacy.ReadFile(path)
	if err != nil {
		return err
	}

	schedule := scheduleFor(password)
	container, err := legacy.EncryptStandard(schedule, data)
	if err != nil {
		return phnxerrors.Wrap("encrypt legacy container", path, err)
	}

	return os.WriteFile(path+legacy.StandardSuffix, container, 0o600)
}

func runLegacyStandardDecode(cmd *cobra.Command, path string) error {
	password, err := ResolvePassword(cmd.InOrStdin(), cmd.OutOrStdout(), false)
	if err != nil {
		return err
	}
	defer clear(password)

	data, err := legacy.ReadFile(path)
	if err != nil {
		return err
	}

	// Legacy decode needs its own key schedule since it never touches the
	// shard pipeline's KeyMaterial helper.
	schedule := scheduleFor(password)
	plain, err := legacyDecryptStandard(schedule, data)
	if err != nil {
		return err
	}

	out := path[:len(path)-len(legacy.StandardSuffix)]
	return os.WriteFile(out, plain, 0o600)
}

func runLegacyHexDecode(cmd *cobra.Command, path string) error {
	base, digits, ok := legacy.SplitHexName(path)
	if !ok {
		return phnxerrors.Wrap("parse legacy hex name", path, phnxerrors.ErrFileFormat)
	}

	password, err := ResolvePassword(cmd.InOrStdin(), cmd.OutOrStdout(), false)
	if err != nil {
		return err
	}
	defer clear(password)

	data, err := legacy.ReadFile(path)
	if err != nil {
		return err
	}

	schedule := scheduleFor(password)
	plain, err := legacy.DecryptHex(schedule, data, digits)
	if err != nil {
		return err
	}

	return os.WriteFile(base, plain, 0o600)
}

func clear(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Command phnx splits a file into 8 encrypted, error-corrected shards, or
// reassembles one from any 7 of them.
package main

import (
	"fmt"
	"os"

	"phnx/internal/cli"
	phnxerrors "phnx/internal/errors"
	"phnx/internal/selftest"
)

const version = "1.0.0"

func main() {
	if len(os.Args) == 1 {
		runSelfTestAndUsage()
		return
	}
	os.Exit(cli.Execute())
}

func runSelfTestAndUsage() {
	if err := selftest.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "self-test failed: %v\n", err)
		os.Exit(phnxerrors.ExitCode(err))
	}

	fmt.Printf("phnx %s\n\n", version)
	fmt.Println("usage: phnx <file>")
	fmt.Println()
	fmt.Println("  Given a plain file, encrypts it and writes 8 shards named")
	fmt.Println("  <file>.phnx_A through <file>.phnx_H.")
	fmt.Println()
	fmt.Println("  phnx -c <file>  writes a single legacy <file>.encrypted instead.")
	fmt.Println()
	fmt.Println("  Given any one .phnx_[A-H] shard, .encrypted file, or")
	fmt.Println("  .encrypted-XXXXXXXX file, reassembles and decrypts the original.")
	fmt.Println()
	fmt.Println("  Password is read from PHNX_PASSWORD if set, otherwise prompted.")
}

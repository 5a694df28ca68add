package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	zxcvbn "github.com/Picocrypt/zxcvbn-go"
	phnxerrors "phnx/internal/errors"
)

// passwordEnvVar lets scripts and CI supply a password without a TTY.
const passwordEnvVar = "PHNX_PASSWORD"

// ResolvePassword returns the password to use for one operation: the
// environment variable if set, otherwise an interactive prompt. confirm
// requests a second prompt that must match, used only on encode so a typo
// doesn't lock the user out of their own shards.
func ResolvePassword(in io.Reader, out io.Writer, confirm bool) ([]byte, error) {
	if env := os.Getenv(passwordEnvVar); env != "" {
		return []byte(env), nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		reader := bufio.NewReader(in)
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, phnxerrors.Wrap("read password", "", err)
		}
		return []byte(trimNewline(line)), nil
	}

	fmt.Fprint(out, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return nil, phnxerrors.Wrap("read password", "", err)
	}

	if !confirm {
		return first, nil
	}

	warnIfWeak(out, first)

	fmt.Fprint(out, "Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return nil, phnxerrors.Wrap("read password", "", err)
	}
	if string(first) != string(second) {
		return nil, phnxerrors.Wrap("confirm password", "", phnxerrors.ErrPasswordMismatch)
	}
	return first, nil
}

func warnIfWeak(out io.Writer, password []byte) {
	result := zxcvbn.PasswordStrength(string(password), nil)
	if result.Score < 3 {
		fmt.Fprintf(out, "warning: password strength score %d/4, consider a longer passphrase\n", result.Score)
	}
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var errPasswordMismatch = errors.New("passwords do not match")

type PasswordPrompt func() (string, error)

// TerminalPasswordPrompt reads the password twice without echo. It returns nil
// when stdin is not a terminal.
func TerminalPasswordPrompt(stdin *os.File, out io.Writer) PasswordPrompt {
	if stdin == nil || !term.IsTerminal(int(stdin.Fd())) {
		return nil
	}

	fd := int(stdin.Fd())
	return func() (string, error) {
		first, err := readHidden(fd, out, "New password: ")
		if err != nil {
			return "", err
		}
		second, err := readHidden(fd, out, "Repeat password: ")
		if err != nil {
			return "", err
		}
		if first != second {
			return "", errPasswordMismatch
		}
		return first, nil
	}
}

func readHidden(fd int, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	value, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(value)), nil
}

package client

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNoTerminal is returned when a password is needed, none was given on the
// command line and stdin cannot be used for a hidden prompt.
var ErrNoTerminal = errors.New("no password given and stdin is not a terminal")

// ErrPasswordMismatch is returned when a confirmation prompt does not match.
var ErrPasswordMismatch = errors.New("passwords do not match")

// PasswordReader asks the user for a secret without echoing it.
type PasswordReader func(prompt string) (string, error)

// terminalPassword reads from the controlling terminal on stdin. The prompt
// goes to stderr so that stdout stays clean for piping.
func terminalPassword(stderr io.Writer) PasswordReader {
	return func(prompt string) (string, error) {
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return "", ErrNoTerminal
		}

		fmt.Fprint(stderr, prompt)
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(stderr)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(password), nil
	}
}

// resolvePassword returns given when set and prompts otherwise. With confirm
// the user has to type the password twice.
func resolvePassword(read PasswordReader, given, prompt string, confirm bool) (string, error) {
	if given != "" {
		return given, nil
	}

	password, err := read("Enter " + prompt)
	if err != nil {
		return "", err
	}
	if password == "" {
		return "", errors.New("password must not be empty")
	}

	if confirm {
		again, err := read("Repeat " + prompt)
		if err != nil {
			return "", err
		}
		if again != password {
			return "", ErrPasswordMismatch
		}
	}
	return password, nil
}

package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

var errNotTerminal = errors.New("standard input is not a terminal")

// promptPassword 在终端读取口令，不回显
func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errNotTerminal
	}

	fmt.Fprint(os.Stderr, prompt)
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// terminalPrompter collects negotiation values from the controlling
// terminal. Masked values are read without echo; verified values are
// read twice and must match.
type terminalPrompter struct{}

func (terminalPrompter) PromptValue(prompt string, masked, verify bool) (string, error) {
	if !masked {
		fmt.Fprintf(os.Stderr, "%s: ", prompt)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	v, err := readMasked(prompt)
	if err != nil {
		return "", err
	}
	if verify {
		again, err := readMasked("Verify " + strings.ToLower(prompt))
		if err != nil {
			return "", err
		}
		if v != again {
			return "", fmt.Errorf("values do not match")
		}
	}
	return v, nil
}

func readMasked(prompt string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

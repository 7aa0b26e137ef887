package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// terminalConfirmer asks on the attached terminal and accepts y/yes.
type terminalConfirmer struct {
	in  io.Reader
	out io.Writer
}

func (t *terminalConfirmer) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(t.out, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(t.in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

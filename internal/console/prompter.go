package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputClosed is returned once the player's input stream has ended.
var ErrInputClosed = errors.New("input closed")

// Prompter shows a prompt and blocks until the player submits a line.
type Prompter interface {
	ReadLine(prompt string) (string, error)
}

// LinePrompter reads newline-terminated answers from a plain reader.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// Ensure LinePrompter implements Prompter interface
var _ Prompter = (*LinePrompter)(nil)

// NewLinePrompter writes prompts to out and reads answers from in.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (p *LinePrompter) ReadLine(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", ErrInputClosed
			}
			// Last line without a trailing newline.
			return strings.TrimRight(line, "\r"), nil
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

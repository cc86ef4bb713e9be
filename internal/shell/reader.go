package shell

import (
	"bufio"
	"fmt"
	"io"
)

// LineReader yields one input line at a time and returns io.EOF at the end
// of input. *term.Terminal satisfies it.
type LineReader interface {
	ReadLine() (string, error)
}

// promptReader prints a prompt before reading each line.
type promptReader struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

// NewPromptReader reads lines from r, writing prompt to w before each read.
// An empty prompt prints nothing.
func NewPromptReader(r io.Reader, w io.Writer, prompt string) LineReader {
	return &promptReader{
		scanner: bufio.NewScanner(r),
		out:     w,
		prompt:  prompt,
	}
}

// ReadLine implements LineReader.
func (p *promptReader) ReadLine() (string, error) {
	if p.prompt != "" {
		fmt.Fprint(p.out, p.prompt)
	}
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.scanner.Text(), nil
}

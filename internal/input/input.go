// Package input contains the readers used to get sentence input for the
// interactive parser session from CLI or other sources of input.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Reader reads one sentence of input at a time. Both implementations in this
// package skip blank lines and return io.EOF at end of input.
type Reader interface {
	// ReadSentence reads the next non-blank line of input.
	ReadSentence() (string, error)

	// Close cleans up any resources associated with the Reader.
	Close() error
}

// DirectReader reads sentences from any generic input stream directly. It
// can be used with any io.Reader but does not sanitize the input of control
// and escape sequences.
type DirectReader struct {
	r *bufio.Reader
}

// InteractiveReader reads sentences from stdin using a go implementation of
// the GNU Readline library. This keeps input clear of all typing and editing
// escape sequences and enables the use of line history. This should in
// general only be used when directly connected to a TTY.
//
// InteractiveReader should not be used directly; instead, create one with
// [NewInteractiveReader].
type InteractiveReader struct {
	rl *readline.Instance
}

// NewDirectReader creates a DirectReader and initializes a buffered reader
// on the provided reader.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader creates an InteractiveReader and initializes
// readline. The returned Reader must have Close() called on it before
// disposal to properly teardown readline resources.
func NewInteractiveReader() (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "> ",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveReader{rl: rl}, nil
}

// Close is here so DirectReader implements Reader. For now it doesn't do
// anything as the DirectReader does not create resources, but callers should
// treat it as though it must be called before disposal.
func (dr *DirectReader) Close() error {
	return nil
}

// Close cleans up readline resources associated with the InteractiveReader.
func (ir *InteractiveReader) Close() error {
	return ir.rl.Close()
}

// ReadSentence reads the next line from the stream. This function blocks
// until a line containing non-space characters is read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (dr *DirectReader) ReadSentence() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = dr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
	}

	return line, nil
}

// ReadSentence reads the next line from stdin. This function blocks until a
// line containing non-space characters is read.
//
// If at end of input or interrupted, the returned string will be empty and
// error will be io.EOF. If any other error occurs, the returned string will
// be empty and error will be that error.
func (ir *InteractiveReader) ReadSentence() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = ir.rl.Readline()
		if err == readline.ErrInterrupt {
			return "", io.EOF
		}
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
	}

	return line, nil
}

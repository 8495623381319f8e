package console

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// Conn is a line-oriented terminal connection over an input and an output stream.
//
// Reads happen on a background goroutine so that ReadLine can honour
// context cancellation while the player is idle.
type Conn struct {
	reader *bufio.Reader
	out    io.Writer
	mu     sync.Mutex

	start sync.Once
	lines chan string
	// final is the error that ended input; set before lines is closed.
	final error
}

// NewConn wraps in and out.
//
// Precondition: in and out must be non-nil.
func NewConn(in io.Reader, out io.Writer) *Conn {
	return &Conn{
		reader: bufio.NewReaderSize(in, 4096),
		out:    out,
		lines:  make(chan string),
	}
}

// ReadLine returns the next line of input without its line terminator.
// Control characters other than tab are dropped.
//
// Postcondition: Returns the line, the input error (io.EOF at end of input)
// on this and every later call, or ctx.Err(). A line typed after cancellation
// is delivered to the next call.
func (c *Conn) ReadLine(ctx context.Context) (string, error) {
	c.start.Do(func() { go c.pump() })
	select {
	case line, ok := <-c.lines:
		if !ok {
			return "", c.final
		}
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *Conn) pump() {
	for {
		line, err := c.readLine()
		if err != nil {
			c.final = err
			close(c.lines)
			return
		}
		c.lines <- line
	}
}

func (c *Conn) readLine() (string, error) {
	var line bytes.Buffer
	for {
		b, err := c.reader.ReadByte()
		if err != nil {
			if err == io.EOF && line.Len() > 0 {
				return line.String(), nil
			}
			return line.String(), err
		}
		if b == '\n' {
			break
		}
		if b == '\r' {
			next, err := c.reader.Peek(1)
			if err == nil && len(next) > 0 && next[0] == '\n' {
				_, _ = c.reader.ReadByte()
			}
			break
		}
		if b < 32 && b != '\t' {
			continue
		}
		line.WriteByte(b)
	}
	return line.String(), nil
}

// WriteLine writes text followed by a newline.
func (c *Conn) WriteLine(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.out, "%s\n", text)
	return err
}

// WritePrompt writes a prompt without a trailing newline.
func (c *Conn) WritePrompt(prompt string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprint(c.out, prompt)
	return err
}

// Package stream provides the token-oriented command source and the
// line-oriented response sink. Commands are whitespace-delimited tokens, not
// lines; responses are written one line per recognized command.
package stream

import (
	"bufio"
	"io"
	"strings"
)

const bufferSize = 1 << 20 // 1MB

// TokenReader yields whitespace-delimited tokens from an input stream.
type TokenReader struct {
	r *bufio.Reader
}

// NewTokenReader wraps r with a large read buffer.
func NewTokenReader(r io.Reader) *TokenReader {
	return &TokenReader{r: bufio.NewReaderSize(r, bufferSize)}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// Next returns the next token. It returns io.EOF when the stream is
// exhausted before any token byte is read.
func (t *TokenReader) Next() (string, error) {
	var b byte
	var err error
	for {
		b, err = t.r.ReadByte()
		if err != nil {
			return "", err
		}
		if !isSpace(b) {
			break
		}
	}

	var sb strings.Builder
	sb.WriteByte(b)
	for {
		b, err = t.r.ReadByte()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
		if isSpace(b) {
			return sb.String(), nil
		}
		sb.WriteByte(b)
	}
}

// LineWriter writes response lines through a large buffer.
type LineWriter struct {
	w *bufio.Writer
}

// NewLineWriter wraps w with a large write buffer.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: bufio.NewWriterSize(w, bufferSize)}
}

// WriteLine writes s followed by a newline.
func (l *LineWriter) WriteLine(s string) error {
	if _, err := l.w.WriteString(s); err != nil {
		return err
	}
	return l.w.WriteByte('\n')
}

// Flush drains the buffer to the underlying writer.
func (l *LineWriter) Flush() error {
	return l.w.Flush()
}

package curl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/shapestone/shape-curl/internal/tokenizer"
)

// Decoder reads curl commands from an input stream.
//
// A command ends at the first newline that is neither escaped by a trailing
// backslash nor inside a quoted span. Blank lines and lines starting with '#'
// between commands are skipped.
//
// A single Decoder is not safe for concurrent use; create one per goroutine
// or serialize access externally.
type Decoder struct {
	r    *bufio.Reader
	line int // lines consumed so far
	err  error
}

// NewDecoder returns a new decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Decode reads the next command and stores it in v.
// v must be a *Command, a *Request, or implement Unmarshaler.
// At end of input Decode returns io.EOF.
func (dec *Decoder) Decode(v interface{}) error {
	text, err := dec.Next()
	if err != nil {
		return err
	}
	return Unmarshal([]byte(text), v)
}

// DecodeCommand reads and parses the next command.
func (dec *Decoder) DecodeCommand() (Command, error) {
	text, err := dec.Next()
	if err != nil {
		return nil, err
	}
	return Parse(text)
}

// Next returns the raw text of the next command without parsing it.
// At end of input Next returns io.EOF. Text ending inside a quote at end of
// input is returned as is, so parsing it reports the unterminated quote.
func (dec *Decoder) Next() (string, error) {
	var b strings.Builder
	for {
		line, err := dec.readLine()
		if err != nil && line == "" {
			if err == io.EOF && b.Len() > 0 {
				return b.String(), nil
			}
			if err != io.EOF {
				return "", fmt.Errorf("curl: decode line %d: %w", dec.line, err)
			}
			return "", io.EOF
		}

		if b.Len() == 0 && skippable(line) {
			if err != nil {
				return "", io.EOF
			}
			continue
		}

		b.WriteString(line)
		if !tokenizer.Incomplete(b.String()) || err != nil {
			return strings.TrimRight(b.String(), "\r\n"), nil
		}
	}
}

// Line returns the number of lines consumed so far.
func (dec *Decoder) Line() int {
	return dec.line
}

// readLine reads one line including its terminator. The final line of a
// stream may come back together with io.EOF.
func (dec *Decoder) readLine() (string, error) {
	if dec.err != nil {
		return "", dec.err
	}
	line, err := dec.r.ReadString('\n')
	if line != "" {
		dec.line++
	}
	if err != nil {
		dec.err = err
	}
	return line, err
}

func skippable(line string) bool {
	t := strings.TrimSpace(line)
	return t == "" || strings.HasPrefix(t, "#")
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shapestone/shape-curl/internal/log"
	"github.com/shapestone/shape-curl/pkg/curl"
)

// input is one command's text and the line it ended on (0 for arguments).
type input struct {
	text string
	line int
}

// readInputs collects command texts from args, file, or r, in that order
// of preference. A single argument is taken as command text; several
// arguments are taken as words already split by the shell.
func readInputs(args []string, file string, r io.Reader) ([]input, error) {
	switch {
	case len(args) == 1:
		return []input{{text: args[0]}}, nil
	case len(args) > 1:
		words := make([]string, len(args))
		for i, a := range args {
			words[i] = curl.Quote(a)
		}
		return []input{{text: strings.Join(words, " ")}}, nil
	case file != "":
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		return decodeInputs(f)
	default:
		return decodeInputs(r)
	}
}

func decodeInputs(r io.Reader) ([]input, error) {
	dec := curl.NewDecoder(r)
	var inputs []input
	for {
		text, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input{text: text, line: dec.Line()})
	}
	log.Logger.Debugf("read %d commands", len(inputs))
	return inputs, nil
}

// where names an input in error messages.
func (in input) where() string {
	if in.line == 0 {
		return "command"
	}
	return fmt.Sprintf("command ending on line %d", in.line)
}

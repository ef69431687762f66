package curl

import (
	"io"

	"github.com/shapestone/shape-curl/internal/fastparser"
)

// Validate checks that input is a well-formed curl command: it starts with
// curl, closes every quote, gives every value-taking option a value and names
// exactly one URL.
// Returns nil if valid, or a *ParseError identifying the problem.
func Validate(input string) error {
	if _, err := fastparser.Parse(input); err != nil {
		return convertError(err)
	}
	return nil
}

// ValidateReader reads all data from r and validates it as one curl command.
func ValidateReader(r io.Reader) error {
	data, err := readAll(r)
	if err != nil {
		return err
	}
	return Validate(string(data))
}

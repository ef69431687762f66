package fastparser

import "fmt"

// ErrorKind classifies a fatal parse failure.
type ErrorKind int

const (
	NotCurl            ErrorKind = iota + 1 // first word is not "curl"
	UnterminatedQuote                       // quoted span open at end of input
	MissingURL                              // no positional word
	MissingValue                            // value-taking option without a value
)

func (k ErrorKind) String() string {
	switch k {
	case NotCurl:
		return "not-a-curl-command"
	case UnterminatedQuote:
		return "unterminated-quote"
	case MissingURL:
		return "missing-URL"
	case MissingValue:
		return "missing-value-for-option"
	default:
		return "unknown"
	}
}

// Error is a fatal parse failure. Position is the 1-indexed rune position of
// the offending word in the joined command text (0 if unknown).
type Error struct {
	Kind     ErrorKind
	Message  string
	Position int
	Token    string // raw word that caused the failure, if any
}

func (e *Error) Error() string {
	if e.Position > 0 {
		return fmt.Sprintf("curl: parse error at position %d: %s", e.Position, e.Message)
	}
	return fmt.Sprintf("curl: %s", e.Message)
}

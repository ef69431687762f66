package curl

import (
	"errors"
	"fmt"

	"github.com/shapestone/shape-curl/internal/fastparser"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	KindNotCurl            ErrorKind = iota + 1 // first word is not "curl"
	KindUnterminatedQuote                       // a quoted span is still open at end of input
	KindMissingURL                              // no URL in the command
	KindMissingValue                            // value-taking option without a value
	KindUnexpectedArgument                      // an argument that cannot be rendered, built or folded into a request
)

// Sentinel errors matched by ParseError.Is.
var (
	ErrNotCurl            = errors.New("curl: not a curl command")
	ErrUnterminatedQuote  = errors.New("curl: unterminated quote")
	ErrMissingURL         = errors.New("curl: missing URL")
	ErrMissingValue       = errors.New("curl: missing value for option")
	ErrUnexpectedArgument = errors.New("curl: unexpected argument")
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotCurl:
		return "not-a-curl-command"
	case KindUnterminatedQuote:
		return "unterminated-quote"
	case KindMissingURL:
		return "missing-URL"
	case KindMissingValue:
		return "missing-value-for-option"
	case KindUnexpectedArgument:
		return "unexpected-argument"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindNotCurl:
		return ErrNotCurl
	case KindUnterminatedQuote:
		return ErrUnterminatedQuote
	case KindMissingURL:
		return ErrMissingURL
	case KindMissingValue:
		return ErrMissingValue
	case KindUnexpectedArgument:
		return ErrUnexpectedArgument
	default:
		return nil
	}
}

// ParseError represents an error that occurred while parsing a curl command.
type ParseError struct {
	Kind     ErrorKind
	Message  string // human-readable error message
	Position int    // 1-indexed rune position in the joined command text (0 if unknown)
	Token    string // raw word that caused the error, if any
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Position > 0 {
		return fmt.Sprintf("curl: parse error at position %d: %s", e.Position, e.Message)
	}
	return fmt.Sprintf("curl: %s", e.Message)
}

// Is reports whether target is the sentinel for e's kind.
func (e *ParseError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && s == target
}

func newParseError(kind ErrorKind, format string, args ...interface{}) *ParseError {
	return &ParseError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

var errorKinds = map[fastparser.ErrorKind]ErrorKind{
	fastparser.NotCurl:           KindNotCurl,
	fastparser.UnterminatedQuote: KindUnterminatedQuote,
	fastparser.MissingURL:        KindMissingURL,
	fastparser.MissingValue:      KindMissingValue,
}

// convertError turns internal parser errors into *ParseError and passes
// anything else through.
func convertError(err error) error {
	var fe *fastparser.Error
	if !errors.As(err, &fe) {
		return err
	}
	return &ParseError{
		Kind:     errorKinds[fe.Kind],
		Message:  fe.Message,
		Position: fe.Position,
		Token:    fe.Token,
	}
}

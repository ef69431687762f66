package curl

import (
	"strings"

	"github.com/shapestone/shape-curl/internal/fastparser"
)

// Option describes one entry of the curl option table.
type Option struct {
	Short      string // "-d", or "" for long-only options
	Long       string // "--data", or "" for short-only options
	Kind       Kind   // variant produced for this option
	TakesValue bool
}

// Options returns the known curl options sorted by name.
func Options() []Option {
	internal := fastparser.Options()
	opts := make([]Option, len(internal))
	for i, o := range internal {
		opts[i] = publicOption(o)
	}
	return opts
}

// Lookup returns the option for an identifier such as "-X" or "--data-raw".
func Lookup(identifier string) (Option, bool) {
	o, ok := fastparser.Lookup(identifier)
	if !ok {
		return Option{}, false
	}
	return publicOption(o), true
}

func publicOption(o fastparser.Option) Option {
	return Option{
		Short:      o.Short,
		Long:       o.Long,
		Kind:       kindOf(o.Kind),
		TakesValue: o.Arity == fastparser.ArityValue,
	}
}

// New builds the variant an identifier produces when given data, the same
// way Parse would classify "identifier data". An empty identifier builds a
// positional URL. Unknown options become a Flag carrying data, and so do
// boolean options given non-empty data, as Parse does for "identifier=data".
// New("-k", "") is a plain boolean Flag.
//
//	New("-H", "Accept: */*")  // Header{Identifier: "-H", Key: "Accept", Value: "*/*"}
//	New("-X", "POST")         // Method{Identifier: "-X", Name: "POST", HasName: true}
//	New("", "example.com")    // URL{Raw: "example.com", Host: "example.com", Path: "example.com"}
func New(identifier, data string) (Curl, error) {
	if identifier == "" {
		if data == "" {
			return nil, newParseError(KindMissingURL, "missing URL")
		}
		return fromURL("", fastparser.ParseURL(data)), nil
	}
	if !strings.HasPrefix(identifier, "-") {
		return nil, newParseError(KindUnexpectedArgument, "%q is not an option", identifier)
	}

	o, ok := fastparser.Lookup(identifier)
	if !ok {
		return Flag{Identifier: identifier, Value: data, HasValue: true}, nil
	}
	if o.Arity == fastparser.ArityNone {
		if data != "" {
			return Flag{Identifier: identifier, Value: data, HasValue: true}, nil
		}
		return Flag{Identifier: identifier}, nil
	}

	switch o.Kind {
	case fastparser.KindURL:
		if data == "" {
			return nil, newParseError(KindMissingValue, "missing value for option %s", identifier)
		}
		return fromURL(identifier, fastparser.ParseURL(data)), nil
	case fastparser.KindMethod:
		return Method{Identifier: identifier, Name: data, HasName: true}, nil
	case fastparser.KindHeader:
		key, value := fastparser.SplitHeader(data)
		return Header{Identifier: identifier, Key: key, Value: value}, nil
	case fastparser.KindData:
		return Data{Identifier: identifier, Value: data}, nil
	default:
		return Flag{Identifier: identifier, Value: data, HasValue: true}, nil
	}
}

// NewFlag builds a Flag with no value. Identifiers of value-taking options
// fail with KindMissingValue.
func NewFlag(identifier string) (Curl, error) {
	if !strings.HasPrefix(identifier, "-") {
		return nil, newParseError(KindUnexpectedArgument, "%q is not an option", identifier)
	}
	if o, ok := fastparser.Lookup(identifier); ok && o.Arity == fastparser.ArityValue {
		return nil, newParseError(KindMissingValue, "missing value for option %s", identifier)
	}
	return Flag{Identifier: identifier}, nil
}

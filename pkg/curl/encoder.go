package curl

import (
	"strings"

	"github.com/shapestone/shape-curl/internal/fastparser"
)

// appendCommand serializes a Command as "curl ARG ARG ...".
// Exactly one URL is required, as Parse would.
func appendCommand(buf []byte, cmd Command, multiline bool) ([]byte, error) {
	urls := 0
	for _, c := range cmd {
		if _, ok := c.(URL); ok {
			urls++
		}
	}
	switch {
	case urls == 0:
		return buf, newParseError(KindMissingURL, "missing URL")
	case urls > 1:
		return buf, newParseError(KindUnexpectedArgument, "command has %d URLs", urls)
	}

	buf = append(buf, "curl"...)
	for i, c := range cmd {
		if multiline {
			buf = appendContinuation(buf)
		} else {
			buf = append(buf, ' ')
		}

		var err error
		buf, err = appendArg(buf, c, i == len(cmd)-1)
		if err != nil {
			return buf, err
		}
	}
	return buf, nil
}

// appendArg serializes one argument. last reports whether nothing follows
// it, which lets a positional URL starting with '-' sit behind "--".
func appendArg(buf []byte, c Curl, last bool) ([]byte, error) {
	switch v := c.(type) {
	case URL:
		if v.Raw == "" {
			return buf, newParseError(KindMissingValue, "URL is empty")
		}
		if v.Identifier != "" {
			if err := checkIdentifier(v.Identifier, fastparser.KindURL); err != nil {
				return buf, err
			}
			buf = appendWord(buf, v.Identifier)
			buf = append(buf, ' ')
			return appendWord(buf, v.Raw), nil
		}
		if strings.HasPrefix(v.Raw, "-") {
			if !last {
				return buf, newParseError(KindUnexpectedArgument, "URL %q looks like an option and is not the last argument", v.Raw)
			}
			buf = append(buf, "-- "...)
		}
		return appendWord(buf, v.Raw), nil

	case Method:
		if err := checkIdentifier(v.Identifier, fastparser.KindMethod); err != nil {
			return buf, err
		}
		if !v.HasName {
			return buf, newParseError(KindMissingValue, "missing value for option %s", v.Identifier)
		}
		return appendOption(buf, v.Identifier, v.Name), nil

	case Header:
		if err := checkIdentifier(v.Identifier, fastparser.KindHeader); err != nil {
			return buf, err
		}
		line := v.Key + ":"
		if v.Value != "" {
			line += " " + v.Value
		}
		return appendOption(buf, v.Identifier, line), nil

	case Data:
		if err := checkIdentifier(v.Identifier, fastparser.KindData); err != nil {
			return buf, err
		}
		return appendOption(buf, v.Identifier, v.Value), nil

	case Flag:
		return appendFlag(buf, v)

	default:
		return buf, newParseError(KindUnexpectedArgument, "cannot render %s", describe(c))
	}
}

func appendFlag(buf []byte, f Flag) ([]byte, error) {
	if !strings.HasPrefix(f.Identifier, "-") {
		return buf, newParseError(KindUnexpectedArgument, "flag %q is not an option", f.Identifier)
	}

	o, known := fastparser.Lookup(f.Identifier)
	switch {
	case known && o.Kind != fastparser.KindFlag:
		return buf, newParseError(KindUnexpectedArgument, "option %s is a %s, not a flag", f.Identifier, kindOf(o.Kind))
	case known && o.Arity == fastparser.ArityValue:
		if !f.HasValue {
			return buf, newParseError(KindMissingValue, "missing value for option %s", f.Identifier)
		}
		return appendOption(buf, f.Identifier, f.Value), nil
	case !f.HasValue:
		return appendWord(buf, f.Identifier), nil
	default:
		// Booleans and unknown options only keep a value in the attached form.
		return appendWord(buf, f.Identifier+"="+f.Value), nil
	}
}

// checkIdentifier makes sure identifier re-parses as the same variant.
func checkIdentifier(identifier string, kind fastparser.Kind) error {
	o, ok := fastparser.Lookup(identifier)
	if !ok || o.Kind != kind {
		return newParseError(KindUnexpectedArgument, "%q is not a %s option", identifier, kindOf(kind))
	}
	return nil
}

// appendOption appends "IDENT VALUE".
func appendOption(buf []byte, identifier, value string) []byte {
	buf = appendWord(buf, identifier)
	buf = append(buf, ' ')
	return appendWord(buf, value)
}

// Package curl parses curl command lines into typed arguments.
//
// A command such as
//
//	curl -X POST https://api.example.com/items -H 'Content-Type: application/json' -d '{"a":1}'
//
// becomes a Command: an ordered list of URL, Method, Header, Data and Flag
// values, one per argument, in the order they were written.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple goroutines.
// Each call creates its own parser; the option table is read-only.
//
// # Parsing APIs
//
//   - Parse/ParseReader - Fast direct parsing into a Command
//   - ParseAST - shape-core AST (ArrayDataNode of ObjectNodes)
//   - Validate - Syntax check only
//   - NewDecoder - Streaming reader of several commands
//   - ToRequest - Fold a Command into the request curl would send
package curl

// Kind identifies the variant of a Curl value.
type Kind int

const (
	KindURL Kind = iota
	KindMethod
	KindHeader
	KindData
	KindFlag
)

// String returns the lowercase variant name used in AST nodes and CLI output.
func (k Kind) String() string {
	switch k {
	case KindURL:
		return "url"
	case KindMethod:
		return "method"
	case KindHeader:
		return "header"
	case KindData:
		return "data"
	case KindFlag:
		return "flag"
	default:
		return "unknown"
	}
}

// Curl is one classified argument of a curl command. It is implemented only
// by URL, Method, Header, Data and Flag.
type Curl interface {
	Kind() Kind
	isCurl()
}

// URL is the request target. Path holds the host string when the target has
// no path segment, so "https://example.com" has Path "example.com".
type URL struct {
	Identifier string // "--url" when given as an option, empty when positional
	Raw        string
	Scheme     string
	Host       string
	Path       string
	Query      string
	Fragment   string
}

// Method is an explicit request method (-X / --request).
type Method struct {
	Identifier string
	Name       string
	HasName    bool
}

// Header is one request header (-H / --header), split on the first colon.
type Header struct {
	Identifier string
	Key        string
	Value      string
}

// Data is one body fragment (-d, --data, --data-raw, --data-urlencode,
// --data-binary). An @file reference is kept as written.
type Data struct {
	Identifier string
	Value      string
}

// Flag is any other option, known or not.
type Flag struct {
	Identifier string
	Value      string
	HasValue   bool
}

func (URL) Kind() Kind    { return KindURL }
func (Method) Kind() Kind { return KindMethod }
func (Header) Kind() Kind { return KindHeader }
func (Data) Kind() Kind   { return KindData }
func (Flag) Kind() Kind   { return KindFlag }

func (URL) isCurl()    {}
func (Method) isCurl() {}
func (Header) isCurl() {}
func (Data) isCurl()   {}
func (Flag) isCurl()   {}

// Command is a parsed curl command in input order.
type Command []Curl

// URL returns the request target.
func (c Command) URL() (URL, bool) {
	for _, a := range c {
		if u, ok := a.(URL); ok {
			return u, true
		}
	}
	return URL{}, false
}

// Methods returns every Method in order.
func (c Command) Methods() []Method {
	var out []Method
	for _, a := range c {
		if m, ok := a.(Method); ok {
			out = append(out, m)
		}
	}
	return out
}

// Headers returns every Header in order.
func (c Command) Headers() []Header {
	var out []Header
	for _, a := range c {
		if h, ok := a.(Header); ok {
			out = append(out, h)
		}
	}
	return out
}

// Data returns every Data fragment in order.
func (c Command) Data() []Data {
	var out []Data
	for _, a := range c {
		if d, ok := a.(Data); ok {
			out = append(out, d)
		}
	}
	return out
}

// Flags returns every Flag in order.
func (c Command) Flags() []Flag {
	var out []Flag
	for _, a := range c {
		if f, ok := a.(Flag); ok {
			out = append(out, f)
		}
	}
	return out
}

// Has reports whether any argument was written with the given identifier.
func (c Command) Has(identifier string) bool {
	for _, a := range c {
		if Identifier(a) == identifier {
			return true
		}
	}
	return false
}

// Identifier returns the option text an argument was written with, or ""
// for a positional URL.
func Identifier(a Curl) string {
	switch v := a.(type) {
	case URL:
		return v.Identifier
	case Method:
		return v.Identifier
	case Header:
		return v.Identifier
	case Data:
		return v.Identifier
	case Flag:
		return v.Identifier
	default:
		return ""
	}
}

// Marshaler is the interface implemented by types that can render
// themselves as curl command text.
type Marshaler interface {
	MarshalCurl() ([]byte, error)
}

// Unmarshaler is the interface implemented by types that can fill
// themselves from curl command text.
type Unmarshaler interface {
	UnmarshalCurl([]byte) error
}

// Package fastparser classifies curl command text directly into a flat list of
// arguments without building an AST. It is the engine behind pkg/curl.
package fastparser

import (
	"fmt"
	"strings"

	"github.com/shapestone/shape-curl/internal/tokenizer"
)

// Arg is one classified element of a curl command.
type Arg struct {
	Kind       Kind
	Identifier string // option as written ("-X", "--data-raw"); empty for a positional URL
	Value      string // option value; raw text for URLs; header value for headers
	HasValue   bool
	Key        string // header name (KindHeader only)
	URL        URL    // KindURL only
	Offset     int    // rune offset of the source word
}

// Parser classifies the words of one curl command in a single pass.
type Parser struct {
	input        string
	words        []tokenizer.Word
	pos          int
	args         []Arg
	sawURL       bool
	endOfOptions bool
	open         int // index in args of an unknown option written just before the current word, or -1
}

// NewParser creates a parser for one command.
func NewParser(input string) *Parser {
	p := &Parser{}
	initParser(p, input)
	return p
}

// initParser initializes a parser in-place (stack-friendly, avoids heap alloc).
func initParser(p *Parser, input string) {
	p.input = input
	p.words = nil
	p.pos = 0
	p.args = nil
	p.sawURL = false
	p.endOfOptions = false
	p.open = -1
}

// Parse parses a curl command and returns its arguments in input order.
func Parse(input string) ([]Arg, error) {
	var p Parser
	initParser(&p, input)
	return p.Parse()
}

// Parse runs the guard, classifies every word and checks that a URL was seen.
// On error no arguments are returned.
func (p *Parser) Parse() ([]Arg, error) {
	words, err := tokenizer.Split(p.input)
	if err != nil {
		return nil, splitError(err)
	}
	p.words = words

	if len(words) == 0 {
		return nil, &Error{Kind: NotCurl, Message: "does not start with curl: empty command"}
	}
	if words[0].Value != "curl" {
		return nil, p.errorf(NotCurl, words[0], "does not start with curl: got %q", words[0].Value)
	}
	p.pos = 1

	for p.pos < len(p.words) {
		w := p.next()
		if err := p.parseWord(w); err != nil {
			return nil, err
		}
	}

	if !p.sawURL {
		return nil, &Error{Kind: MissingURL, Message: "missing URL"}
	}
	return p.args, nil
}

func (p *Parser) parseWord(w tokenizer.Word) error {
	open := p.open
	p.open = -1

	v := w.Value
	switch {
	case p.endOfOptions:
		p.positional(w, -1)
		return nil
	case v == "--" && w.Quote == tokenizer.QuoteNone:
		p.endOfOptions = true
		return nil
	case strings.HasPrefix(v, "--"):
		return p.parseLong(w)
	case len(v) > 1 && v[0] == '-':
		return p.parseShort(w)
	case v == "-":
		p.emit(Arg{Kind: KindFlag, Identifier: v, Offset: w.Offset})
		return nil
	default:
		p.positional(w, open)
		return nil
	}
}

// positional handles a word that is not an option. The first one is the URL.
// After that, a word directly following an unknown option becomes its value
// and any other word is skipped.
func (p *Parser) positional(w tokenizer.Word, open int) {
	switch {
	case w.Value == "":
	case !p.sawURL:
		p.addURL(w.Value, "", w)
	case open >= 0:
		p.args[open].Value = w.Value
		p.args[open].HasValue = true
	}
}

// addURL emits the command's URL. Later URLs are ignored.
func (p *Parser) addURL(raw, identifier string, w tokenizer.Word) {
	if p.sawURL {
		return
	}
	p.sawURL = true
	p.emit(Arg{
		Kind:       KindURL,
		Identifier: identifier,
		Value:      raw,
		HasValue:   true,
		URL:        ParseURL(raw),
		Offset:     w.Offset,
	})
}

func (p *Parser) next() tokenizer.Word {
	w := p.words[p.pos]
	p.pos++
	return w
}

// take consumes the following word as an option value.
func (p *Parser) take() (string, bool) {
	if p.pos >= len(p.words) {
		return "", false
	}
	return p.next().Value, true
}

func (p *Parser) emit(a Arg) {
	p.args = append(p.args, a)
}

func (p *Parser) errorf(kind ErrorKind, w tokenizer.Word, format string, args ...interface{}) error {
	return &Error{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Position: w.Offset + 1,
		Token:    w.Raw,
	}
}

func splitError(err error) error {
	if u, ok := err.(*tokenizer.UnterminatedError); ok {
		return &Error{
			Kind:     UnterminatedQuote,
			Message:  u.Error(),
			Position: u.Offset + 1,
			Token:    u.Raw,
		}
	}
	return &Error{Kind: UnterminatedQuote, Message: err.Error()}
}

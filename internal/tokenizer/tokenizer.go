package tokenizer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// NewTokenizer creates a tokenizer for curl command text.
// The text is a sequence of shell words separated by unquoted whitespace:
// 1. Space (runs of blanks and newlines, emitted so offsets stay exact)
// 2. Word (bare text and quoted spans glued together)
//
// Whitespace is significant here (it separates words and quoted whitespace is
// not a separator), so the default whitespace skipper is not used.
func NewTokenizer() tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		SpaceMatcher(),
		WordMatcher(),
	)
}

// NewTokenizerWithStream creates a tokenizer for curl command text using a pre-configured stream.
func NewTokenizerWithStream(stream tokenizer.Stream) tokenizer.Tokenizer {
	tok := NewTokenizer()
	tok.InitializeFromStream(stream)
	return tok
}

// SpaceMatcher matches a run of unquoted whitespace.
func SpaceMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		var value []rune
		for {
			r, ok := stream.PeekChar()
			if !ok || !isSpace(r) {
				break
			}
			stream.NextChar()
			value = append(value, r)
		}
		if len(value) == 0 {
			return nil
		}
		return tokenizer.NewToken(TokenSpace, value)
	}
}

// WordMatcher matches one shell word up to the next unquoted whitespace or EOS.
// Inside and outside quotes a backslash takes the following character with it,
// so an escaped quote never opens or closes a span. If the stream ends inside
// a quoted span the token kind is TokenUnterminated.
func WordMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		var value []rune
		var quote rune

		for {
			r, ok := stream.PeekChar()
			if !ok {
				break
			}
			if quote == 0 && isSpace(r) {
				break
			}
			stream.NextChar()
			value = append(value, r)

			switch {
			case r == '\\':
				if next, ok := stream.PeekChar(); ok {
					stream.NextChar()
					value = append(value, next)
				}
			case quote == 0 && (r == '\'' || r == '"'):
				quote = r
			case r == quote:
				quote = 0
			}
		}

		if len(value) == 0 {
			return nil
		}
		if quote != 0 {
			return tokenizer.NewToken(TokenUnterminated, value)
		}
		return tokenizer.NewToken(TokenWord, value)
	}
}

// Word is one lexical unit of a curl command.
type Word struct {
	Raw    string // source text, quotes and escapes included
	Value  string // quotes stripped, escapes resolved
	Quote  Quote
	Offset int // rune offset of Raw in the joined text
}

// UnterminatedError reports a quoted span that was still open at end of input.
type UnterminatedError struct {
	Quote  rune
	Offset int // rune offset of the word holding the open span
	Raw    string
}

func (e *UnterminatedError) Error() string {
	kind := "single"
	if e.Quote == '"' {
		kind = "double"
	}
	return fmt.Sprintf("unterminated %s quote in %q", kind, e.Raw)
}

// JoinLines replaces every backslash-newline continuation with a single space.
// Other newlines are left alone; the tokenizer treats them as separators.
func JoinLines(s string) string {
	if !strings.Contains(s, "\\\n") && !strings.Contains(s, "\\\r\n") {
		return s
	}
	s = strings.ReplaceAll(s, "\\\r\n", " ")
	return strings.ReplaceAll(s, "\\\n", " ")
}

// Split joins continuation lines and tokenizes s into words.
// No words are returned when a quoted span is left open.
func Split(s string) ([]Word, error) {
	joined := JoinLines(s)

	tok := NewTokenizerWithStream(tokenizer.NewStream(joined))
	tokens, eos := tok.Tokenize()

	// The stream decodes runes, so invalid UTF-8 comes back as U+FFFD. Words
	// are sliced out of the joined text to keep their bytes.
	exact := !utf8.ValidString(joined)

	var words []Word
	offset, cursor := 0, 0
	for _, t := range tokens {
		raw := t.ValueString()
		if exact {
			n := advance(joined[cursor:], utf8.RuneCountInString(raw))
			raw = joined[cursor : cursor+n]
			cursor += n
		}
		switch t.Kind() {
		case TokenUnterminated:
			_, _, open := scan(raw)
			return nil, &UnterminatedError{Quote: open, Offset: offset, Raw: raw}
		case TokenWord:
			value, quote := Unquote(raw)
			words = append(words, Word{Raw: raw, Value: value, Quote: quote, Offset: offset})
		}
		offset += utf8.RuneCountInString(raw)
	}

	if !eos {
		return nil, fmt.Errorf("unexpected input at position %d", offset)
	}
	return words, nil
}

// Unquote strips quotes from a raw word and resolves backslash escapes.
func Unquote(raw string) (string, Quote) {
	value, quote, _ := scan(raw)
	return value, quote
}

// Incomplete reports whether s cannot be a whole command yet: it ends with a
// continuation backslash or leaves a quoted span open.
func Incomplete(s string) bool {
	trimmed := strings.TrimRight(s, "\r\n")
	if trailingBackslashes(trimmed)%2 == 1 {
		return true
	}
	_, _, open := scan(JoinLines(s))
	return open != 0
}

// scan walks raw text once, returning the resolved value, the quoting used and
// the quote character still open at the end (0 if none). Bytes are copied
// as they are, including invalid UTF-8.
func scan(raw string) (string, Quote, rune) {
	var b strings.Builder
	b.Grow(len(raw))
	var quote rune
	kind := QuoteNone

	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRuneInString(raw[i:])
		switch {
		case r == '\\':
			if i+size < len(raw) {
				_, next := utf8.DecodeRuneInString(raw[i+size:])
				b.WriteString(raw[i+size : i+size+next])
				size += next
			} else {
				b.WriteByte('\\')
			}
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
			kind = kind.join(r)
		case quote != 0 && r == quote:
			quote = 0
		default:
			b.WriteString(raw[i : i+size])
		}
		i += size
	}
	return b.String(), kind, quote
}

// advance returns the byte length of the first n runes of s, counting each
// invalid byte as one rune.
func advance(s string, n int) int {
	i := 0
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

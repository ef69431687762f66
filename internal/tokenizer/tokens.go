// Package tokenizer splits curl command text into shell words using Shape's tokenizer framework.
package tokenizer

// Token kinds for shell words.
// Quotes and escapes are kept verbatim in token values; Unquote resolves them.
const (
	TokenSpace        = "Space"        // run of unquoted whitespace (space, tab, CR, LF)
	TokenWord         = "Word"         // one shell word: bare text, quoted spans, or both
	TokenUnterminated = "Unterminated" // word that reached end of input inside a quote
)

// Quote records how a word was quoted in the source text.
type Quote int

const (
	QuoteNone   Quote = iota // bare word
	QuoteSingle              // contains '...' spans only
	QuoteDouble              // contains "..." spans only
	QuoteMixed               // contains both kinds of spans
)

func (q Quote) String() string {
	switch q {
	case QuoteSingle:
		return "single"
	case QuoteDouble:
		return "double"
	case QuoteMixed:
		return "mixed"
	default:
		return "none"
	}
}

func (q Quote) join(r rune) Quote {
	next := QuoteSingle
	if r == '"' {
		next = QuoteDouble
	}
	if q == QuoteNone || q == next {
		return next
	}
	return QuoteMixed
}

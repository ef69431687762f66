package fastparser

import (
	"strings"

	"github.com/shapestone/shape-curl/internal/tokenizer"
)

// shortPart is one letter of a short-option word after cluster expansion.
type shortPart struct {
	opt         Option
	ident       string
	attached    string
	hasAttached bool
}

// parseLong classifies a "--name" or "--name=value" word.
func (p *Parser) parseLong(w tokenizer.Word) error {
	name, value, hasEq := strings.Cut(w.Value, "=")

	if opt, ok := Lookup(name); ok {
		return p.apply(opt, name, value, hasEq, w)
	}

	if isNegated(name) {
		p.emit(Arg{Kind: KindFlag, Identifier: name, Value: value, HasValue: hasEq, Offset: w.Offset})
		return nil
	}

	p.unknown(name, value, hasEq, w)
	return nil
}

// unknown emits an option missing from the table. It never consumes the next
// word; without an attached value it is left open for a positional word
// after the URL.
func (p *Parser) unknown(name, value string, hasEq bool, w tokenizer.Word) {
	p.emit(Arg{Kind: KindFlag, Identifier: name, Value: value, HasValue: hasEq, Offset: w.Offset})
	if !hasEq {
		p.open = len(p.args) - 1
	}
}

// isNegated reports whether name is "--no-<x>" for a boolean long option x.
func isNegated(name string) bool {
	base, ok := strings.CutPrefix(name, "--no-")
	if !ok || base == "" {
		return false
	}
	opt, ok := Lookup("--" + base)
	return ok && opt.Arity == ArityNone
}

// parseShort classifies "-X", "-XPOST", "-d=x" and clusters such as "-sSL".
func (p *Parser) parseShort(w tokenizer.Word) error {
	parts, ok := expandCluster(w.Value)
	if !ok {
		name, value, hasEq := strings.Cut(w.Value, "=")
		p.unknown(name, value, hasEq, w)
		return nil
	}
	for _, part := range parts {
		if err := p.apply(part.opt, part.ident, part.attached, part.hasAttached, w); err != nil {
			return err
		}
	}
	return nil
}

// expandCluster splits a short-option word into its letters. A value-taking
// letter ends the cluster and takes the remainder (minus one leading '=') as
// its value. It reports false if any letter is not a known short option.
func expandCluster(word string) ([]shortPart, bool) {
	rs := []rune(word)
	parts := make([]shortPart, 0, len(rs)-1)

	for i := 1; i < len(rs); i++ {
		ident := "-" + string(rs[i])
		opt, ok := Lookup(ident)
		if !ok {
			return nil, false
		}

		rest := string(rs[i+1:])
		eq := strings.HasPrefix(rest, "=")
		if eq {
			rest = rest[1:]
		}

		if opt.Arity == ArityValue {
			parts = append(parts, shortPart{opt: opt, ident: ident, attached: rest, hasAttached: eq || rest != ""})
			return parts, true
		}
		if eq {
			parts = append(parts, shortPart{opt: opt, ident: ident, attached: rest, hasAttached: true})
			return parts, true
		}
		parts = append(parts, shortPart{opt: opt, ident: ident})
	}
	return parts, true
}

// apply resolves the value of a known option and emits it. A boolean option
// keeps a value only when one is attached with '='.
func (p *Parser) apply(opt Option, ident, attached string, hasAttached bool, w tokenizer.Word) error {
	if opt.Arity == ArityNone {
		p.emit(Arg{Kind: opt.Kind, Identifier: ident, Value: attached, HasValue: hasAttached, Offset: w.Offset})
		return nil
	}

	value, ok := attached, hasAttached
	if !ok {
		value, ok = p.take()
	}
	if !ok {
		return p.errorf(MissingValue, w, "missing value for option %s", ident)
	}

	switch opt.Kind {
	case KindURL:
		if value == "" {
			return p.errorf(MissingValue, w, "missing value for option %s", ident)
		}
		p.addURL(value, ident, w)
	case KindHeader:
		key, val := SplitHeader(value)
		p.emit(Arg{Kind: KindHeader, Identifier: ident, Key: key, Value: val, HasValue: true, Offset: w.Offset})
	default:
		p.emit(Arg{Kind: opt.Kind, Identifier: ident, Value: value, HasValue: true, Offset: w.Offset})
	}
	return nil
}

// SplitHeader splits "Key: Value" on the first colon and trims both sides.
// Without a colon the whole text is the key.
func SplitHeader(s string) (key, value string) {
	k, v, ok := strings.Cut(s, ":")
	if !ok {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(k), strings.TrimSpace(v)
}

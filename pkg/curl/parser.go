package curl

import (
	"bytes"
	"io"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-curl/internal/fastparser"
	"github.com/shapestone/shape-curl/internal/parser"
	"github.com/shapestone/shape-curl/internal/tokenizer"
)

// Parse parses one curl command.
//
// The input may span several lines joined by trailing backslashes. The first
// word must be "curl" and a URL must be present, either positional or
// through --url. Only the first URL is kept: a later positional word that
// directly follows an unknown option becomes that option's value, and other
// extra URLs are dropped. Options missing from the table never fail a parse.
// Values keep their bytes, invalid UTF-8 included. On failure the error is a
// *ParseError and no partial Command is returned.
func Parse(input string) (Command, error) {
	args, err := fastparser.Parse(input)
	if err != nil {
		return nil, convertError(err)
	}
	return fromArgs(args), nil
}

// ParseReader reads all data from r and parses it as one curl command.
func ParseReader(r io.Reader) (Command, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// ParseAST parses a curl command into a shape-core AST.
//
// The result is an ast.ArrayDataNode holding one ast.ObjectNode per argument:
//
//	[ { "kind": "url", "raw": "https://a.b/p", "scheme": "https", "host": "a.b", "path": "/p" },
//	  { "kind": "method", "identifier": "-X", "name": "POST" },
//	  { "kind": "header", "identifier": "-H", "key": "Accept", "value": "*/*" },
//	  { "kind": "data", "identifier": "-d", "value": "a=1" },
//	  { "kind": "flag", "identifier": "-k" } ]
func ParseAST(input string) (ast.SchemaNode, error) {
	node, err := parser.NewParser(input).Parse()
	if err != nil {
		return nil, convertError(err)
	}
	return node, nil
}

// Incomplete reports whether input needs another line: it ends in a
// continuation backslash or leaves a quote open.
func Incomplete(input string) bool {
	return tokenizer.Incomplete(input)
}

// readAll reads all data from r.
func readAll(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	_, err := buf.ReadFrom(r)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

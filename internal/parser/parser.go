// Package parser implements an AST parser for curl commands.
// It produces shape-core AST nodes (ObjectNode, LiteralNode, ArrayDataNode)
// from curl command text.
//
// A command is mapped to an ArrayDataNode holding one ObjectNode per argument,
// in input order. Every object carries a "kind" property:
//
//	[ { "kind": "url", "raw": "https://a.b/p?q=1", "scheme": "https",
//	    "host": "a.b", "path": "/p", "query": "q=1" },
//	  { "kind": "method", "identifier": "-X", "name": "POST" },
//	  { "kind": "header", "identifier": "-H", "key": "Accept", "value": "*/*" },
//	  { "kind": "data", "identifier": "-d", "value": "a=1" },
//	  { "kind": "flag", "identifier": "-o", "value": "out.txt" } ]
//
// A flag without a value has no "value" property. A URL supplied through
// --url also carries "identifier".
package parser

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-curl/internal/fastparser"
)

var zeroPos = ast.Position{}

// Parser produces AST nodes from curl command text.
type Parser struct {
	input string
}

// NewParser creates a new AST parser for the given input.
func NewParser(input string) *Parser {
	return &Parser{input: input}
}

// Parse parses the command and returns an AST ArrayDataNode.
func (p *Parser) Parse() (ast.SchemaNode, error) {
	args, err := fastparser.Parse(p.input)
	if err != nil {
		return nil, err
	}
	return ArgsToNode(args), nil
}

// ArgsToNode converts classified arguments to an ArrayDataNode.
func ArgsToNode(args []fastparser.Arg) ast.SchemaNode {
	elements := make([]ast.SchemaNode, len(args))
	for i, a := range args {
		elements[i] = argToNode(a)
	}
	return ast.NewArrayDataNode(elements, zeroPos)
}

func argToNode(a fastparser.Arg) ast.SchemaNode {
	props := map[string]ast.SchemaNode{
		"kind": ast.NewLiteralNode(a.Kind.String(), zeroPos),
	}

	switch a.Kind {
	case fastparser.KindURL:
		u := a.URL
		props["raw"] = ast.NewLiteralNode(a.Value, zeroPos)
		props["host"] = ast.NewLiteralNode(u.Host, zeroPos)
		props["path"] = ast.NewLiteralNode(u.Path, zeroPos)
		if a.Identifier != "" {
			props["identifier"] = ast.NewLiteralNode(a.Identifier, zeroPos)
		}
		if u.Scheme != "" {
			props["scheme"] = ast.NewLiteralNode(u.Scheme, zeroPos)
		}
		if u.Query != "" {
			props["query"] = ast.NewLiteralNode(u.Query, zeroPos)
		}
		if u.Fragment != "" {
			props["fragment"] = ast.NewLiteralNode(u.Fragment, zeroPos)
		}
	case fastparser.KindMethod:
		props["identifier"] = ast.NewLiteralNode(a.Identifier, zeroPos)
		props["name"] = ast.NewLiteralNode(a.Value, zeroPos)
	case fastparser.KindHeader:
		props["identifier"] = ast.NewLiteralNode(a.Identifier, zeroPos)
		props["key"] = ast.NewLiteralNode(a.Key, zeroPos)
		props["value"] = ast.NewLiteralNode(a.Value, zeroPos)
	default:
		props["identifier"] = ast.NewLiteralNode(a.Identifier, zeroPos)
		if a.HasValue {
			props["value"] = ast.NewLiteralNode(a.Value, zeroPos)
		}
	}

	return ast.NewObjectNode(props, zeroPos)
}

// NodeToArgs converts an AST ArrayDataNode back to classified arguments.
// URL parts are recomputed from "raw"; offsets are not kept in the AST.
func NodeToArgs(node ast.SchemaNode) ([]fastparser.Arg, error) {
	arr, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("expected ArrayDataNode, got %T", node)
	}

	elements := arr.Elements()
	args := make([]fastparser.Arg, 0, len(elements))
	for i, elem := range elements {
		a, err := NodeToArg(elem)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		args = append(args, a)
	}
	return args, nil
}

// NodeToArg converts one argument ObjectNode.
func NodeToArg(node ast.SchemaNode) (fastparser.Arg, error) {
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return fastparser.Arg{}, fmt.Errorf("expected ObjectNode, got %T", node)
	}
	props := obj.Properties()

	kind, _ := stringProp(props, "kind")
	ident, _ := stringProp(props, "identifier")
	a := fastparser.Arg{Identifier: ident}

	switch kind {
	case "url":
		raw, ok := stringProp(props, "raw")
		if !ok {
			return fastparser.Arg{}, fmt.Errorf("url node without raw")
		}
		a.Kind = fastparser.KindURL
		a.Value, a.HasValue = raw, true
		a.URL = fastparser.ParseURL(raw)
	case "method":
		a.Kind = fastparser.KindMethod
		a.Value, a.HasValue = stringProp(props, "name")
	case "header":
		a.Kind = fastparser.KindHeader
		a.Key, _ = stringProp(props, "key")
		a.Value, _ = stringProp(props, "value")
		a.HasValue = true
	case "data":
		a.Kind = fastparser.KindData
		a.Value, a.HasValue = stringProp(props, "value")
	case "flag":
		a.Kind = fastparser.KindFlag
		a.Value, a.HasValue = stringProp(props, "value")
	default:
		return fastparser.Arg{}, fmt.Errorf("unknown argument kind %q", kind)
	}

	if a.Kind != fastparser.KindURL && a.Identifier == "" {
		return fastparser.Arg{}, fmt.Errorf("%s node without identifier", kind)
	}
	return a, nil
}

func stringProp(props map[string]ast.SchemaNode, name string) (string, bool) {
	v, ok := props[name]
	if !ok {
		return "", false
	}
	lit, ok := v.(*ast.LiteralNode)
	if !ok {
		return "", false
	}
	s, ok := lit.Value().(string)
	return s, ok
}

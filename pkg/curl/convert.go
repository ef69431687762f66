package curl

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-curl/internal/fastparser"
	"github.com/shapestone/shape-curl/internal/parser"
)

// CommandToNode converts a Command to an AST ArrayDataNode in the layout
// produced by ParseAST.
func CommandToNode(cmd Command) ast.SchemaNode {
	return parser.ArgsToNode(toArgs(cmd))
}

// NodeToCommand converts an AST node from ParseAST or CommandToNode back to a
// Command.
func NodeToCommand(node ast.SchemaNode) (Command, error) {
	args, err := parser.NodeToArgs(node)
	if err != nil {
		return nil, err
	}
	return fromArgs(args), nil
}

// NodeToInterface converts an AST node to native Go types.
func NodeToInterface(node ast.SchemaNode) interface{} {
	switch n := node.(type) {
	case *ast.LiteralNode:
		return n.Value()
	case *ast.ArrayDataNode:
		elements := n.Elements()
		arr := make([]interface{}, len(elements))
		for i, elem := range elements {
			arr[i] = NodeToInterface(elem)
		}
		return arr
	case *ast.ObjectNode:
		props := n.Properties()
		m := make(map[string]interface{}, len(props))
		for k, v := range props {
			m[k] = NodeToInterface(v)
		}
		return m
	default:
		return nil
	}
}

func fromArgs(args []fastparser.Arg) Command {
	cmd := make(Command, len(args))
	for i, a := range args {
		cmd[i] = fromArg(a)
	}
	return cmd
}

func fromArg(a fastparser.Arg) Curl {
	switch a.Kind {
	case fastparser.KindURL:
		return fromURL(a.Identifier, a.URL)
	case fastparser.KindMethod:
		return Method{Identifier: a.Identifier, Name: a.Value, HasName: a.HasValue}
	case fastparser.KindHeader:
		return Header{Identifier: a.Identifier, Key: a.Key, Value: a.Value}
	case fastparser.KindData:
		return Data{Identifier: a.Identifier, Value: a.Value}
	default:
		return Flag{Identifier: a.Identifier, Value: a.Value, HasValue: a.HasValue}
	}
}

func fromURL(identifier string, u fastparser.URL) URL {
	return URL{
		Identifier: identifier,
		Raw:        u.Raw,
		Scheme:     u.Scheme,
		Host:       u.Host,
		Path:       u.Path,
		Query:      u.Query,
		Fragment:   u.Fragment,
	}
}

func toArgs(cmd Command) []fastparser.Arg {
	args := make([]fastparser.Arg, 0, len(cmd))
	for _, c := range cmd {
		if a, ok := toArg(c); ok {
			args = append(args, a)
		}
	}
	return args
}

func toArg(c Curl) (fastparser.Arg, bool) {
	switch v := c.(type) {
	case URL:
		return fastparser.Arg{
			Kind:       fastparser.KindURL,
			Identifier: v.Identifier,
			Value:      v.Raw,
			HasValue:   true,
			URL:        fastparser.ParseURL(v.Raw),
		}, true
	case Method:
		return fastparser.Arg{Kind: fastparser.KindMethod, Identifier: v.Identifier, Value: v.Name, HasValue: v.HasName}, true
	case Header:
		return fastparser.Arg{Kind: fastparser.KindHeader, Identifier: v.Identifier, Key: v.Key, Value: v.Value, HasValue: true}, true
	case Data:
		return fastparser.Arg{Kind: fastparser.KindData, Identifier: v.Identifier, Value: v.Value, HasValue: true}, true
	case Flag:
		return fastparser.Arg{Kind: fastparser.KindFlag, Identifier: v.Identifier, Value: v.Value, HasValue: v.HasValue}, true
	default:
		return fastparser.Arg{}, false
	}
}

// kindOf maps the internal category onto the public Kind.
func kindOf(k fastparser.Kind) Kind {
	switch k {
	case fastparser.KindURL:
		return KindURL
	case fastparser.KindMethod:
		return KindMethod
	case fastparser.KindHeader:
		return KindHeader
	case fastparser.KindData:
		return KindData
	default:
		return KindFlag
	}
}

func describe(c Curl) string {
	if c == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %q", c.Kind(), Identifier(c))
}

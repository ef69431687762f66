package curl

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Render converts an AST node (from ParseAST or CommandToNode) back to curl
// command text.
//
// The node must be an ArrayDataNode of argument ObjectNodes, each with a
// "kind" property of url, method, header, data or flag.
func Render(node ast.SchemaNode) ([]byte, error) {
	if _, ok := node.(*ast.ArrayDataNode); !ok {
		return nil, fmt.Errorf("curl: Render: expected ArrayDataNode, got %T", node)
	}

	cmd, err := NodeToCommand(node)
	if err != nil {
		return nil, fmt.Errorf("curl: Render: %w", err)
	}
	return Marshal(cmd)
}

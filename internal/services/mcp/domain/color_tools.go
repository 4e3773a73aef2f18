package domain

import (
	"context"
	"fmt"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddColorNodeTool defines the MCP tool schema for adding color nodes.
func AddColorNodeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "add_color_node",
		Description: "Add a node to the grade of the clip under the playhead",
	}
}

// AddColorNodeHandler adds a color node to the current clip.
func AddColorNodeHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[ColorNodeInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input ColorNodeInput) (string, []string) {
		nodeType := input.NodeType
		if nodeType == "" {
			nodeType = resolve.DefaultColorNodeType
		}
		return reply(conn.AddColorNode(ctx, nodeType), func(node resolve.ColorNode) string {
			if label := conn.ColorNodeLabel(ctx, node); label.OK() && label.Value != "" {
				return fmt.Sprintf("Added %s node '%s'.", nodeType, label.Value)
			}
			return fmt.Sprintf("Added %s node.", nodeType)
		}, fmt.Sprintf("Failed to add %s node.", nodeType)), nil
	})
}

// ListColorNodesTool defines the MCP tool schema for listing color nodes.
func ListColorNodesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_color_nodes",
		Description: "List the nodes in the grade of the clip under the playhead",
	}
}

// ListColorNodesHandler lists node labels, one per line.
func ListColorNodesHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[EmptyInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, _ EmptyInput) (string, []string) {
		nodes := conn.ColorNodes(ctx)
		if !nodes.OK() {
			return reply(nodes, nil, "Failed to list color nodes."), nil
		}
		var labels []string
		for i, node := range nodes.Value {
			label := conn.ColorNodeLabel(ctx, node)
			if label.OK() && label.Value != "" {
				labels = append(labels, fmt.Sprintf("%d: %s", i+1, label.Value))
			} else {
				labels = append(labels, fmt.Sprintf("%d", i+1))
			}
		}
		return lines(labels, "No color nodes on the current clip."), nil
	})
}

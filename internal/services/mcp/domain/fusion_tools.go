package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddFusionNodeTool defines the MCP tool schema for adding Fusion nodes.
func AddFusionNodeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "add_fusion_node",
		Description: "Add a tool to the current Fusion composition and set its inputs",
	}
}

// AddFusionNodeHandler adds a Fusion tool and sets its inputs.
func AddFusionNodeHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[FusionNodeInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input FusionNodeInput) (string, []string) {
		res := conn.CreateFusionNode(ctx, input.NodeType, input.Inputs, input.X, input.Y)
		if !res.OK() && res.Value != nil {
			return fmt.Sprintf("Added %s node but failed to set its inputs.", input.NodeType), nil
		}
		return reply(res, func(tool resolve.FusionTool) string {
			if name := conn.FusionToolName(ctx, tool); name.OK() && name.Value != "" {
				return fmt.Sprintf("Added %s node '%s'.", input.NodeType, name.Value)
			}
			return fmt.Sprintf("Added %s node.", input.NodeType)
		}, fmt.Sprintf("Failed to add %s node.", input.NodeType)), nil
	})
}

// ExecuteLuaTool defines the MCP tool schema for running Lua in Fusion.
func ExecuteLuaTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "execute_lua",
		Description: "Run a Lua script in Fusion",
	}
}

// ExecuteLuaHandler runs a script after check accepts it. A nil check sends
// every script.
func ExecuteLuaHandler(conn *resolve.Connector, notify ResourceUpdateNotifier, check ScriptCheck) mcp.ToolHandlerFor[ScriptInput, any] {
	validate := func(input ScriptInput) string {
		if check == nil {
			return ""
		}
		if err := check(input.Script); err != nil {
			return fmt.Sprintf("Invalid Lua script: %v", err)
		}
		return ""
	}
	return validatedToolHandler(conn, notify, validate, func(ctx context.Context, input ScriptInput) (string, []string) {
		return reply(conn.ExecuteLua(ctx, input.Script), func(value any) string {
			if value == nil {
				return "Script executed."
			}
			return "Script returned: " + renderValue(value)
		}, "Failed to execute script."), nil
	})
}

func renderValue(value any) string {
	if s, isString := value.(string); isString {
		return s
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(data)
}

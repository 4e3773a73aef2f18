package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// InvalidPageText lists the pages open_page accepts.
var InvalidPageText = "Invalid page. Use: " + strings.Join(resolve.Pages, ", ")

// OpenPageTool defines the MCP tool schema for switching pages.
func OpenPageTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "open_page",
		Description: "Open a specific page in DaVinci Resolve",
	}
}

// OpenPageHandler switches pages. Page names match case-insensitively and
// an unknown name is refused before the connection is consulted.
func OpenPageHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[PageInput, any] {
	validate := func(input PageInput) string {
		if !resolve.ValidPage(fold(input.PageName)) {
			return InvalidPageText
		}
		return ""
	}
	return validatedToolHandler(conn, notify, validate, func(ctx context.Context, input PageInput) (string, []string) {
		return reply(conn.OpenPage(ctx, fold(input.PageName)),
			done[bool](fmt.Sprintf("Opened '%s' page.", input.PageName)),
			fmt.Sprintf("Failed to open '%s'.", input.PageName)), nil
	})
}

// GetCurrentPageTool defines the MCP tool schema for reading the current page.
func GetCurrentPageTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_current_page",
		Description: "Show which page DaVinci Resolve has open",
	}
}

// GetCurrentPageHandler reports the open page.
func GetCurrentPageHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[EmptyInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, _ EmptyInput) (string, []string) {
		return reply(conn.CurrentPage(ctx), func(page string) string {
			return fmt.Sprintf("Current page: %s", page)
		}, "Failed to read the current page."), nil
	})
}

package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// toolCallTimeout caps a whole tool invocation, which may chain several
// connector calls.
const toolCallTimeout = 2 * time.Minute

type toolInvocationContext struct {
	RunCtx       context.Context
	Cancel       context.CancelFunc
	InvocationID string
}

func newToolInvocationContext(ctx context.Context) (toolInvocationContext, error) {
	invocationID, err := NewInvocationID()
	if err != nil {
		return toolInvocationContext{}, fmt.Errorf("generate invocation id: %w", err)
	}
	runCtx, cancel := context.WithTimeout(ctx, toolCallTimeout)
	return toolInvocationContext{RunCtx: runCtx, Cancel: cancel, InvocationID: invocationID}, nil
}

// textResult wraps a sentence as the tool's only content.
func (c toolInvocationContext) textResult(text string) (*mcp.CallToolResult, any, error) {
	result := CallToolResultWithMetadata(ToolCallMetadata{InvocationID: c.InvocationID})
	result.Content = []mcp.Content{&mcp.TextContent{Text: text}}
	return result, nil, nil
}

// toolFunc is the body of a tool: it returns the sentence to show and the
// resources whose content changed.
type toolFunc[In any] func(ctx context.Context, input In) (text string, updated []string)

// validator inspects the raw input before any connector access and returns
// a refusal sentence, or "" to proceed.
type validator[In any] func(input In) string

// toolHandler adapts body to the SDK handler shape. body only runs while the
// connector holds an application handle.
func toolHandler[In any](conn *resolve.Connector, notify ResourceUpdateNotifier, body toolFunc[In]) mcp.ToolHandlerFor[In, any] {
	return validatedToolHandler(conn, notify, nil, body)
}

// validatedToolHandler is toolHandler with an argument check that runs
// ahead of the connection check.
func validatedToolHandler[In any](conn *resolve.Connector, notify ResourceUpdateNotifier, validate validator[In], body toolFunc[In]) mcp.ToolHandlerFor[In, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input In) (*mcp.CallToolResult, any, error) {
		callContext, err := newToolInvocationContext(ctx)
		if err != nil {
			return nil, nil, err
		}
		defer callContext.Cancel()

		if validate != nil {
			if refusal := validate(input); refusal != "" {
				return callContext.textResult(refusal)
			}
		}
		if !conn.IsConnected() {
			return callContext.textResult(NotConnectedText)
		}
		text, updated := body(callContext.RunCtx, input)
		NotifyResourceUpdates(ctx, notify, updated...)
		return callContext.textResult(text)
	}
}

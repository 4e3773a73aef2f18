package resolve

import (
	"context"
	"sort"
)

// ExecuteLua runs a Lua script inside Fusion and returns its answer.
func (c *Connector) ExecuteLua(ctx context.Context, script string) Result[any] {
	c.mu.Lock()
	defer c.mu.Unlock()
	fusion := c.fusionLocked(ctx)
	if !fusion.OK() {
		return propagate[any](fusion)
	}
	return forward(ctx, c, "Execute", func(ctx context.Context) (any, error) {
		return fusion.Value.Execute(ctx, script)
	})
}

// CurrentComp returns the active Fusion composition.
func (c *Connector) CurrentComp(ctx context.Context) Result[Composition] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.compLocked(ctx)
}

func (c *Connector) compLocked(ctx context.Context) Result[Composition] {
	fusion := c.fusionLocked(ctx)
	if !fusion.OK() {
		return propagate[Composition](fusion)
	}
	return present("no Fusion composition", forward(ctx, c, "GetCurrentComp", fusion.Value.GetCurrentComp))
}

// CreateFusionNode adds a tool of nodeType at (x, y) in the current
// composition, then sets each input in key order. A rejected input does not
// undo the node; the first rejected or failed input is reported.
func (c *Connector) CreateFusionNode(ctx context.Context, nodeType string, inputs map[string]any, x, y int) Result[FusionTool] {
	c.mu.Lock()
	defer c.mu.Unlock()
	comp := c.compLocked(ctx)
	if !comp.OK() {
		return propagate[FusionTool](comp)
	}
	tool := produced("AddTool", forward(ctx, c, "AddTool", func(ctx context.Context) (FusionTool, error) {
		return comp.Value.AddTool(ctx, nodeType, x, y)
	}))
	if !tool.OK() {
		return tool
	}
	keys := make([]string, 0, len(inputs))
	for key := range inputs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		set := truthy("SetInput", forward(ctx, c, "SetInput", func(ctx context.Context) (bool, error) {
			return tool.Value.SetInput(ctx, key, inputs[key])
		}))
		if !set.OK() {
			res := propagate[FusionTool](set)
			res.Value = tool.Value
			return res
		}
	}
	return tool
}

// FusionToolName returns the name Fusion gave tool.
func (c *Connector) FusionToolName(ctx context.Context, tool FusionTool) Result[string] {
	if tool == nil {
		return missing[string]("no Fusion tool")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return forward(ctx, c, "GetName", tool.GetName)
}

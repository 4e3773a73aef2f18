package resolve

import (
	"context"
)

// DefaultColorNodeType is the node AddColorNode creates when none is named.
const DefaultColorNodeType = "Corrector"

// ColorNodes lists the grade nodes of the clip under the playhead.
func (c *Connector) ColorNodes(ctx context.Context) Result[[]ColorNode] {
	c.mu.Lock()
	defer c.mu.Unlock()
	graph := c.nodeGraphLocked(ctx)
	if !graph.OK() {
		return propagate[[]ColorNode](graph)
	}
	res := forward(ctx, c, "GetNodes", graph.Value.GetNodes)
	if res.OK() && res.Value == nil {
		res.Value = []ColorNode{}
	}
	return res
}

// AddColorNode adds a node of nodeType to the current clip's grade.
func (c *Connector) AddColorNode(ctx context.Context, nodeType string) Result[ColorNode] {
	if nodeType == "" {
		nodeType = DefaultColorNodeType
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	graph := c.nodeGraphLocked(ctx)
	if !graph.OK() {
		return propagate[ColorNode](graph)
	}
	return produced("AddNode", forward(ctx, c, "AddNode", func(ctx context.Context) (ColorNode, error) {
		return graph.Value.AddNode(ctx, nodeType)
	}))
}

// ColorNodeLabel returns the label of node.
func (c *Connector) ColorNodeLabel(ctx context.Context, node ColorNode) Result[string] {
	if node == nil {
		return missing[string]("no color node")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return forward(ctx, c, "GetLabel", node.GetLabel)
}

func (c *Connector) nodeGraphLocked(ctx context.Context) Result[NodeGraph] {
	item := c.currentItemLocked(ctx)
	if !item.OK() {
		return propagate[NodeGraph](item)
	}
	return present("no node graph", forward(ctx, c, "GetNodeGraph", item.Value.GetNodeGraph))
}

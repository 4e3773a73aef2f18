// Package domain translates MCP resources and tools into connector calls.
//
// Every handler makes one or two connector calls and renders the outcome
// as a short sentence. Domain failures (not connected, nothing open, name
// not found, rejected by Resolve) are text content, never Go errors, so an
// assistant always gets something it can show the user.
package domain

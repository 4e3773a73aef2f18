// Package branding holds product naming shared by commands and servers.
package branding

// AppName is the display name of the bridged application.
const AppName = "DaVinci Resolve"

// ServerName is the MCP implementation name advertised to clients.
const ServerName = AppName + " MCP"

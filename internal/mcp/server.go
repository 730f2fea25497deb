// Package mcp exposes syswatch over the Model Context Protocol so AI
// agents can take snapshots, run analyses, and inspect temp files.
package mcp

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps the MCP server instance.
type Server struct {
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server with all syswatch tools registered.
func NewServer(version string) *Server {
	s := server.NewMCPServer("syswatch", version, server.WithLogging())
	registerTools(s)
	return &Server{mcpServer: s}
}

// Start runs the server in stdio mode (blocking).
func (s *Server) Start(ctx context.Context) error {
	stdioServer := server.NewStdioServer(s.mcpServer)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

func registerTools(s *server.MCPServer) {
	snapshotTool := mcp.NewTool("get_snapshot",
		mcp.WithDescription("Take one system snapshot: per-core CPU, memory, swap, network counters, disks, and temperatures. Fast (~1s)."),
	)
	s.AddTool(snapshotTool, handleGetSnapshot)

	analyzeTool := mcp.NewTool("analyze_system",
		mcp.WithDescription("Run a short monitoring window and return CPU/memory/network trends with pattern levels, security findings, and recommendations as JSON."),
		mcp.WithNumber("samples",
			mcp.Description("Number of snapshots to collect (2-30, default 5)"),
		),
		mcp.WithNumber("interval_seconds",
			mcp.Description("Seconds between snapshots (default 2)"),
		),
	)
	s.AddTool(analyzeTool, handleAnalyzeSystem)

	tempTool := mcp.NewTool("list_temp_files",
		mcp.WithDescription("Inventory the platform temp directories: total size plus the largest files with their ages."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of files to return (default 20)"),
		),
	)
	s.AddTool(tempTool, handleListTempFiles)
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ostashkin/syswatch/internal/monitor"
	"github.com/ostashkin/syswatch/internal/output"
	"github.com/ostashkin/syswatch/internal/security"
	"github.com/ostashkin/syswatch/internal/snapshot"
)

// snapshotTimeout bounds a single snapshot read.
const snapshotTimeout = 30 * time.Second

// analyzeTimeout bounds a full sampling window.
const analyzeTimeout = 5 * time.Minute

// maxAnalyzeSamples caps the per-call window so an agent cannot park the
// server in a multi-hour run.
const maxAnalyzeSamples = 30

func handleGetSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()

	provider := snapshot.NewSystemProvider()
	// The inventory walk is the analyze/temp tools' job; keep snapshots fast.
	provider.TempRoots = nil

	snap, err := provider.Snapshot(ctx)
	if err != nil {
		return errResult(fmt.Sprintf("snapshot failed: %v", err)), nil
	}
	return jsonResult(snap)
}

func handleAnalyzeSystem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, cancel := context.WithTimeout(ctx, analyzeTimeout)
	defer cancel()

	args := getArgs(request)
	samples := intArg(args, "samples", 5)
	if samples < 2 {
		samples = 2
	}
	if samples > maxAnalyzeSamples {
		samples = maxAnalyzeSamples
	}
	interval := intArg(args, "interval_seconds", 2)
	if interval < 1 {
		interval = 1
	}

	runner := &monitor.Runner{
		Provider: snapshot.NewSystemProvider(),
		Interval: time.Duration(interval) * time.Second,
		Samples:  samples,
		Security: security.DefaultConfig(),
		Progress: output.NewProgress(false, false),
	}
	report, err := runner.Run(ctx)
	if err != nil {
		return errResult(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	// The full process table and temp inventory would dwarf the trends.
	report.Latest = nil
	return jsonResult(report)
}

func handleListTempFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := getArgs(request)
	limit := intArg(args, "limit", 20)

	set := snapshot.CollectTempFiles(snapshot.DefaultTempRoots(), limit)
	return jsonResult(set)
}

// --- helpers ---

func getArgs(request mcp.CallToolRequest) map[string]interface{} {
	if request.Params.Arguments == nil {
		return map[string]interface{}{}
	}
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return args
}

// intArg extracts a numeric argument with a default value.
func intArg(args map[string]interface{}, key string, defaultVal int) int {
	val, ok := args[key]
	if !ok || val == nil {
		return defaultVal
	}
	f, ok := val.(float64)
	if !ok {
		return defaultVal
	}
	return int(f)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errResult(fmt.Sprintf("json marshal failed: %v", err)), nil
	}
	return newTextResult(string(data)), nil
}

// newTextResult creates a successful MCP tool result with text content.
func newTextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: text,
			},
		},
	}
}

// errResult creates a tool-level error result (IsError=true), not a
// transport-level JSON-RPC error.
func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: msg,
			},
		},
	}
}

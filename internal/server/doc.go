// Package server implements the MCP (Model Context Protocol) server for the
// puzzle tiler.
//
// This package provides a JSON-RPC 2.0 server that exposes the tiling pipeline
// through the MCP protocol, so a client can inspect an image, preview a grid
// and write the segment set without shelling out to the CLI.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Read image metadata from the file header
//   - puzzle_plan: Compute segment bounds for a grid, no I/O
//   - puzzle_slice: Write the cropped square and every grid from 3x3 to 8x8
//   - puzzle_grid_preview: Draw a grid and its segment names over the square
//
// # Image Caching
//
// Decoded images are cached by path, so a preview followed by a slice of the
// same file decodes it once. puzzle_slice evicts its input when done; an image
// that is only previewed stays cached for the lifetime of the server.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New("./puzzle_segments", version)
//	if err := srv.Serve(os.Stdin, os.Stdout); err != nil {
//	    logrus.Fatal(err)
//	}
package server

package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Read an image file header and return its dimensions, format, color depth and alpha support.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "puzzle_plan",
			Description: "Compute the segment bounds of an N×N puzzle grid over a square of the given side without reading or writing any file. The last row and column absorb the remainder pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"size": map[string]interface{}{
						"type":        "integer",
						"description": "Side of the square image in pixels",
					},
					"grid_size": map[string]interface{}{
						"type":        "integer",
						"description": "Number of rows and columns (N)",
					},
				},
				"required": []string{"size", "grid_size"},
			},
		},
		{
			Name:        "puzzle_slice",
			Description: "Center-crop an image to a square and write puzzle segments for every grid from 3x3 to 8x8, named A1..H8 (letter = row, number = column). Returns every written path.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Output root directory. Defaults to the server's configured output root.",
					},
					"manifest": map[string]interface{}{
						"type":        "boolean",
						"description": "Also write manifest.json with segment bounds and average colors. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "puzzle_grid_preview",
			Description: "Return the center-cropped square with the N×N segment boundaries and segment names drawn on it, as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"grid_size": map[string]interface{}{
						"type":        "integer",
						"description": "Number of rows and columns (3-8)",
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Line color as hex (e.g., '#FF0000'). Default red",
						"default":     "#FF0000",
					},
				},
				"required": []string{"path", "grid_size"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}

package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/puzzle-tiler/internal/imaging"
	"github.com/ironsheep/puzzle-tiler/internal/tiler"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "puzzle_slice").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "puzzle_plan":
		return s.handlePuzzlePlan(args)
	case "puzzle_slice":
		return s.handlePuzzleSlice(args)
	case "puzzle_grid_preview":
		return s.handlePuzzleGridPreview(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(a.Path)
}

type puzzlePlanArgs struct {
	Size     int `json:"size"`
	GridSize int `json:"grid_size"`
}

// PlanResult lists the segments of one grid.
type PlanResult struct {
	Size     int           `json:"size"`
	GridSize int           `json:"grid_size"`
	Dir      string        `json:"dir"`
	Segments []PlanSegment `json:"segments"`
}

// PlanSegment is a segment with its file name.
type PlanSegment struct {
	Name string `json:"name"`
	tiler.Segment
}

// NewPlanResult computes the grid of gridSize over a size×size square.
func NewPlanResult(size, gridSize int) (*PlanResult, error) {
	segments, err := tiler.Plan(size, size, gridSize)
	if err != nil {
		return nil, err
	}

	result := &PlanResult{
		Size:     size,
		GridSize: gridSize,
		Dir:      tiler.GridDirName(gridSize),
		Segments: make([]PlanSegment, 0, len(segments)),
	}
	for _, seg := range segments {
		result.Segments = append(result.Segments, PlanSegment{Name: seg.Name(), Segment: seg})
	}
	return result, nil
}

func (s *Server) handlePuzzlePlan(args json.RawMessage) (interface{}, error) {
	var a puzzlePlanArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return NewPlanResult(a.Size, a.GridSize)
}

type puzzleSliceArgs struct {
	Path     string `json:"path"`
	Output   string `json:"output"`
	Manifest bool   `json:"manifest"`
}

func (s *Server) handlePuzzleSlice(args json.RawMessage) (interface{}, error) {
	var a puzzleSliceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	if a.Output == "" {
		a.Output = s.outputRoot
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	// Slicing is the last step for an image; previews load it again if needed.
	defer s.cache.Evict(a.Path)

	return tiler.ProcessImage(img, tiler.ImageID(a.Path), a.Output, tiler.Options{Manifest: a.Manifest})
}

type puzzleGridPreviewArgs struct {
	Path     string `json:"path"`
	GridSize int    `json:"grid_size"`
	Color    string `json:"color"`
}

// GridPreviewResult is a preview image for one grid size.
type GridPreviewResult struct {
	imaging.PNGResult
	GridSize int `json:"grid_size"`
}

func (s *Server) handlePuzzleGridPreview(args json.RawMessage) (interface{}, error) {
	var a puzzleGridPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.GridSize < tiler.MinGridSize || a.GridSize > tiler.MaxGridSize {
		return nil, fmt.Errorf("grid_size %d outside %d-%d", a.GridSize, tiler.MinGridSize, tiler.MaxGridSize)
	}
	if a.Color == "" {
		a.Color = "#FF0000"
	}

	// The image stays cached until a puzzle_slice of the same path.
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	square := imaging.Normalize(img)
	side := square.Bounds().Dx()
	segments, err := tiler.Plan(side, side, a.GridSize)
	if err != nil {
		return nil, err
	}

	cells := make([]imaging.LabeledRect, 0, len(segments))
	for _, seg := range segments {
		cells = append(cells, imaging.LabeledRect{Label: seg.Name(), Bounds: seg.Rect()})
	}

	encoded, err := imaging.EncodeBase64PNG(imaging.GridPreview(square, cells, a.Color))
	if err != nil {
		return nil, err
	}
	return &GridPreviewResult{PNGResult: *encoded, GridSize: a.GridSize}, nil
}

package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sjzsdu/uiforge/helper"
	"github.com/sjzsdu/uiforge/pipeline"
)

const PreviewStatusToolName = "preview_status"

// PreviewStatus 预览刷新结果的摘要
type PreviewStatus struct {
	Version      uint64                  `json:"version"`
	Entry        string                  `json:"entry"`
	Files        int                     `json:"files"`
	Errors       []pipeline.CompileError `json:"errors"`
	Placeholders []string                `json:"placeholders"`
}

func (s *Server) registerPreviewTools() {
	tool := mcp.NewTool(
		PreviewStatusToolName,
		mcp.WithDescription("Compile the project and report the preview entry, compile errors and imports that resolved to placeholder modules."),
	)
	s.addTool(tool, s.handlePreviewStatus)
}

func (s *Server) handlePreviewStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := s.session.Refresh()
	status := PreviewStatus{
		Version:      p.Version,
		Entry:        p.Entry,
		Files:        len(s.session.Files()),
		Errors:       p.Output.Errors,
		Placeholders: p.Output.Placeholders,
	}
	if status.Errors == nil {
		status.Errors = []pipeline.CompileError{}
	}
	if status.Placeholders == nil {
		status.Placeholders = []string{}
	}
	return mcp.NewToolResultText(helper.ToJSON(status)), nil
}

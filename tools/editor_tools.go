package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sjzsdu/uiforge/helper"
	"github.com/sjzsdu/uiforge/mcpserver"
	"github.com/sjzsdu/uiforge/workspace"
	"github.com/tmc/langchaingo/tools"
)

// EditorTool 以 langchaingo tools.Tool 的形式提供文本编辑命令，输入为 JSON
type EditorTool struct {
	session *workspace.Session
}

// FileManagerTool 以 langchaingo tools.Tool 的形式提供重命名和删除命令，输入为 JSON
type FileManagerTool struct {
	session *workspace.Session
}

var (
	_ tools.Tool = (*EditorTool)(nil)
	_ tools.Tool = (*FileManagerTool)(nil)
)

func NewEditorTool(session *workspace.Session) *EditorTool {
	return &EditorTool{session: session}
}

func NewFileManagerTool(session *workspace.Session) *FileManagerTool {
	return &FileManagerTool{session: session}
}

// Name 返回工具名称
func (t *EditorTool) Name() string {
	return mcpserver.EditorToolName
}

// Description 返回工具描述
func (t *EditorTool) Description() string {
	return `View, create and edit files in the virtual project. Input is a JSON object:
{"command": "view|create|str_replace|insert", "path": "/App.jsx", "file_text": "...", "old_str": "...", "new_str": "...", "insert_line": 0, "view_range": [1, -1]}`
}

// Call 执行工具，参数与 MCP 编辑工具的解析方式一致
func (t *EditorTool) Call(ctx context.Context, input string) (string, error) {
	var args map[string]any
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}
	req := mcpserver.EditorRequestFromRequest(helper.NewToolCallRequest(t.Name(), args))
	return t.session.Edit(req), nil
}

// Name 返回工具名称
func (t *FileManagerTool) Name() string {
	return "file_manager"
}

// Description 返回工具描述
func (t *FileManagerTool) Description() string {
	return `Rename, move or delete files and directories in the virtual project. Input is a JSON object:
{"command": "rename|delete", "path": "/src", "new_path": "/app"}`
}

// Call 执行工具
func (t *FileManagerTool) Call(ctx context.Context, input string) (string, error) {
	var req workspace.FileRequest
	if err := json.Unmarshal([]byte(input), &req); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}
	return t.session.Manage(req), nil
}

// CreateTools 返回作用于会话的全部工具
func CreateTools(session *workspace.Session) []tools.Tool {
	return []tools.Tool{
		NewEditorTool(session),
		NewFileManagerTool(session),
	}
}

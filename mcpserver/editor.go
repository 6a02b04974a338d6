package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sjzsdu/uiforge/helper"
	"github.com/sjzsdu/uiforge/workspace"
)

const (
	EditorToolName      = "str_replace_editor"
	FileManagerToolName = "file_manager"
)

func (s *Server) registerEditorTools() {
	// str_replace_editor
	editor := mcp.NewTool(
		EditorToolName,
		mcp.WithDescription("View, create and edit files in the virtual project. Paths are absolute, like /App.jsx."),
		mcp.WithString("command", mcp.Required(),
			mcp.Description("The command to run"),
			mcp.Enum(workspace.CommandView, workspace.CommandCreate, workspace.CommandStrReplace, workspace.CommandInsert, workspace.CommandUndoEdit)),
		mcp.WithString("path", mcp.Required(), mcp.Description("Absolute path of the file or directory")),
		mcp.WithString("file_text", mcp.Description("Content of the new file, used by create")),
		mcp.WithString("old_str", mcp.Description("Text to replace, every occurrence is replaced, used by str_replace")),
		mcp.WithString("new_str", mcp.Description("Replacement text for str_replace, or the line to insert for insert")),
		mcp.WithNumber("insert_line", mcp.Description("Line index to insert at, 0 inserts before the first line")),
		mcp.WithArray("view_range", mcp.Description("Optional [start, end] line range for view, end -1 means the last line")),
	)
	s.addTool(editor, s.handleEditor)

	// file_manager
	manager := mcp.NewTool(
		FileManagerToolName,
		mcp.WithDescription("Rename, move or delete files and directories in the virtual project."),
		mcp.WithString("command", mcp.Required(),
			mcp.Description("The command to run"),
			mcp.Enum(workspace.CommandRename, workspace.CommandDelete)),
		mcp.WithString("path", mcp.Required(), mcp.Description("Absolute path of the file or directory")),
		mcp.WithString("new_path", mcp.Description("Destination path, used by rename")),
	)
	s.addTool(manager, s.handleFileManager)
}

// EditorRequestFromRequest 将工具调用参数转换为编辑命令
//
// 空字符串的文本参数视为已提供，整数参数也接受字符串形式。
func EditorRequestFromRequest(request mcp.CallToolRequest) workspace.EditorRequest {
	req := workspace.EditorRequest{}
	req.Command, _ = helper.GetTextFromRequest(request, "command")
	req.Path, _ = helper.GetTextFromRequest(request, "path")

	if text, ok := helper.GetTextFromRequest(request, "file_text"); ok {
		req.FileText = &text
	}
	if oldStr, ok := helper.GetTextFromRequest(request, "old_str"); ok {
		req.OldStr = &oldStr
	}
	if newStr, ok := helper.GetTextFromRequest(request, "new_str"); ok {
		req.NewStr = &newStr
	}
	if line, ok := helper.GetIntFromRequest(request, "insert_line", 0); ok {
		req.InsertLine = &line
	}
	if viewRange, ok := helper.GetIntSliceFromRequest(request, "view_range"); ok {
		req.ViewRange = viewRange
	}
	return req
}

func (s *Server) handleEditor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, ok := helper.GetStringFromRequest(request, "command", ""); !ok {
		return mcp.NewToolResultError("missing required argument: command"), nil
	}
	if _, ok := helper.GetStringFromRequest(request, "path", ""); !ok {
		return mcp.NewToolResultError("missing required argument: path"), nil
	}
	return mcp.NewToolResultText(s.session.Edit(EditorRequestFromRequest(request))), nil
}

func (s *Server) handleFileManager(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	command, ok := helper.GetStringFromRequest(request, "command", "")
	if !ok {
		return mcp.NewToolResultError("missing required argument: command"), nil
	}
	path, ok := helper.GetStringFromRequest(request, "path", "")
	if !ok {
		return mcp.NewToolResultError("missing required argument: path"), nil
	}
	newPath, _ := helper.GetStringFromRequest(request, "new_path", "")

	status := s.session.Manage(workspace.FileRequest{Command: command, Path: path, NewPath: newPath})
	return mcp.NewToolResultText(status), nil
}

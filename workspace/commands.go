package workspace

import "fmt"

// 编辑器命令名
const (
	CommandView       = "view"
	CommandCreate     = "create"
	CommandStrReplace = "str_replace"
	CommandInsert     = "insert"
	CommandUndoEdit   = "undo_edit"

	CommandRename = "rename"
	CommandDelete = "delete"
)

// EditorRequest 文本编辑命令的参数
type EditorRequest struct {
	Command    string  `json:"command"`
	Path       string  `json:"path"`
	FileText   *string `json:"file_text,omitempty"`
	OldStr     *string `json:"old_str,omitempty"`
	NewStr     *string `json:"new_str,omitempty"`
	InsertLine *int    `json:"insert_line,omitempty"`
	ViewRange  []int   `json:"view_range,omitempty"`
}

// FileRequest 文件管理命令的参数
type FileRequest struct {
	Command string `json:"command"`
	Path    string `json:"path"`
	NewPath string `json:"new_path,omitempty"`
}

// Edit 执行文本编辑命令，结果总是状态字符串
func (s *Session) Edit(req EditorRequest) string {
	if req.Path == "" {
		return "Error: path is required"
	}

	switch req.Command {
	case CommandView:
		return s.View(req.Path, req.ViewRange)
	case CommandCreate:
		text := ""
		if req.FileText != nil {
			text = *req.FileText
		}
		return s.Create(req.Path, text)
	case CommandStrReplace:
		if req.OldStr == nil {
			return "Error: old_str is required for str_replace"
		}
		newStr := ""
		if req.NewStr != nil {
			newStr = *req.NewStr
		}
		return s.Replace(req.Path, *req.OldStr, newStr)
	case CommandInsert:
		if req.InsertLine == nil {
			return "Error: insert_line is required for insert"
		}
		if req.NewStr == nil {
			return "Error: new_str is required for insert"
		}
		return s.Insert(req.Path, *req.InsertLine, *req.NewStr)
	case CommandUndoEdit:
		return "Error: undo_edit command is not supported in this version. Use str_replace to revert changes."
	default:
		return fmt.Sprintf("Error: Unknown command: %s", req.Command)
	}
}

// Manage 执行重命名或删除命令
func (s *Session) Manage(req FileRequest) string {
	if req.Path == "" {
		return "Error: path is required"
	}

	switch req.Command {
	case CommandRename:
		if req.NewPath == "" {
			return "Error: new_path is required for rename"
		}
		return s.Rename(req.Path, req.NewPath)
	case CommandDelete:
		return s.Delete(req.Path)
	default:
		return fmt.Sprintf("Error: Unknown command: %s", req.Command)
	}
}

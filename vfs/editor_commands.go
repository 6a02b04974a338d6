package vfs

import (
	"fmt"
	"sort"
	"strings"
)

// 面向助手的文本编辑命令，所有结果都以状态字符串返回

// View 查看目录列表或带行号的文件内容
//
// viewRange 为 [start, end]（从 1 开始，包含两端），end 为 -1 表示到最后一行。
func (fs *FileSystem) View(path string, viewRange []int) string {
	cleanPath := NormalizePath(path)
	node, exists := fs.nodes[cleanPath]
	if !exists {
		return fmt.Sprintf("File not found: %s", cleanPath)
	}

	if node.IsDir() {
		children, _ := fs.ListDirectory(cleanPath)
		if len(children) == 0 {
			return "(empty directory)"
		}
		sort.Slice(children, func(i, j int) bool {
			return children[i].Name < children[j].Name
		})
		entries := make([]string, 0, len(children))
		for _, child := range children {
			if child.IsDir() {
				entries = append(entries, "[DIR] "+child.Name)
			} else {
				entries = append(entries, "[FILE] "+child.Name)
			}
		}
		return strings.Join(entries, "\n")
	}

	lines := splitLines(node.Content)
	start, end := clampRange(viewRange, len(lines))

	var builder strings.Builder
	for i := start; i <= end; i++ {
		if i > start {
			builder.WriteString("\n")
		}
		fmt.Fprintf(&builder, "%d\t%s", i, lines[i-1])
	}
	return builder.String()
}

// clampRange 将 1 起始的闭区间收敛到 [1, lineCount]
func clampRange(viewRange []int, lineCount int) (int, int) {
	start, end := 1, lineCount
	if len(viewRange) >= 1 {
		start = viewRange[0]
	}
	if len(viewRange) >= 2 && viewRange[1] != -1 {
		end = viewRange[1]
	}

	if start < 1 {
		start = 1
	}
	if start > lineCount {
		start = lineCount
	}
	if end > lineCount {
		end = lineCount
	}
	if end < start {
		end = start
	}
	return start, end
}

// CreateWithParents 创建文件及其缺失的父目录
func (fs *FileSystem) CreateWithParents(path, text string) string {
	cleanPath := NormalizePath(path)
	if _, err := fs.create(cleanPath, FileType, text); err != nil {
		if IsKind(err, AlreadyExists) {
			return fmt.Sprintf("Error: File already exists: %s", cleanPath)
		}
		return fmt.Sprintf("Error: Cannot create %s: %v", cleanPath, err)
	}
	return fmt.Sprintf("File created: %s", cleanPath)
}

// ReplaceInFile 将文件中所有 oldText 按字面量替换为 newText，并报告替换次数
func (fs *FileSystem) ReplaceInFile(path, oldText, newText string) string {
	cleanPath := NormalizePath(path)
	node, errMsg := fs.editableFile(cleanPath)
	if node == nil {
		return errMsg
	}

	count := 0
	if oldText != "" {
		count = strings.Count(node.Content, oldText)
	}
	if count == 0 {
		return fmt.Sprintf("Error: String not found in file: \"%s\"", oldText)
	}

	node.Content = strings.ReplaceAll(node.Content, oldText, newText)
	return fmt.Sprintf("Replaced %d occurrence(s) of the string in %s", count, cleanPath)
}

// InsertInFile 在指定行插入一行文本
//
// lineIndex 取值范围为 [0, 行数]：0 表示插在第一行之前，行数表示追加到最后一行之后。
func (fs *FileSystem) InsertInFile(path string, lineIndex int, text string) string {
	cleanPath := NormalizePath(path)
	node, errMsg := fs.editableFile(cleanPath)
	if node == nil {
		return errMsg
	}

	lines := splitLines(node.Content)
	if lineIndex < 0 || lineIndex > len(lines) {
		return fmt.Sprintf("Error: Invalid line number: %d. File has %d lines.", lineIndex, len(lines))
	}

	updated := make([]string, 0, len(lines)+1)
	updated = append(updated, lines[:lineIndex]...)
	updated = append(updated, text)
	updated = append(updated, lines[lineIndex:]...)
	node.Content = strings.Join(updated, "\n")
	return fmt.Sprintf("Text inserted at line %d in %s", lineIndex, cleanPath)
}

// editableFile 查找可编辑的文件节点，失败时返回错误信息
func (fs *FileSystem) editableFile(path string) (*Node, string) {
	node, exists := fs.nodes[path]
	if !exists {
		return nil, fmt.Sprintf("Error: File not found: %s", path)
	}
	if node.IsDir() {
		return nil, fmt.Sprintf("Error: Cannot edit a directory: %s", path)
	}
	return node, ""
}

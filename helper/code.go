package helper

import (
	"path/filepath"
	"strings"
)

var languageByExtension = map[string]string{
	".js":   "javascript",
	".jsx":  "jsx",
	".ts":   "typescript",
	".tsx":  "tsx",
	".css":  "css",
	".scss": "scss",
	".less": "less",
	".html": "html",
	".json": "json",
	".md":   "markdown",
	".svg":  "xml",
	".xml":  "xml",
	".yaml": "yaml",
	".yml":  "yaml",
	".sh":   "bash",
	".txt":  "text",
}

// GetLanguageFromExtension 根据文件扩展名返回代码块的语言标识
func GetLanguageFromExtension(ext string) string {
	return languageByExtension[strings.ToLower(ext)]
}

// CodeFence 将文件内容包装为 Markdown 代码块
func CodeFence(path, content string) string {
	fence := "```"
	for strings.Contains(content, fence) {
		fence += "`"
	}
	var b strings.Builder
	b.WriteString(fence)
	b.WriteString(GetLanguageFromExtension(filepath.Ext(path)))
	b.WriteString("\n")
	b.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(fence)
	b.WriteString("\n")
	return b.String()
}

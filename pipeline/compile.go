package pipeline

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// CompileError 单个文件的编译失败
type CompileError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// compile 将 JSX/TSX 源码转换为浏览器可直接执行的 ES 模块
func compile(filePath, source string, target api.Target) (string, *CompileError) {
	loader := api.LoaderJSX
	if IsTypeScript(filePath) {
		loader = api.LoaderTSX
	}

	result := api.Transform(source, api.TransformOptions{
		Loader:     loader,
		JSX:        api.JSXAutomatic,
		Format:     api.FormatESModule,
		Target:     target,
		Sourcefile: filePath,
		LogLevel:   api.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		return "", &CompileError{Path: filePath, Message: formatMessage(result.Errors[0])}
	}
	return string(result.Code), nil
}

// formatMessage 生成 "message (line:column)" 形式的错误信息，列号从 1 开始
func formatMessage(msg api.Message) string {
	text := strings.TrimSpace(msg.Text)
	if msg.Location == nil {
		return text
	}
	return fmt.Sprintf("%s (%d:%d)", text, msg.Location.Line, msg.Location.Column+1)
}

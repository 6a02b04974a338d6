package modulemap

import (
	"path"
	"strings"

	"github.com/sjzsdu/uiforge/pipeline"
	"go.uber.org/zap"
)

// resolveStylesheets 检查每个样式表导入是否对应已知的样式表文件，
// 找不到的在样式文本末尾追加标记，不视为错误
func (b *Builder) resolveStylesheets(result *pipeline.Result) string {
	var blob strings.Builder
	blob.WriteString(result.StylesheetBlob)

	seen := make(map[string]bool)
	for _, outcome := range result.Compiled() {
		for _, spec := range outcome.StylesheetSpecifiers {
			target, ok := b.stylesheetPath(outcome.Path, spec)
			if ok {
				if _, exists := result.Stylesheets[target]; exists {
					continue
				}
			}
			if seen[spec] {
				continue
			}
			seen[spec] = true
			if blob.Len() > 0 && !strings.HasSuffix(blob.String(), "\n") {
				blob.WriteString("\n")
			}
			blob.WriteString("/* " + spec + " not found */\n")
			b.logger.Debug("stylesheet not found",
				zap.String("importer", outcome.Path),
				zap.String("specifier", spec))
		}
	}
	return blob.String()
}

// stylesheetPath 将样式表说明符解析为根目录绝对路径，外部包返回 false
func (b *Builder) stylesheetPath(importer, spec string) (string, bool) {
	switch {
	case strings.HasPrefix(spec, "./"), strings.HasPrefix(spec, "../"):
		return path.Join(path.Dir(importer), spec), true
	case strings.HasPrefix(spec, b.opts.Alias):
		return path.Clean("/" + strings.TrimPrefix(spec, b.opts.Alias)), true
	case strings.HasPrefix(spec, "/"):
		return path.Clean(spec), true
	default:
		return "", false
	}
}

package pipeline

import (
	"path"
	"strings"
)

// FileKind 文件在编译流水线中的分类
type FileKind int

const (
	Ignored FileKind = iota
	Script
	Stylesheet
)

func (k FileKind) String() string {
	switch k {
	case Script:
		return "script"
	case Stylesheet:
		return "stylesheet"
	default:
		return "ignored"
	}
}

// ScriptExtensions 可编译的脚本扩展名，顺序即解析本地导入时补全扩展名的顺序
var ScriptExtensions = []string{".jsx", ".tsx", ".js", ".ts"}

// StylesheetExtension 样式表扩展名
const StylesheetExtension = ".css"

// Classify 按扩展名对文件分类
func Classify(filePath string) FileKind {
	ext := strings.ToLower(path.Ext(filePath))
	if ext == StylesheetExtension {
		return Stylesheet
	}
	for _, scriptExt := range ScriptExtensions {
		if ext == scriptExt {
			return Script
		}
	}
	return Ignored
}

// IsTypeScript 是否需要擦除类型标注
func IsTypeScript(filePath string) bool {
	ext := strings.ToLower(path.Ext(filePath))
	return ext == ".ts" || ext == ".tsx"
}

// StripScriptExtension 去掉脚本扩展名，其它扩展名原样保留
func StripScriptExtension(filePath string) string {
	if Classify(filePath) != Script {
		return filePath
	}
	return strings.TrimSuffix(filePath, path.Ext(filePath))
}

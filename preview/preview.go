package preview

import (
	"bytes"
	"embed"
	"encoding/json"
	htmltemplate "html/template"
	"path"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/sjzsdu/uiforge/modulemap"
	"github.com/sjzsdu/uiforge/pipeline"
)

// SandboxPolicy 预览 iframe 的 sandbox 属性
//
// data URL 模块和 CDN 模块在不透明源下也能加载，不开放 allow-same-origin，
// 预览中的组件无法访问宿主页面和同源的接口。
const SandboxPolicy = "allow-scripts allow-forms"

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	successTemplate = template.Must(template.ParseFS(templateFS, "templates/success.html.tmpl"))
	errorTemplate   = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/error.html.tmpl"))
	emptyTemplate   = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/empty.html.tmpl"))
	hostTemplate    = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/host.html.tmpl"))
)

// ErrorEntry 错误列表中的一项
type ErrorEntry struct {
	Path    string
	Line    int
	Column  int
	Message string
}

// 行列号只取编译错误末尾追加的位置，消息正文里的括号不受影响
var locationPattern = regexp.MustCompile(`\s*\((\d+):(\d+)\)\s*$`)

// ParseError 从编译错误中提取行列号，并清理出简短的错误信息
func ParseError(compileErr pipeline.CompileError) ErrorEntry {
	entry := ErrorEntry{Path: compileErr.Path}
	message := compileErr.Message

	if match := locationPattern.FindStringSubmatchIndex(message); match != nil {
		entry.Line, _ = strconv.Atoi(message[match[2]:match[3]])
		entry.Column, _ = strconv.Atoi(message[match[4]:match[5]])
		message = message[:match[0]] + message[match[1]:]
	}

	message = strings.TrimPrefix(message, compileErr.Path+":")
	entry.Message = strings.TrimSpace(message)
	return entry
}

// Build 生成预览文档
//
// errors 非空时只输出错误列表，不包含任何脚本；否则嵌入解析表和样式，
// 由引导脚本异步加载入口模块并挂载到 #root。解析表无法解析时输出"无预览"文档。
func Build(entry, resolutionMap, stylesheetBlob string, errors []pipeline.CompileError) string {
	if len(errors) > 0 {
		return buildErrorDocument(errors)
	}

	var importMap modulemap.ImportMap
	if err := json.Unmarshal([]byte(resolutionMap), &importMap); err != nil || importMap.Imports == nil {
		return NoPreview("Preview unavailable", "The module resolution map could not be read.")
	}

	ref, ok := importMap.Imports[entry]
	if !ok {
		ref = entry
	}

	// 重新序列化，保证嵌入 script 标签的内容已转义 <、>、&
	mapJSON, _ := json.Marshal(importMap)
	entryJSON, _ := json.Marshal(ref)
	exportJSON, _ := json.Marshal(ExportName(entry))

	var buf bytes.Buffer
	err := successTemplate.Execute(&buf, map[string]string{
		"ResolutionMap": string(mapJSON),
		"Stylesheet":    escapeStyle(stylesheetBlob),
		"Entry":         string(entryJSON),
		"ExportName":    string(exportJSON),
	})
	if err != nil {
		return NoPreview("Preview unavailable", err.Error())
	}
	return buf.String()
}

// BuildFromOutput 使用解析表构建结果生成预览文档
func BuildFromOutput(entry string, out *modulemap.Output) string {
	return Build(entry, out.ResolutionMap, out.StylesheetBlob, out.Errors)
}

func buildErrorDocument(errors []pipeline.CompileError) string {
	entries := make([]ErrorEntry, 0, len(errors))
	for _, compileErr := range errors {
		entries = append(entries, ParseError(compileErr))
	}

	title := "Build failed with 1 error"
	if len(entries) != 1 {
		title = "Build failed with " + strconv.Itoa(len(entries)) + " errors"
	}

	var buf bytes.Buffer
	if err := errorTemplate.Execute(&buf, map[string]any{
		"Title":  title,
		"Errors": entries,
	}); err != nil {
		return NoPreview(title, err.Error())
	}
	return buf.String()
}

// NoPreview 生成不包含任何脚本的占位文档
func NoPreview(title, detail string) string {
	var buf bytes.Buffer
	if err := emptyTemplate.Execute(&buf, map[string]string{"Title": title, "Detail": detail}); err != nil {
		return "<!DOCTYPE html><html><body></body></html>"
	}
	return buf.String()
}

// ExportName 入口模块的同名导出，如 /App.jsx 对应 App
func ExportName(entry string) string {
	name := path.Base(entry)
	return strings.TrimSuffix(name, path.Ext(name))
}

var closeStylePattern = regexp.MustCompile(`(?i)</style`)

func escapeStyle(css string) string {
	return closeStylePattern.ReplaceAllString(css, `<\/style`)
}

// HostPage 生成承载预览 iframe 的外层页面，版本号变化时重新加载 iframe
func HostPage(title, previewURL, versionURL string, version uint64) string {
	var buf bytes.Buffer
	err := hostTemplate.Execute(&buf, map[string]any{
		"Title":      title,
		"PreviewURL": previewURL,
		"VersionURL": versionURL,
		"Version":    version,
		"Sandbox":    SandboxPolicy,
	})
	if err != nil {
		return NoPreview(title, err.Error())
	}
	return buf.String()
}

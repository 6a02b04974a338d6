package modulemap

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/sjzsdu/uiforge/pipeline"
	"go.uber.org/zap"
)

// ImportMap 浏览器模块解析表
type ImportMap struct {
	Imports map[string]string `json:"imports"`
}

// Output 构建结果
type Output struct {
	ImportMap ImportMap
	// ResolutionMap 序列化后的解析表
	ResolutionMap  string
	StylesheetBlob string
	Errors         []pipeline.CompileError
	// Placeholders 为无法解析的本地导入合成占位模块的说明符
	Placeholders []string
}

// Builder 根据编译结果构建模块解析表
type Builder struct {
	opts   Options
	logger *zap.Logger
}

func NewBuilder(opts Options, logger *zap.Logger) *Builder {
	if opts.Alias == "" {
		opts.Alias = DefaultOptions().Alias
	}
	if opts.PackageTemplate == "" {
		opts.PackageTemplate = DefaultOptions().PackageTemplate
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{opts: opts, logger: logger}
}

// DataURL 将模块代码编码为可直接加载的 data URL，内容相同则地址相同
func DataURL(code string) string {
	return "data:text/javascript;base64," + base64.StdEncoding.EncodeToString([]byte(code))
}

// Build 构建解析表
//
// 编译失败的文件不会出现在解析表中；无法解析的本地导入会得到一个占位模块，
// 保证预览时不会出现模块解析失败。
func (b *Builder) Build(result *pipeline.Result) *Output {
	imports := make(map[string]string, len(b.opts.CoreModules))
	for name, url := range b.opts.CoreModules {
		imports[name] = url
	}

	compiled := result.Compiled()
	for _, outcome := range compiled {
		ref := DataURL(outcome.Code)
		for _, key := range b.SpecifierKeys(outcome.Path) {
			// 核心模块的写法保留给预置地址
			if _, core := b.opts.CoreModules[key]; core {
				b.logger.Debug("skip key shadowing core module",
					zap.String("path", outcome.Path), zap.String("key", key))
				continue
			}
			imports[key] = ref
		}
	}

	// 编译失败文件的写法不能被占位模块占用
	failed := make(map[string]bool)
	for _, compileErr := range result.Errors {
		for _, key := range b.SpecifierKeys(compileErr.Path) {
			failed[key] = true
		}
	}

	out := &Output{Errors: result.Errors}
	for _, outcome := range compiled {
		for _, spec := range outcome.ImportSpecifiers {
			if b.resolveImport(imports, failed, outcome.Path, spec) {
				out.Placeholders = append(out.Placeholders, spec)
			}
		}
	}

	out.StylesheetBlob = b.resolveStylesheets(result)
	out.ImportMap = ImportMap{Imports: imports}
	data, err := json.Marshal(out.ImportMap)
	if err != nil {
		// map[string]string 的序列化不会失败
		b.logger.Error("marshal import map", zap.Error(err))
		data = []byte(`{"imports":{}}`)
	}
	out.ResolutionMap = string(data)

	b.logger.Debug("module map built",
		zap.Int("entries", len(imports)),
		zap.Int("placeholders", len(out.Placeholders)),
		zap.Int("errors", len(out.Errors)))
	return out
}

// SpecifierKeys 返回文件在解析表中注册的全部写法：
// 绝对路径、去掉开头 / 的路径、alias 前缀路径，以及它们去掉扩展名的形式
func (b *Builder) SpecifierKeys(filePath string) []string {
	rel := strings.TrimPrefix(filePath, "/")
	keys := []string{filePath, rel, b.opts.Alias + rel}

	stripped := pipeline.StripScriptExtension(filePath)
	if stripped != filePath {
		strippedRel := strings.TrimPrefix(stripped, "/")
		keys = append(keys, stripped, strippedRel, b.opts.Alias+strippedRel)
	}
	return keys
}

// IsLocal 判断说明符是否指向项目内的文件
func (b *Builder) IsLocal(spec string) bool {
	return strings.HasPrefix(spec, "./") ||
		strings.HasPrefix(spec, "../") ||
		strings.HasPrefix(spec, "/") ||
		strings.HasPrefix(spec, b.opts.Alias)
}

// resolveImport 为一个导入说明符确保解析表中存在对应条目，返回是否合成了占位模块
func (b *Builder) resolveImport(imports map[string]string, failed map[string]bool, importer, spec string) bool {
	if _, ok := imports[spec]; ok {
		return false
	}

	if !b.IsLocal(spec) {
		if strings.Contains(spec, "://") || strings.HasPrefix(spec, "data:") {
			return false
		}
		imports[spec] = strings.ReplaceAll(b.opts.PackageTemplate, "{pkg}", spec)
		return false
	}

	for _, candidate := range b.candidates(importer, spec) {
		if ref, ok := imports[candidate]; ok {
			imports[spec] = ref
			return false
		}
	}

	ref := DataURL(placeholderModule(spec))
	for _, key := range b.placeholderKeys(importer, spec) {
		if failed[key] {
			continue
		}
		if _, exists := imports[key]; !exists {
			imports[key] = ref
		}
	}
	b.logger.Debug("placeholder module synthesized",
		zap.String("importer", importer),
		zap.String("specifier", spec))
	return true
}

// rootPath 将本地说明符转换为根目录绝对路径
func (b *Builder) rootPath(importer, spec string) string {
	switch {
	case strings.HasPrefix(spec, "./"), strings.HasPrefix(spec, "../"):
		return path.Join(path.Dir(importer), spec)
	case strings.HasPrefix(spec, b.opts.Alias):
		return path.Clean("/" + strings.TrimPrefix(spec, b.opts.Alias))
	default:
		return path.Clean(spec)
	}
}

// candidates 依次列出可能匹配的写法：原样、补全扩展名、alias 改写为根路径、目录下的 index 文件
func (b *Builder) candidates(importer, spec string) []string {
	root := b.rootPath(importer, spec)
	bases := []string{spec}
	if root != spec {
		bases = append(bases, root)
	}

	var candidates []string
	for _, base := range bases {
		candidates = append(candidates, base)
		for _, ext := range pipeline.ScriptExtensions {
			candidates = append(candidates, base+ext)
		}
	}
	for _, ext := range pipeline.ScriptExtensions {
		candidates = append(candidates, root+"/index"+ext)
	}
	return candidates
}

// placeholderKeys 占位模块注册的写法：原样、根路径、alias 形式
func (b *Builder) placeholderKeys(importer, spec string) []string {
	root := b.rootPath(importer, spec)
	return []string{spec, root, b.opts.Alias + strings.TrimPrefix(root, "/")}
}

var identifierPattern = regexp.MustCompile(`[^A-Za-z0-9_$]`)

// placeholderName 根据说明符的最后一段生成组件名
func placeholderName(spec string) string {
	name := path.Base(spec)
	name = strings.TrimSuffix(name, path.Ext(name))
	name = identifierPattern.ReplaceAllString(name, "_")
	if name == "" || name == "_" || (name[0] >= '0' && name[0] <= '9') {
		name = "Placeholder" + name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// placeholderModule 无法解析的本地导入的替代模块：渲染为空的组件，同时提供默认导出和同名导出
func placeholderModule(spec string) string {
	name := placeholderName(spec)
	return fmt.Sprintf("const %[1]s = function() { return null; };\nexport { %[1]s };\nexport default %[1]s;\n", name)
}

package pipeline

import (
	"path"
	"regexp"
	"sort"
	"strings"
)

// 导入扫描基于正则匹配，不做完整语法分析，对未写完的代码同样有效

var (
	// import X from '...' / import { a, b } from '...' / import * as X from '...'
	importFromPattern = regexp.MustCompile(`\bimport\s+(?:type\s+)?[\w*{}\s,$]+?\s+from\s*['"]([^'"\n]+)['"]`)
	// export { a } from '...' / export * from '...'
	exportFromPattern = regexp.MustCompile(`\bexport\s+(?:type\s+)?(?:\*(?:\s+as\s+[\w$]+)?|\{[^}]*\})\s*from\s*['"]([^'"\n]+)['"]`)
	// import '...'
	sideEffectPattern = regexp.MustCompile(`\bimport\s*['"]([^'"\n]+)['"]`)
	// import('...')
	dynamicPattern = regexp.MustCompile(`\bimport\(\s*['"]([^'"\n]+)['"]\s*\)`)

	// 样式表导入语句，连同结尾的分号一起移除
	stylesheetImportPattern = regexp.MustCompile(`\bimport\s+(?:[\w*{}\s,$]+?\s+from\s*)?['"]([^'"\n]+\.css)['"]\s*;?`)
)

// specifierPatterns 的第一个分组都是完整的说明符
var specifierPatterns = []*regexp.Regexp{importFromPattern, exportFromPattern, sideEffectPattern, dynamicPattern}

// Scan 扫描的结果
type Scan struct {
	// Code 移除样式表导入并改写本地说明符后的源码
	Code string
	// Imports 除样式表外的全部导入说明符，按首次出现的顺序去重
	Imports []string
	// Stylesheets 样式表导入说明符，保持书写形式
	Stylesheets []string
}

// ScanSource 收集导入说明符并移除样式表导入
//
// 相对说明符和以 / 开头的说明符会按导入方所在目录改写为 alias 形式，
// 编译产物中的说明符与解析表中的键保持一致。
func ScanSource(filePath, source, alias string) *Scan {
	scan := &Scan{}

	for _, match := range stylesheetImportPattern.FindAllStringSubmatch(source, -1) {
		scan.Stylesheets = appendUnique(scan.Stylesheets, match[1])
	}
	code := stylesheetImportPattern.ReplaceAllString(source, "")

	spans := specifierSpans(code)
	var b strings.Builder
	last := 0
	for _, sp := range spans {
		specifier := ToAlias(filePath, code[sp[0]:sp[1]], alias)
		scan.Imports = appendUnique(scan.Imports, specifier)
		b.WriteString(code[last:sp[0]])
		b.WriteString(specifier)
		last = sp[1]
	}
	b.WriteString(code[last:])

	scan.Code = b.String()
	return scan
}

// specifierSpans 返回导入语句中说明符的位置，按出现顺序排列
//
// 只有语句里完整的说明符才会被改写，普通字符串和 JSX 文本保持原样。
func specifierSpans(code string) [][2]int {
	seen := make(map[int]bool)
	var spans [][2]int
	for _, pattern := range specifierPatterns {
		for _, loc := range pattern.FindAllStringSubmatchIndex(code, -1) {
			if seen[loc[2]] {
				continue
			}
			seen[loc[2]] = true
			spans = append(spans, [2]int{loc[2], loc[3]})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })
	return spans
}

// ToAlias 将相对或根路径说明符改写为 alias 形式，其它说明符原样返回
func ToAlias(importer, specifier, alias string) string {
	var resolved string
	switch {
	case strings.HasPrefix(specifier, "./"), strings.HasPrefix(specifier, "../"):
		resolved = path.Join(path.Dir(importer), specifier)
	case strings.HasPrefix(specifier, "/"):
		resolved = path.Clean(specifier)
	default:
		return specifier
	}
	// path.Join 会去掉结尾的 /，目录形式的说明符需要保留
	if strings.HasSuffix(specifier, "/") && !strings.HasSuffix(resolved, "/") {
		resolved += "/"
	}
	return alias + strings.TrimPrefix(resolved, "/")
}

func appendUnique(list []string, value string) []string {
	for _, item := range list {
		if item == value {
			return list
		}
	}
	return append(list, value)
}

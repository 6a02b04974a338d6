package preview

import (
	"sort"

	"github.com/sjzsdu/uiforge/pipeline"
)

// EntryCandidates 按优先级排列的入口文件
var EntryCandidates = []string{
	"/App.jsx",
	"/App.tsx",
	"/index.jsx",
	"/index.tsx",
	"/src/App.jsx",
	"/src/App.tsx",
}

// FindEntry 在文件列表中选择入口模块，没有候选文件时取第一个脚本文件
//
// override 非空时直接使用。找不到任何脚本文件时返回空字符串。
func FindEntry(files []string, override string) string {
	if override != "" {
		return override
	}

	exists := make(map[string]bool, len(files))
	for _, file := range files {
		exists[file] = true
	}
	for _, candidate := range EntryCandidates {
		if exists[candidate] {
			return candidate
		}
	}

	sorted := append([]string(nil), files...)
	sort.Strings(sorted)
	for _, file := range sorted {
		if pipeline.Classify(file) == pipeline.Script {
			return file
		}
	}
	return ""
}

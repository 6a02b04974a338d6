package vfs

import (
	"strings"

	"github.com/sjzsdu/uiforge/helper"
)

// 路径处理相关方法

// NormalizePath 标准化路径：确保以 / 开头，去掉结尾的 /（根目录除外），合并连续的 /
func NormalizePath(path string) string {
	return helper.StandardizePath(path)
}

// parentPath 返回父目录路径，根目录的父目录仍是根目录
func parentPath(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx <= 0 {
		return "/"
	}
	return path[:idx]
}

// baseName 返回路径的最后一段
func baseName(path string) string {
	if path == "/" {
		return ""
	}
	return path[strings.LastIndex(path, "/")+1:]
}

// joinPath 拼接目录与名称
func joinPath(dir, name string) string {
	if dir == "/" {
		return "/" + name
	}
	return dir + "/" + name
}

// isWithin 判断 path 是否位于 dir 的子树中（不含 dir 本身）
func isWithin(path, dir string) bool {
	if dir == "/" {
		return path != "/"
	}
	return strings.HasPrefix(path, dir+"/")
}

func splitLines(content string) []string {
	return strings.Split(content, "\n")
}

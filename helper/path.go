package helper

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sjzsdu/uiforge/share"
)

// StandardizePath 标准化路径：以 / 开头，不含连续的 /，除根目录外不以 / 结尾
func StandardizePath(path string) string {
	// 处理 Windows 路径分隔符
	cleanPath := strings.ReplaceAll(path, "\\", "/")

	if len(cleanPath) == 0 || cleanPath[0] != '/' {
		cleanPath = "/" + cleanPath
	}

	// 使用更安全的方式替换连续的 /，避免可能的死循环
	prevPath := ""
	for prevPath != cleanPath {
		prevPath = cleanPath
		cleanPath = strings.ReplaceAll(cleanPath, "//", "/")
	}

	if len(cleanPath) > 1 {
		cleanPath = strings.TrimSuffix(cleanPath, "/")
	}
	return cleanPath
}

// GetPath 返回用户目录下 .uiforge 中的路径
func GetPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	if name == "" {
		return filepath.Join(home, share.PATH)
	}
	return filepath.Join(home, share.PATH, name)
}

// WriteFile 写入文件，父目录不存在时自动创建
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

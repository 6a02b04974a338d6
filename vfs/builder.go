package vfs

import (
	"bytes"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
)

// 需要排除的系统和开发工具目录
var excludedDirs = map[string]bool{
	".git":         true,
	".vscode":      true,
	".idea":        true,
	"node_modules": true,
	".svn":         true,
	".hg":          true,
	"__pycache__":  true,
	"dist":         true,
	"build":        true,
	".next":        true,
}

// maxImportSize 单个文件导入的最大字节数
const maxImportSize = 1 << 20

// IsExcludedDir 判断目录名是否在导入时被跳过
func IsExcludedDir(name string) bool {
	return excludedDirs[name]
}

// LoadDir 将磁盘目录导入文件树根目录，已存在的文件会被覆盖
//
// 二进制文件和过大的文件会被跳过。
func (fs *FileSystem) LoadDir(dir string) error {
	return fs.LoadDirAt(dir, "/")
}

// LoadDirAt 将磁盘目录导入到文件树的 prefix 目录下
func (fs *FileSystem) LoadDirAt(dir, prefix string) error {
	dir = filepath.Clean(dir)
	prefix = NormalizePath(prefix)
	if prefix != "/" {
		if _, err := fs.ensureDirectory(prefix); err != nil {
			return err
		}
	}

	return filepath.WalkDir(dir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		treePath := joinPath(prefix, filepath.ToSlash(rel))

		if d.IsDir() {
			if excludedDirs[d.Name()] {
				return filepath.SkipDir
			}
			if _, err := fs.ensureDirectory(treePath); err != nil {
				return err
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return fs.LoadFile(path, treePath)
	})
}

// LoadFile 从磁盘读取单个文件写入文件树，返回 nil 表示已导入或已跳过
func (fs *FileSystem) LoadFile(diskPath, treePath string) error {
	info, err := os.Stat(diskPath)
	if err != nil {
		return err
	}
	if info.Size() > maxImportSize {
		return nil
	}
	content, err := os.ReadFile(diskPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", diskPath, err)
	}
	if bytes.IndexByte(content, 0) >= 0 {
		return nil
	}

	if fs.UpdateFile(treePath, string(content)) {
		return nil
	}
	if _, err := fs.create(treePath, FileType, string(content)); err != nil {
		return err
	}
	return nil
}

// WriteDir 将文件树写入磁盘目录
func (fs *FileSystem) WriteDir(dir string) error {
	return fs.Visit(func(node *Node, depth int) error {
		target := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(node.Path, "/")))
		if node.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return os.WriteFile(target, []byte(node.Content), 0644)
	})
}

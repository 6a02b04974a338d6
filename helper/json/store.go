package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sjzsdu/uiforge/helper"
	"github.com/sjzsdu/uiforge/share"
)

// JSONStore 管理特定目录下的JSON文件
type JSONStore struct {
	// 基础目录，默认为用户家目录下的 .uiforge
	BaseDir string
	// 子目录，用于区分不同类型的JSON文件
	SubDir string
	// 完整目录路径 (BaseDir + SubDir)
	Path string
}

// NewJSONStore 在用户家目录的 .uiforge 下创建 JSONStore
func NewJSONStore(subDir string) (*JSONStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("无法获取用户家目录: %w", err)
	}
	return NewJSONStoreAt(filepath.Join(homeDir, share.PATH), subDir)
}

// NewJSONStoreAt 在指定基础目录下创建 JSONStore
func NewJSONStoreAt(baseDir, subDir string) (*JSONStore, error) {
	path := baseDir
	if subDir != "" {
		path = filepath.Join(baseDir, subDir)
	}

	// 确保目录存在
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("创建目录失败 %s: %w", path, err)
	}

	return &JSONStore{
		BaseDir: baseDir,
		SubDir:  subDir,
		Path:    path,
	}, nil
}

// ensureJSONExtension 确保文件名有.json扩展名
func ensureJSONExtension(filename string) string {
	if !strings.HasSuffix(strings.ToLower(filename), ".json") {
		return filename + ".json"
	}
	return filename
}

func (s *JSONStore) filePath(name string) (string, string) {
	filename := ensureJSONExtension(name)
	return filename, filepath.Join(s.Path, filename)
}

// Get 获取指定名称的JSON文件内容
// 如果decodeInto不为nil，将JSON内容解码到该结构中
func (s *JSONStore) Get(name string, decodeInto interface{}) ([]byte, error) {
	filename, filePath := s.filePath(name)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("文件不存在: %s", filename)
		}
		return nil, fmt.Errorf("读取文件失败 %s: %w", filename, err)
	}

	if decodeInto != nil {
		if err := json.Unmarshal(data, decodeInto); err != nil {
			return data, fmt.Errorf("解析JSON失败 %s: %w", filename, err)
		}
	}

	return data, nil
}

// Set 设置或创建指定名称的JSON文件
// data可以是字节数组或任何可以编码为JSON的对象
func (s *JSONStore) Set(name string, data interface{}) error {
	filename, filePath := s.filePath(name)

	var jsonData []byte
	var err error

	switch v := data.(type) {
	case []byte:
		if !json.Valid(v) {
			return fmt.Errorf("提供的数据不是有效的JSON")
		}
		jsonData = v
	case string:
		if !json.Valid([]byte(v)) {
			return fmt.Errorf("提供的字符串不是有效的JSON")
		}
		jsonData = []byte(v)
	default:
		jsonData, err = json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("编码为JSON失败: %w", err)
		}
	}

	if err := helper.WriteFile(filePath, jsonData); err != nil {
		return fmt.Errorf("写入文件失败 %s: %w", filename, err)
	}
	return nil
}

// Delete 删除指定名称的JSON文件
func (s *JSONStore) Delete(name string) error {
	filename, filePath := s.filePath(name)

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("文件不存在: %s", filename)
		}
		return fmt.Errorf("删除文件失败 %s: %w", filename, err)
	}
	return nil
}

// List 列出所有JSON文件，返回不带.json扩展名的文件名，按名称排序
func (s *JSONStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.Path)
	if err != nil {
		return nil, fmt.Errorf("读取目录失败 %s: %w", s.Path, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(strings.ToLower(name), ".json") {
			files = append(files, name[:len(name)-len(".json")])
		}
	}
	sort.Strings(files)
	return files, nil
}

// Exists 检查指定名称的JSON文件是否存在
func (s *JSONStore) Exists(name string) bool {
	_, filePath := s.filePath(name)
	_, err := os.Stat(filePath)
	return err == nil
}

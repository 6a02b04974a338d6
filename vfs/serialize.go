package vfs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// NodeDescriptor 持久化快照中的节点描述，目录不包含内容和子节点
type NodeDescriptor struct {
	Type    NodeType `json:"type"`
	Name    string   `json:"name"`
	Path    string   `json:"path"`
	Content *string  `json:"content,omitempty"`
}

// Serialize 将文件树导出为路径到节点描述的平铺映射（不含根目录）
func (fs *FileSystem) Serialize() map[string]NodeDescriptor {
	result := make(map[string]NodeDescriptor, len(fs.nodes))
	for path, node := range fs.nodes {
		if path == "/" {
			continue
		}
		desc := NodeDescriptor{Type: node.Type, Name: node.Name, Path: node.Path}
		if node.IsFile() {
			content := node.Content
			desc.Content = &content
		}
		result[path] = desc
	}
	return result
}

// DroppedError 快照中有路径无法恢复，例如父路径是一个文件
//
// 其余路径已经恢复，调用方可以决定继续使用还是放弃这棵树。
type DroppedError struct {
	Paths []string
}

func (e *DroppedError) Error() string {
	return fmt.Sprintf("snapshot entries not restored: %s", strings.Join(e.Paths, ", "))
}

func droppedError(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	return &DroppedError{Paths: paths}
}

// Deserialize 用节点描述重建文件树，按字典序创建以保证祖先先于子孙
//
// 无法创建的路径会被跳过并通过 *DroppedError 返回。
func (fs *FileSystem) Deserialize(descriptors map[string]NodeDescriptor) error {
	fs.Reset()
	var dropped []string
	for _, path := range sortedKeys(descriptors) {
		desc := descriptors[path]
		var node *Node
		if desc.Type == DirectoryType {
			node = fs.CreateDirectory(path)
		} else {
			content := ""
			if desc.Content != nil {
				content = *desc.Content
			}
			node = fs.CreateFile(path, content)
		}
		if node == nil {
			dropped = append(dropped, path)
		}
	}
	return droppedError(dropped)
}

// DeserializeRaw 用路径到内容的映射重建文件树，父目录隐式创建
func (fs *FileSystem) DeserializeRaw(files map[string]string) error {
	fs.Reset()
	var dropped []string
	for _, path := range sortedKeys(files) {
		if fs.CreateFile(path, files[path]) == nil {
			dropped = append(dropped, path)
		}
	}
	return droppedError(dropped)
}

// MarshalSnapshot 将文件树序列化为 JSON
func (fs *FileSystem) MarshalSnapshot() ([]byte, error) {
	return json.Marshal(fs.Serialize())
}

// UnmarshalSnapshot 从 JSON 恢复文件树
//
// 每个值既可以是文件内容字符串，也可以是完整的节点描述，两种形式可以混用。
// JSON 无效时文件树保持不变；部分路径无法恢复时返回 *DroppedError。
func (fs *FileSystem) UnmarshalSnapshot(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}

	descriptors := make(map[string]NodeDescriptor, len(raw))
	for path, value := range raw {
		value = bytes.TrimSpace(value)
		if len(value) > 0 && value[0] == '"' {
			var content string
			if err := json.Unmarshal(value, &content); err != nil {
				return fmt.Errorf("invalid content for %s: %w", path, err)
			}
			descriptors[path] = NodeDescriptor{Type: FileType, Path: path, Content: &content}
			continue
		}

		var desc NodeDescriptor
		if err := json.Unmarshal(value, &desc); err != nil {
			return fmt.Errorf("invalid node for %s: %w", path, err)
		}
		if desc.Type != DirectoryType {
			desc.Type = FileType
		}
		descriptors[path] = desc
	}

	return fs.Deserialize(descriptors)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package vfs

import (
	"sort"
)

// NewFileSystem 创建一个只包含根目录的文件树
func NewFileSystem() *FileSystem {
	fs := &FileSystem{}
	fs.Reset()
	return fs
}

// Reset 清空文件树，只保留根目录
func (fs *FileSystem) Reset() {
	fs.nodes = map[string]*Node{
		"/": {Type: DirectoryType, Name: "", Path: "/"},
	}
}

// Root 返回根节点
func (fs *FileSystem) Root() *Node {
	return fs.nodes["/"]
}

// Exists 检查路径是否存在
func (fs *FileSystem) Exists(path string) bool {
	_, ok := fs.nodes[NormalizePath(path)]
	return ok
}

// GetNode 获取节点，不存在时返回 nil
func (fs *FileSystem) GetNode(path string) *Node {
	return fs.nodes[NormalizePath(path)]
}

// ListDirectory 列出目录的直接子节点，路径不是目录时返回 false
func (fs *FileSystem) ListDirectory(path string) ([]*Node, bool) {
	dir := fs.GetNode(path)
	if dir == nil || !dir.IsDir() {
		return nil, false
	}
	children := make([]*Node, 0, len(dir.children))
	for _, name := range dir.children {
		if child, ok := fs.nodes[joinPath(dir.Path, name)]; ok {
			children = append(children, child)
		}
	}
	return children, true
}

// CreateFile 创建文件，缺失的父目录会被自动创建；路径已存在时返回 nil
func (fs *FileSystem) CreateFile(path, content string) *Node {
	node, _ := fs.create(path, FileType, content)
	return node
}

// CreateDirectory 创建目录，缺失的父目录会被自动创建；路径已存在时返回 nil
func (fs *FileSystem) CreateDirectory(path string) *Node {
	node, _ := fs.create(path, DirectoryType, "")
	return node
}

func (fs *FileSystem) create(path string, nodeType NodeType, content string) (*Node, error) {
	cleanPath := NormalizePath(path)
	if _, exists := fs.nodes[cleanPath]; exists {
		return nil, structural(AlreadyExists, cleanPath)
	}

	parent, err := fs.ensureDirectory(parentPath(cleanPath))
	if err != nil {
		return nil, err
	}

	node := &Node{
		Type: nodeType,
		Name: baseName(cleanPath),
		Path: cleanPath,
	}
	if nodeType == FileType {
		node.Content = content
	}
	fs.attach(parent, node)
	return node, nil
}

// ensureDirectory 确保目录存在，逐级创建缺失的祖先目录
//
// 路径上存在同名文件时返回错误，此时不会创建任何节点。
func (fs *FileSystem) ensureDirectory(path string) (*Node, error) {
	if node, exists := fs.nodes[path]; exists {
		if !node.IsDir() {
			return nil, structural(NotADirectory, path)
		}
		return node, nil
	}

	parent, err := fs.ensureDirectory(parentPath(path))
	if err != nil {
		return nil, err
	}

	dir := &Node{Type: DirectoryType, Name: baseName(path), Path: path}
	fs.attach(parent, dir)
	return dir, nil
}

// attach 将节点同时写入平铺索引和父节点的子节点集合
func (fs *FileSystem) attach(parent, node *Node) {
	fs.nodes[node.Path] = node
	parent.addChild(node.Name)
}

// ReadFile 读取文件内容，路径不存在或不是文件时返回 false
func (fs *FileSystem) ReadFile(path string) (string, bool) {
	node := fs.GetNode(path)
	if node == nil || !node.IsFile() {
		return "", false
	}
	return node.Content, true
}

// UpdateFile 替换文件内容，路径不存在或不是文件时返回 false
func (fs *FileSystem) UpdateFile(path, content string) bool {
	node := fs.GetNode(path)
	if node == nil || !node.IsFile() {
		return false
	}
	node.Content = content
	return true
}

// DeleteFile 删除文件或目录（连同所有子孙节点），根目录和不存在的路径返回 false
func (fs *FileSystem) DeleteFile(path string) bool {
	return fs.DeleteError(path) == nil
}

// DeleteError 删除节点并返回失败原因
func (fs *FileSystem) DeleteError(path string) error {
	cleanPath := NormalizePath(path)
	if cleanPath == "/" {
		return structural(RootForbidden, cleanPath)
	}
	node, exists := fs.nodes[cleanPath]
	if !exists {
		return structural(NotFound, cleanPath)
	}

	if parent, ok := fs.nodes[parentPath(cleanPath)]; ok {
		parent.removeChild(node.Name)
	}
	fs.removeSubtree(node)
	return nil
}

// removeSubtree 从平铺索引中移除节点及其所有子孙
func (fs *FileSystem) removeSubtree(node *Node) {
	if node.IsDir() {
		for _, name := range node.children {
			if child, ok := fs.nodes[joinPath(node.Path, name)]; ok {
				fs.removeSubtree(child)
			}
		}
		node.children = nil
	}
	delete(fs.nodes, node.Path)
}

// Visit 按名称顺序先序遍历整棵树
func (fs *FileSystem) Visit(visitor VisitorFunc) error {
	return fs.visitNode(fs.Root(), 0, visitor)
}

func (fs *FileSystem) visitNode(node *Node, depth int, visitor VisitorFunc) error {
	if err := visitor(node, depth); err != nil {
		return err
	}
	if !node.IsDir() {
		return nil
	}
	names := node.ChildNames()
	sort.Strings(names)
	for _, name := range names {
		child, ok := fs.nodes[joinPath(node.Path, name)]
		if !ok {
			continue
		}
		if err := fs.visitNode(child, depth+1, visitor); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot 返回所有文件的路径到内容的只读副本
func (fs *FileSystem) Snapshot() map[string]string {
	files := make(map[string]string)
	for path, node := range fs.nodes {
		if node.IsFile() {
			files[path] = node.Content
		}
	}
	return files
}

// GetAllFiles 返回按字典序排列的所有文件路径
func (fs *FileSystem) GetAllFiles() []string {
	files := make([]string, 0, len(fs.nodes))
	for path, node := range fs.nodes {
		if node.IsFile() {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files
}

// CountNodes 返回节点总数（含根目录）
func (fs *FileSystem) CountNodes() int {
	return len(fs.nodes)
}

package vfs

// IsDir 是否为目录
func (n *Node) IsDir() bool {
	return n.Type == DirectoryType
}

// IsFile 是否为文件
func (n *Node) IsFile() bool {
	return n.Type == FileType
}

// ChildNames 返回子节点名称的副本，保持插入顺序
func (n *Node) ChildNames() []string {
	names := make([]string, len(n.children))
	copy(names, n.children)
	return names
}

// HasChild 检查是否存在指定名称的子节点
func (n *Node) HasChild(name string) bool {
	return n.indexOf(name) >= 0
}

func (n *Node) indexOf(name string) int {
	for i, child := range n.children {
		if child == name {
			return i
		}
	}
	return -1
}

// addChild 添加子节点名称，已存在时忽略
func (n *Node) addChild(name string) {
	if n.HasChild(name) {
		return
	}
	n.children = append(n.children, name)
}

// removeChild 移除子节点名称
func (n *Node) removeChild(name string) bool {
	idx := n.indexOf(name)
	if idx < 0 {
		return false
	}
	n.children = append(n.children[:idx], n.children[idx+1:]...)
	return true
}

package vfs

// NodeType 节点类型
type NodeType string

const (
	FileType      NodeType = "file"
	DirectoryType NodeType = "directory"
)

// Node 表示虚拟文件树中的一个文件或目录
//
// 目录只保存子节点的名称，节点本身由 FileSystem 的路径表统一持有。
type Node struct {
	Type     NodeType
	Name     string
	Path     string
	Content  string
	children []string
}

// FileSystem 表示整个内存文件树
//
// nodes 是路径到节点的平铺索引，目录节点的 children 是父子关系索引，
// 每次修改都必须同时维护两者。FileSystem 不加锁，调用方负责串行化写操作。
type FileSystem struct {
	nodes map[string]*Node
}

// VisitorFunc 定义了访问节点的函数类型
type VisitorFunc func(node *Node, depth int) error

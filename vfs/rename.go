package vfs

// Rename 移动或重命名节点
//
// 任一路径为根目录、源路径不存在、目标路径已存在、或目标位于源目录内部时返回 false 且不做任何修改。
// 目录被移动时，所有子孙节点的路径都会随之改写。
func (fs *FileSystem) Rename(oldPath, newPath string) bool {
	return fs.RenameError(oldPath, newPath) == nil
}

// RenameError 执行重命名并返回失败原因
func (fs *FileSystem) RenameError(oldPath, newPath string) error {
	src := NormalizePath(oldPath)
	dst := NormalizePath(newPath)

	if src == "/" {
		return structural(RootForbidden, src)
	}
	if dst == "/" {
		return structural(RootForbidden, dst)
	}
	node, exists := fs.nodes[src]
	if !exists {
		return structural(NotFound, src)
	}
	if _, occupied := fs.nodes[dst]; occupied {
		return structural(DestinationOccupied, dst)
	}
	if node.IsDir() && isWithin(dst, src) {
		return structural(InsideSource, dst)
	}

	newParent, err := fs.ensureDirectory(parentPath(dst))
	if err != nil {
		return err
	}

	// 从旧父节点摘下
	if oldParent, ok := fs.nodes[parentPath(src)]; ok {
		oldParent.removeChild(node.Name)
	}
	delete(fs.nodes, src)

	// 改写名称与路径后挂到新父节点
	node.Name = baseName(dst)
	node.Path = dst
	fs.attach(newParent, node)

	if node.IsDir() {
		fs.rebase(node, src)
	}
	return nil
}

// rebase 递归改写目录下所有子孙的路径，并重建它们在平铺索引中的条目
func (fs *FileSystem) rebase(dir *Node, oldDirPath string) {
	for _, name := range dir.children {
		oldChildPath := joinPath(oldDirPath, name)
		child, ok := fs.nodes[oldChildPath]
		if !ok {
			continue
		}
		delete(fs.nodes, oldChildPath)
		child.Path = joinPath(dir.Path, name)
		fs.nodes[child.Path] = child

		if child.IsDir() {
			fs.rebase(child, oldChildPath)
		}
	}
}

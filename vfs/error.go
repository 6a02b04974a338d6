package vfs

import "fmt"

// ErrorKind 结构性错误的种类
type ErrorKind string

const (
	NotFound            ErrorKind = "not found"
	AlreadyExists       ErrorKind = "already exists"
	NotADirectory       ErrorKind = "not a directory"
	NotAFile            ErrorKind = "not a file"
	RootForbidden       ErrorKind = "root forbidden"
	DestinationOccupied ErrorKind = "destination occupied"
	InsideSource        ErrorKind = "destination inside source"
)

// StructuralError 描述文件树操作失败的原因
//
// 文件树的操作本身只返回 nil/false/状态字符串，StructuralError 用于需要说明原因的调用方。
type StructuralError struct {
	Kind ErrorKind
	Path string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Path)
}

func structural(kind ErrorKind, path string) *StructuralError {
	return &StructuralError{Kind: kind, Path: path}
}

// IsKind 判断错误是否为指定种类的结构性错误
func IsKind(err error, kind ErrorKind) bool {
	se, ok := err.(*StructuralError)
	return ok && se.Kind == kind
}

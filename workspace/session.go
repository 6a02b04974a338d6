package workspace

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sjzsdu/uiforge/modulemap"
	"github.com/sjzsdu/uiforge/pipeline"
	"github.com/sjzsdu/uiforge/preview"
	"github.com/sjzsdu/uiforge/vfs"
	"go.uber.org/zap"
)

// Session 持有一棵文件树，并串行化所有对它的访问
//
// 文件树本身不加锁，编辑命令、监听事件和刷新都必须经由 Session。
type Session struct {
	ID string

	mu      sync.Mutex
	fs      *vfs.FileSystem
	version uint64

	pipeline *pipeline.Pipeline
	builder  *modulemap.Builder
	entry    string
	logger   *zap.Logger

	cacheMu sync.Mutex
	cached  *Preview
}

// Preview 一次刷新的结果
type Preview struct {
	Version  uint64
	Entry    string
	Document string
	Output   *modulemap.Output
}

type Option func(*sessionOptions)

type sessionOptions struct {
	logger       *zap.Logger
	entry        string
	moduleOpts   modulemap.Options
	pipelineOpts []pipeline.Option
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *sessionOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithEntry 指定入口模块，留空时自动选择
func WithEntry(entry string) Option {
	return func(o *sessionOptions) {
		o.entry = entry
	}
}

// WithModuleOptions 设置解析表参数
func WithModuleOptions(opts modulemap.Options) Option {
	return func(o *sessionOptions) {
		o.moduleOpts = opts
	}
}

// WithPipelineOptions 追加编译参数，如编译目标和并行数
func WithPipelineOptions(opts ...pipeline.Option) Option {
	return func(o *sessionOptions) {
		o.pipelineOpts = append(o.pipelineOpts, opts...)
	}
}

// NewSession 创建一个只包含根目录的会话
func NewSession(opts ...Option) *Session {
	o := &sessionOptions{
		logger:     zap.NewNop(),
		moduleOpts: modulemap.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(o)
	}

	id := uuid.NewString()
	logger := o.logger.With(zap.String("session", id))
	pipelineOpts := append([]pipeline.Option{
		pipeline.WithAlias(o.moduleOpts.Alias),
		pipeline.WithLogger(logger),
	}, o.pipelineOpts...)
	return &Session{
		ID:       id,
		fs:       vfs.NewFileSystem(),
		pipeline: pipeline.New(pipelineOpts...),
		builder:  modulemap.NewBuilder(o.moduleOpts, logger),
		entry:    o.entry,
		logger:   logger,
	}
}

// Version 每次成功修改文件树后递增
func (s *Session) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// touch 在持有锁时调用
func (s *Session) touch(op, path string) {
	s.version++
	s.logger.Debug("tree changed",
		zap.String("op", op),
		zap.String("path", path),
		zap.Uint64("version", s.version))
}

// trackStatus 根据状态字符串判断命令是否成功，成功时递增版本
func (s *Session) trackStatus(op, path, status string) string {
	if !strings.HasPrefix(status, "Error:") {
		s.touch(op, path)
	}
	return status
}

// View 查看文件或目录
func (s *Session) View(path string, viewRange []int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fs.View(path, viewRange)
}

// Create 创建文件及其父目录
func (s *Session) Create(path, text string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trackStatus("create", path, s.fs.CreateWithParents(path, text))
}

// Replace 替换文件中所有出现的字符串
func (s *Session) Replace(path, oldText, newText string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trackStatus("replace", path, s.fs.ReplaceInFile(path, oldText, newText))
}

// Insert 在指定行插入文本
func (s *Session) Insert(path string, line int, text string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trackStatus("insert", path, s.fs.InsertInFile(path, line, text))
}

// Rename 移动或重命名文件、目录
func (s *Session) Rename(oldPath, newPath string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, dst := vfs.NormalizePath(oldPath), vfs.NormalizePath(newPath)
	if err := s.fs.RenameError(src, dst); err != nil {
		return fmt.Sprintf("Error: Failed to rename %s to %s: %v", src, dst, err)
	}
	s.touch("rename", dst)
	return fmt.Sprintf("Successfully renamed %s to %s", src, dst)
}

// Delete 删除文件或目录
func (s *Session) Delete(path string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := vfs.NormalizePath(path)
	if err := s.fs.DeleteError(target); err != nil {
		return fmt.Sprintf("Error: Failed to delete %s: %v", target, err)
	}
	s.touch("delete", target)
	return fmt.Sprintf("Successfully deleted %s", target)
}

// ReadFile 读取文件内容
func (s *Session) ReadFile(path string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fs.ReadFile(path)
}

// WriteFile 写入文件，不存在时创建
func (s *Session) WriteFile(path, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.fs.ReadFile(path); ok {
		if current == content {
			return true
		}
		s.fs.UpdateFile(path, content)
	} else if s.fs.CreateFile(path, content) == nil {
		return false
	}
	s.touch("write", path)
	return true
}

// Remove 删除路径，不存在时返回 false
func (s *Session) Remove(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.fs.DeleteFile(path) {
		return false
	}
	s.touch("remove", path)
	return true
}

// Reset 清空文件树
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fs.Reset()
	s.touch("reset", "/")
}

// Files 返回所有文件路径
func (s *Session) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fs.GetAllFiles()
}

// Snapshot 返回当前所有文件内容的副本
func (s *Session) Snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fs.Snapshot()
}

// LoadDir 从磁盘目录导入文件
func (s *Session) LoadDir(dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.LoadDir(dir); err != nil {
		return fmt.Errorf("load %s: %w", dir, err)
	}
	s.touch("load", dir)
	return nil
}

// LoadDirAt 将磁盘目录导入到文件树的指定目录下
func (s *Session) LoadDirAt(dir, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.LoadDirAt(dir, prefix); err != nil {
		return fmt.Errorf("load %s: %w", dir, err)
	}
	s.touch("load", prefix)
	return nil
}

// LoadFile 从磁盘导入单个文件
func (s *Session) LoadFile(diskPath, treePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.LoadFile(diskPath, treePath); err != nil {
		return err
	}
	s.touch("load", treePath)
	return nil
}

// WriteDir 将文件树写入磁盘目录
func (s *Session) WriteDir(dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fs.WriteDir(dir)
}

// SetEntry 指定入口模块，空字符串表示自动选择
func (s *Session) SetEntry(entry string) {
	s.mu.Lock()
	s.entry = entry
	s.mu.Unlock()

	s.cacheMu.Lock()
	s.cached = nil
	s.cacheMu.Unlock()
}

// Latest 返回当前版本的预览，版本未变化时复用上一次的结果
func (s *Session) Latest() *Preview {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if s.cached != nil && s.cached.Version == s.Version() {
		return s.cached
	}
	s.cached = s.Refresh()
	return s.cached
}

// Refresh 对当前文件树做一次完整编译并生成预览文档
func (s *Session) Refresh() *Preview {
	s.mu.Lock()
	snapshot := s.fs.Snapshot()
	files := s.fs.GetAllFiles()
	version := s.version
	override := s.entry
	s.mu.Unlock()

	result := s.pipeline.Run(snapshot)
	out := s.builder.Build(result)

	entry := preview.FindEntry(files, override)
	var document string
	if entry == "" && len(out.Errors) == 0 {
		document = preview.NoPreview("No preview available", "Create an App.jsx file to get started.")
	} else {
		document = preview.BuildFromOutput(entry, out)
	}

	s.logger.Info("preview refreshed",
		zap.Uint64("version", version),
		zap.String("entry", entry),
		zap.Int("files", len(snapshot)),
		zap.Int("errors", len(out.Errors)),
		zap.Int("placeholders", len(out.Placeholders)))

	return &Preview{
		Version:  version,
		Entry:    entry,
		Document: document,
		Output:   out,
	}
}

package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sjzsdu/uiforge/share"
	"github.com/sjzsdu/uiforge/vfs"
	"go.uber.org/zap"
)

// Watcher 监听磁盘目录，将变更同步到会话的文件树
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	session  *Session
	root     string
	debounce time.Duration
	pending  map[string]time.Time
	onChange func()
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	closed   bool
	logger   *zap.Logger
}

// NewWatcher 创建监听 root 目录的 Watcher，onChange 在一批变更同步完成后调用
func NewWatcher(session *Session, root string, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:  fw,
		session:  session,
		root:     filepath.Clean(root),
		debounce: share.WATCH_DEBOUNCE,
		pending:  make(map[string]time.Time),
		onChange: onChange,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		logger:   session.logger.With(zap.String("watch", root)),
	}, nil
}

// Start 开始监听，立即返回；目录添加失败时不会启动事件循环
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if w.closed {
		return errors.New("watcher already stopped")
	}

	if err := w.addTree(w.root); err != nil {
		return err
	}
	w.running = true
	go w.run(ctx)
	w.logger.Info("watching directory")
	return nil
}

// Stop 停止监听并等待事件循环退出，未启动时只释放底层的 fsnotify watcher
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	wasRunning := w.running
	w.running = false
	w.closed = true
	w.mu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.doneCh
	}

	if err := w.watcher.Close(); err != nil {
		w.logger.Error("close watcher", zap.Error(err))
	}
}

// addTree 递归添加目录，跳过 node_modules 等目录
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && vfs.IsExcludedDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.Error(err))
		case <-ticker.C:
			w.flush(false)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	if w.excluded(event.Name) {
		return
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("watch new directory", zap.String("path", event.Name), zap.Error(err))
			}
		}
	}

	w.mu.Lock()
	w.pending[event.Name] = time.Now()
	w.mu.Unlock()
}

// excluded 路径中任意一级是被排除的目录时返回 true
func (w *Watcher) excluded(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return true
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if vfs.IsExcludedDir(part) {
			return true
		}
	}
	return false
}

// flush 同步已经稳定的变更；force 为 true 时忽略去抖时间
func (w *Watcher) flush(force bool) int {
	w.mu.Lock()
	var ready []string
	now := time.Now()
	for path, at := range w.pending {
		if force || now.Sub(at) >= w.debounce {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	changed := 0
	for _, path := range ready {
		if w.sync(path) {
			changed++
		}
	}
	if changed > 0 && w.onChange != nil {
		w.onChange()
	}
	return changed
}

// sync 将单个磁盘路径的当前状态写入文件树
func (w *Watcher) sync(diskPath string) bool {
	rel, err := filepath.Rel(w.root, diskPath)
	if err != nil {
		return false
	}
	treePath := vfs.NormalizePath(filepath.ToSlash(rel))

	info, err := os.Stat(diskPath)
	if errors.Is(err, os.ErrNotExist) {
		removed := w.session.Remove(treePath)
		if removed {
			w.logger.Debug("removed", zap.String("path", treePath))
		}
		return removed
	}
	if err != nil {
		w.logger.Warn("stat", zap.String("path", diskPath), zap.Error(err))
		return false
	}

	if info.IsDir() {
		if err := w.session.LoadDirAt(diskPath, treePath); err != nil {
			w.logger.Warn("load directory", zap.String("path", diskPath), zap.Error(err))
			return false
		}
		return true
	}

	if err := w.session.LoadFile(diskPath, treePath); err != nil {
		w.logger.Warn("load file", zap.String("path", diskPath), zap.Error(err))
		return false
	}
	w.logger.Debug("synced", zap.String("path", treePath))
	return true
}

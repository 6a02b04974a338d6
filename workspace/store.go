package workspace

import (
	"errors"
	"fmt"

	jsonstore "github.com/sjzsdu/uiforge/helper/json"
	"github.com/sjzsdu/uiforge/share"
	"github.com/sjzsdu/uiforge/vfs"
	"go.uber.org/zap"
)

// MarshalSnapshot 序列化当前文件树
func (s *Session) MarshalSnapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fs.MarshalSnapshot()
}

// LoadSnapshot 用序列化的快照替换当前文件树
func (s *Session) LoadSnapshot(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 部分路径无法恢复时文件树已被替换，仍需递增版本
	err := s.fs.UnmarshalSnapshot(data)
	var dropped *vfs.DroppedError
	if err != nil && !errors.As(err, &dropped) {
		return err
	}
	s.touch("restore", "/")
	if dropped != nil {
		s.logger.Warn("snapshot entries dropped", zap.Strings("paths", dropped.Paths))
	}
	return err
}

// DefaultStore 返回 ~/.uiforge/snapshots 下的快照存储
func DefaultStore() (*jsonstore.JSONStore, error) {
	return jsonstore.NewJSONStore(share.SNAPSHOT_DIR)
}

// Save 将文件树保存为存储中的一个快照
func (s *Session) Save(store *jsonstore.JSONStore, name string) error {
	data, err := s.MarshalSnapshot()
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := store.Set(name, data); err != nil {
		return fmt.Errorf("save snapshot %s: %w", name, err)
	}
	s.logger.Info("snapshot saved", zap.String("name", name), zap.String("dir", store.Path))
	return nil
}

// Load 从存储中恢复快照
func (s *Session) Load(store *jsonstore.JSONStore, name string) error {
	data, err := store.Get(name, nil)
	if err != nil {
		return err
	}
	if err := s.LoadSnapshot(data); err != nil {
		return fmt.Errorf("restore snapshot %s: %w", name, err)
	}
	s.logger.Info("snapshot loaded", zap.String("name", name))
	return nil
}

package cmd

import (
	"fmt"
	"strconv"

	"github.com/sjzsdu/uiforge/config"
	"github.com/sjzsdu/uiforge/logging"
	"github.com/sjzsdu/uiforge/modulemap"
	"github.com/sjzsdu/uiforge/pipeline"
	"github.com/sjzsdu/uiforge/workspace"
	"go.uber.org/zap"
)

// openSession 按配置创建会话，依次导入快照和工作目录
func openSession() (*workspace.Session, error) {
	logger := logging.L()
	session := workspace.NewSession(
		workspace.WithLogger(logger),
		workspace.WithEntry(config.Get(config.KeyEntry)),
		workspace.WithModuleOptions(modulemap.OptionsFromConfig()),
		workspace.WithPipelineOptions(pipelineOptions(logger)...),
	)

	if snapshotName != "" {
		store, err := workspace.DefaultStore()
		if err != nil {
			return nil, fmt.Errorf("open snapshot store: %w", err)
		}
		if store.Exists(snapshotName) {
			if err := session.Load(store, snapshotName); err != nil {
				return nil, err
			}
		} else {
			logger.Info("snapshot not found, starting empty", zap.String("name", snapshotName))
		}
	}

	if workDir != "" {
		if err := session.LoadDir(workDir); err != nil {
			return nil, fmt.Errorf("load %s: %w", workDir, err)
		}
	}

	logger.Debug("session opened",
		zap.String("session", session.ID),
		zap.Int("files", len(session.Files())),
		zap.Uint64("version", session.Version()))
	return session, nil
}

// pipelineOptions 读取编译目标和并行数，无效的值记录警告后使用默认值
func pipelineOptions(logger *zap.Logger) []pipeline.Option {
	var opts []pipeline.Option
	if target, err := pipeline.ParseTarget(config.Get(config.KeyTarget)); err == nil {
		opts = append(opts, pipeline.WithTarget(target))
	} else {
		logger.Warn("ignore compile target", zap.Error(err))
	}
	if workers, err := strconv.Atoi(config.Get(config.KeyWorkers)); err == nil {
		opts = append(opts, pipeline.WithWorkers(workers))
	} else {
		logger.Warn("ignore compile workers", zap.String("value", config.Get(config.KeyWorkers)))
	}
	return opts
}

// saveSession 在指定了快照名时保存会话
func saveSession(session *workspace.Session) error {
	if snapshotName == "" {
		return nil
	}
	store, err := workspace.DefaultStore()
	if err != nil {
		return fmt.Errorf("open snapshot store: %w", err)
	}
	return session.Save(store, snapshotName)
}

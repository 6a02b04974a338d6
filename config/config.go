package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sjzsdu/uiforge/helper"
	"github.com/sjzsdu/uiforge/share"
	"github.com/spf13/viper"
)

// 配置的取值顺序：环境变量 UIFORGE_<KEY>、配置文件、ConfigKeys 中的默认值。
// 配置文件为 ~/.uiforge/config.env，只保存通过 Set 写入或从文件读到的键。

const fileName = "config.env"

var (
	mu     sync.Mutex
	store  *viper.Viper
	values map[string]string
)

// FilePath 配置文件路径
func FilePath() string {
	return helper.GetPath(fileName)
}

// Load 重新读取配置文件，文件不存在时只使用环境变量和默认值
func Load() error {
	mu.Lock()
	defer mu.Unlock()
	return load()
}

func load() error {
	store = newStore()
	values = make(map[string]string)

	store.SetConfigFile(FilePath())
	store.SetConfigType("env")
	if err := store.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read %s: %w", FilePath(), err)
	}

	for _, key := range store.AllKeys() {
		if _, known := ConfigKeys[key]; known && store.InConfig(key) {
			values[key] = store.GetString(key)
		}
	}
	return nil
}

func newStore() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(strings.TrimSuffix(share.PREFIX, "_"))
	v.AutomaticEnv()
	for key, info := range ConfigKeys {
		v.SetDefault(key, info.Default)
	}
	return v
}

// current 首次读取时加载配置文件，调用方需持有 mu
func current() *viper.Viper {
	if store == nil {
		_ = load()
	}
	return store
}

// Get 获取配置值，未设置时返回配置键的默认值；未知的键返回空串
func Get(key string) string {
	if _, known := ConfigKeys[key]; !known {
		return ""
	}
	mu.Lock()
	defer mu.Unlock()
	// 环境变量优先于 Set 写入的值
	if env := os.Getenv(EnvKey(key)); env != "" {
		return env
	}
	return current().GetString(key)
}

// Set 校验并写入配置值，需要调用 Save 才会持久化
func Set(key, value string) error {
	info, known := ConfigKeys[key]
	if !known {
		return fmt.Errorf("unknown config key %q", key)
	}
	if !IsValidConfigOption(key, value) {
		return fmt.Errorf("invalid value %q for %s, expected one of: %s",
			value, key, strings.Join(info.Options, ", "))
	}
	if info.Validate != nil {
		if err := info.Validate(value); err != nil {
			return fmt.Errorf("invalid value %q for %s: %w", value, key, err)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	current().Set(key, value)
	values[key] = value
	return nil
}

// Save 将配置写入配置文件
func Save() error {
	mu.Lock()
	defer mu.Unlock()
	current()

	if err := os.MkdirAll(filepath.Dir(FilePath()), 0755); err != nil {
		return err
	}
	out := viper.New()
	for key, value := range values {
		out.Set(key, value)
	}
	return out.WriteConfigAs(FilePath())
}

// EnvKey 配置键对应的环境变量名
func EnvKey(key string) string {
	return share.PREFIX + strings.ToUpper(key)
}

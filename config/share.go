package config

import (
	"errors"
	"strconv"
)

// ConfigKeyInfo 存储配置键的相关信息
type ConfigKeyInfo struct {
	Description string             // 配置项描述
	Options     []string           // 可选值，如果为空则表示没有限制
	Default     string             // 默认值
	Validate    func(string) error // 可选的取值校验
}

// 配置键常量定义
const (
	KeyLang       = "lang"
	KeyLogLevel   = "log_level"
	KeyAlias      = "alias"
	KeyPackageCDN = "package_cdn"
	KeyEntry      = "entry"
	KeyPort       = "port"
	KeyWorkers    = "workers"
	KeyTarget     = "target"
)

// ConfigKeys 存储所有配置键及其信息
var ConfigKeys = map[string]ConfigKeyInfo{
	KeyLang: {
		Description: "Set language",
		Options:     []string{"en", "zh-CN"},
		Default:     "en",
	},
	KeyLogLevel: {
		Description: "Set log level",
		Options:     []string{"debug", "info", "warn", "error"},
		Default:     "info",
	},
	KeyAlias: {
		Description: "Set import alias prefix",
		Default:     "@/",
	},
	KeyPackageCDN: {
		Description: "Set package CDN template",
		Default:     "https://esm.sh/{pkg}",
	},
	KeyEntry: {
		Description: "Set entry module",
	},
	KeyPort: {
		Description: "Set preview server port",
		Default:     "3000",
		Validate:    nonNegativeInt,
	},
	KeyWorkers: {
		Description: "Set parallel compile workers, 0 uses CPU count",
		Default:     "0",
		Validate:    nonNegativeInt,
	},
	KeyTarget: {
		Description: "Set compile target",
		Options:     []string{"es2018", "es2020", "es2022", "esnext"},
		Default:     "es2020",
	},
}

func nonNegativeInt(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	if n < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

// GetConfigDescription 获取配置键的描述
func GetConfigDescription(key string) string {
	if info, exists := ConfigKeys[key]; exists {
		return info.Description
	}
	return ""
}

// GetConfigOptions 获取配置键的可选值
func GetConfigOptions(key string) []string {
	if info, exists := ConfigKeys[key]; exists {
		return info.Options
	}
	return nil
}

// IsValidConfigOption 检查给定的值是否是配置键的有效选项
func IsValidConfigOption(key, value string) bool {
	options := GetConfigOptions(key)
	if len(options) == 0 {
		return true
	}
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}

// GetAllConfigKeys 获取所有配置键
func GetAllConfigKeys() []string {
	keys := make([]string, 0, len(ConfigKeys))
	for key := range ConfigKeys {
		keys = append(keys, key)
	}
	return keys
}

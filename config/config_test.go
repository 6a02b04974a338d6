package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sjzsdu/uiforge/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useHome 将配置文件目录指向临时目录并重新加载
func useHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, config.Load())
	return home
}

func TestGet(t *testing.T) {
	useHome(t)
	t.Setenv("UIFORGE_LANG", "zh-CN")
	t.Setenv("UIFORGE_ALIAS", "~/")
	os.Unsetenv("UIFORGE_ENTRY")

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{name: "环境变量中的语言", key: config.KeyLang, expected: "zh-CN"},
		{name: "环境变量中的别名", key: config.KeyAlias, expected: "~/"},
		{name: "没有默认值的配置", key: config.KeyEntry, expected: ""},
		{name: "未知的配置键", key: "unknown_key", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, config.Get(tt.key))
		})
	}
}

func TestGetFallsBackToKeyDefault(t *testing.T) {
	useHome(t)
	os.Unsetenv("UIFORGE_PACKAGE_CDN")
	os.Unsetenv("UIFORGE_PORT")
	os.Unsetenv("UIFORGE_WORKERS")

	assert.Equal(t, "https://esm.sh/{pkg}", config.Get(config.KeyPackageCDN))
	assert.Equal(t, "3000", config.Get(config.KeyPort))
	assert.Equal(t, "0", config.Get(config.KeyWorkers))
	assert.Equal(t, "es2020", config.Get(config.KeyTarget))

	t.Setenv("UIFORGE_PORT", "8081")
	assert.Equal(t, "8081", config.Get(config.KeyPort))
}

func TestSetValidates(t *testing.T) {
	useHome(t)

	assert.ErrorContains(t, config.Set("colour", "red"), "unknown config key")
	assert.ErrorContains(t, config.Set(config.KeyLogLevel, "trace"), "expected one of")
	assert.Error(t, config.Set(config.KeyWorkers, "many"))
	assert.Error(t, config.Set(config.KeyWorkers, "-1"))

	require.NoError(t, config.Set(config.KeyWorkers, "4"))
	assert.Equal(t, "4", config.Get(config.KeyWorkers))
}

func TestSaveAndLoad(t *testing.T) {
	os.Unsetenv("UIFORGE_LOG_LEVEL")
	os.Unsetenv("UIFORGE_ENTRY")
	home := useHome(t)

	require.NoError(t, config.Set(config.KeyLogLevel, "debug"))
	require.NoError(t, config.Set(config.KeyEntry, "/src/App.tsx"))
	require.NoError(t, config.Save())

	path := filepath.Join(home, ".uiforge", "config.env")
	assert.Equal(t, path, config.FilePath())
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lower := strings.ToLower(string(content))
	assert.Contains(t, lower, "log_level=debug")
	assert.Contains(t, lower, "entry=/src/app.tsx")
	// 只保存写入过的键
	assert.NotContains(t, lower, "package_cdn")

	require.NoError(t, config.Load())
	assert.Equal(t, "debug", config.Get(config.KeyLogLevel))
	assert.Equal(t, "/src/App.tsx", config.Get(config.KeyEntry))

	// 环境变量优先于配置文件
	t.Setenv("UIFORGE_LOG_LEVEL", "error")
	assert.Equal(t, "error", config.Get(config.KeyLogLevel))
}

func TestLoadWithoutFile(t *testing.T) {
	os.Unsetenv("UIFORGE_LANG")
	useHome(t)
	assert.Equal(t, "en", config.Get(config.KeyLang))
}

func TestIsValidConfigOption(t *testing.T) {
	assert.True(t, config.IsValidConfigOption(config.KeyLogLevel, "warn"))
	assert.False(t, config.IsValidConfigOption(config.KeyLogLevel, "trace"))
	// 没有可选值限制的键接受任何值
	assert.True(t, config.IsValidConfigOption(config.KeyAlias, "#/"))
}

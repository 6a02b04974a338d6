package modulemap

import (
	"github.com/sjzsdu/uiforge/config"
	"github.com/sjzsdu/uiforge/share"
)

// ReactVersion 预置核心模块使用的 React 版本
const ReactVersion = "19.1.0"

// Options 解析表的构建参数
type Options struct {
	// Alias 根目录别名前缀，如 "@/"
	Alias string
	// PackageTemplate 外部包地址模板，{pkg} 会被替换为包名
	PackageTemplate string
	// CoreModules 预置的核心模块，外部包解析时不会覆盖
	CoreModules map[string]string
}

// DefaultOptions 返回默认参数
func DefaultOptions() Options {
	react := "https://esm.sh/react@" + ReactVersion
	reactDOM := "https://esm.sh/react-dom@" + ReactVersion
	return Options{
		Alias:           share.ALIAS,
		PackageTemplate: share.PACKAGE_CDN,
		CoreModules: map[string]string{
			"react":                 react,
			"react-dom":             reactDOM + "?deps=react@" + ReactVersion,
			"react-dom/client":      reactDOM + "/client?deps=react@" + ReactVersion,
			"react/jsx-runtime":     react + "/jsx-runtime",
			"react/jsx-dev-runtime": react + "/jsx-dev-runtime",
		},
	}
}

// OptionsFromConfig 在默认参数上应用配置文件中的 alias 和 package_cdn
func OptionsFromConfig() Options {
	opts := DefaultOptions()
	if alias := config.Get(config.KeyAlias); alias != "" {
		opts.Alias = alias
	}
	if cdn := config.Get(config.KeyPackageCDN); cdn != "" {
		opts.PackageTemplate = cdn
	}
	return opts
}

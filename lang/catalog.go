package lang

import "golang.org/x/text/language"

var catalog = map[language.Tag]map[string]string{
	language.SimplifiedChinese: {
		"Live UI preview workbench":                                         "实时 UI 预览工作台",
		"In-memory UI project with a live preview for automated assistants": "面向自动化助手的内存 UI 项目与实时预览",
		"Invalid arguments":                                                 "参数无效",
		"Work directory path":                                               "工作目录路径",
		"Debug mode":                                                        "调试模式",
		"Print version information":                                         "打印版本信息",
		"Print detailed version information of uiforge":                     "打印 uiforge 的详细版本信息",
		"uiforge version":                                                   "uiforge 版本",
		"Set config":                                                        "设置配置",
		"Set global configuration":                                          "设置全局配置",
		"List all configurations":                                           "列出所有配置",
		"Current configurations:":                                           "当前配置:",
		"Set language":                                                      "设置语言",
		"Set log level":                                                     "设置日志级别",
		"Set import alias prefix":                                           "设置导入别名前缀",
		"Set package CDN template":                                          "设置外部包 CDN 模板",
		"Set entry module":                                                  "设置入口模块",
		"Set preview server port":                                           "设置预览服务端口",
		"Set parallel compile workers, 0 uses CPU count":                    "设置并行编译数，0 表示使用 CPU 核数",
		"Set compile target":                                                "设置编译目标",
		"Start preview and MCP server":                                      "启动预览与 MCP 服务",
		"Compile the project once and report errors":                        "编译一次项目并报告错误",
		"Interactive file editing shell":                                    "交互式文件编辑终端",
		"Watch the work directory for changes":                              "监听工作目录变化",
		"Snapshot name to load and save":                                    "加载与保存的快照名称",
		"MCP transport (stdio, http, sse)":                                  "MCP 传输方式 (stdio, http, sse)",
		"Preview server port":                                               "预览服务端口",
		"Session terminated":                                                "会话已结束",
		"Error reading input":                                               "读取输入出错",
		"Unknown command":                                                   "未知命令",
		"No compile errors":                                                 "没有编译错误",
	},
}

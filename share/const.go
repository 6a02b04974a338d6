package share

import "time"

// VERSION 版本号
const VERSION = "0.3.0"

// BUILDNAME 制品名称
const BUILDNAME = "uiforge"

const PREFIX = "UIFORGE_"

const PATH = ".uiforge"

const SERVER_PORT = 3000

const SNAPSHOT_DIR = "snapshots"

const MCP_SERVER_NAME = "uiforge"

// ALIAS 模块解析时被改写为根目录的前缀
const ALIAS = "@/"

// PACKAGE_CDN 外部包的解析模板，{pkg} 会被替换为包名
const PACKAGE_CDN = "https://esm.sh/{pkg}"

const WATCH_DEBOUNCE = 150 * time.Millisecond

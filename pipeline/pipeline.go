package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/sjzsdu/uiforge/helper/coroutine"
	"github.com/sjzsdu/uiforge/share"
	"go.uber.org/zap"
)

// Outcome 单个脚本文件的处理结果
type Outcome struct {
	Path string
	// Code 编译产物，编译失败时为空
	Code string
	Err  *CompileError
	// ImportSpecifiers 编译产物中出现的导入说明符，本地说明符已改写为 alias 形式
	ImportSpecifiers []string
	// StylesheetSpecifiers 源码中的样式表导入，保持书写形式
	StylesheetSpecifiers []string
}

// OK 是否编译成功
func (o *Outcome) OK() bool {
	return o.Err == nil
}

// Result 一次完整编译的结果
type Result struct {
	// Outcomes 所有脚本文件的结果，按路径排序
	Outcomes []*Outcome
	// Stylesheets 样式表文件路径到内容
	Stylesheets map[string]string
	// StylesheetBlob 所有样式表拼接后的文本
	StylesheetBlob string
	Errors         []CompileError
}

// Compiled 返回编译成功的结果
func (r *Result) Compiled() []*Outcome {
	compiled := make([]*Outcome, 0, len(r.Outcomes))
	for _, outcome := range r.Outcomes {
		if outcome.OK() {
			compiled = append(compiled, outcome)
		}
	}
	return compiled
}

// Pipeline 对一份完整快照做一次从头开始的编译
type Pipeline struct {
	alias   string
	target  api.Target
	workers int
	logger  *zap.Logger
}

type Option func(*Pipeline)

// WithAlias 设置本地说明符改写使用的 alias 前缀
func WithAlias(alias string) Option {
	return func(p *Pipeline) {
		if alias != "" {
			p.alias = alias
		}
	}
}

// WithTarget 设置编译目标
func WithTarget(target api.Target) Option {
	return func(p *Pipeline) {
		p.target = target
	}
}

var targets = map[string]api.Target{
	"es2018": api.ES2018,
	"es2020": api.ES2020,
	"es2022": api.ES2022,
	"esnext": api.ESNext,
}

// ParseTarget 将编译目标名称（如 es2020）转换为 esbuild 的目标
func ParseTarget(name string) (api.Target, error) {
	if target, ok := targets[strings.ToLower(strings.TrimSpace(name))]; ok {
		return target, nil
	}
	return api.ES2020, fmt.Errorf("unknown compile target %q", name)
}

// WithWorkers 设置并行编译的文件数，不大于 0 时使用 CPU 核数
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		p.workers = n
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		alias:  share.ALIAS,
		target: api.ES2020,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Alias 返回当前使用的 alias 前缀
func (p *Pipeline) Alias() string {
	return p.alias
}

// Run 编译快照中的所有文件
//
// 单个文件编译失败只会记录错误，不影响其它文件。文件按路径顺序处理，结果是确定的。
func (p *Pipeline) Run(snapshot map[string]string) *Result {
	paths := make([]string, 0, len(snapshot))
	for filePath := range snapshot {
		paths = append(paths, filePath)
	}
	sort.Strings(paths)

	result := &Result{Stylesheets: make(map[string]string)}
	var blob strings.Builder
	var scripts []string

	for _, filePath := range paths {
		source := snapshot[filePath]
		switch Classify(filePath) {
		case Stylesheet:
			result.Stylesheets[filePath] = source
			if blob.Len() > 0 {
				blob.WriteString("\n")
			}
			blob.WriteString("/* " + filePath + " */\n")
			blob.WriteString(source)
			blob.WriteString("\n")
		case Script:
			scripts = append(scripts, filePath)
		}
	}

	// 各文件相互独立，并行编译后按路径顺序收集
	outcomes := coroutine.Map(context.Background(), p.workers, scripts, func(filePath string) (*Outcome, error) {
		return p.process(filePath, snapshot[filePath]), nil
	})
	for _, r := range outcomes {
		outcome := r.Value
		if !outcome.OK() {
			result.Errors = append(result.Errors, *outcome.Err)
			p.logger.Debug("compile failed",
				zap.String("path", outcome.Path),
				zap.String("error", outcome.Err.Message))
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	result.StylesheetBlob = blob.String()
	p.logger.Debug("pipeline finished",
		zap.Int("files", len(paths)),
		zap.Int("scripts", len(result.Outcomes)),
		zap.Int("stylesheets", len(result.Stylesheets)),
		zap.Int("errors", len(result.Errors)))
	return result
}

func (p *Pipeline) process(filePath, source string) *Outcome {
	scan := ScanSource(filePath, source, p.alias)
	outcome := &Outcome{
		Path:                 filePath,
		ImportSpecifiers:     scan.Imports,
		StylesheetSpecifiers: scan.Stylesheets,
	}

	code, err := compile(filePath, scan.Code, p.target)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Code = code
	return outcome
}

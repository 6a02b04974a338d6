package renders

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer 将 Markdown 渲染到终端，支持分段流式输出
type MarkdownRenderer struct {
	renderer    *glamour.TermRenderer
	out         io.Writer
	buffer      strings.Builder
	mu          sync.Mutex
	isOutputing bool
}

// NewMarkdownRenderer 创建输出到标准输出的渲染器
func NewMarkdownRenderer() (*MarkdownRenderer, error) {
	return NewMarkdownRendererTo(os.Stdout, 120)
}

// NewMarkdownRendererTo 创建输出到 out 的渲染器
func NewMarkdownRendererTo(out io.Writer, width int) (*MarkdownRenderer, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("初始化 Markdown 渲染器失败: %v", err)
	}

	return &MarkdownRenderer{
		renderer: renderer,
		out:      out,
	}, nil
}

// Render 渲染一段完整的 Markdown 并返回结果，失败时返回原文
func (m *MarkdownRenderer) Render(content string) string {
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// WriteStream 将内容写入缓冲区，凑成完整段落后立即渲染输出
func (m *MarkdownRenderer) WriteStream(content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.isOutputing = true
	m.buffer.WriteString(content)

	bufferContent := m.buffer.String()
	if !isParagraphComplete(bufferContent) {
		return nil
	}

	// 只渲染到最后一个换行符，剩余内容留在缓冲区
	lastNewlinePos := strings.LastIndex(bufferContent, "\n")
	if lastNewlinePos > 0 {
		m.renderContent(bufferContent[:lastNewlinePos+1])
		m.buffer.Reset()
		m.buffer.WriteString(bufferContent[lastNewlinePos+1:])
	} else {
		m.renderContent(bufferContent)
		m.buffer.Reset()
	}
	return nil
}

// Done 渲染缓冲区中剩余的内容
func (m *MarkdownRenderer) Done() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.isOutputing {
		return
	}
	if content := m.buffer.String(); content != "" {
		m.renderContent(content)
	}
	m.buffer.Reset()
	m.isOutputing = false
}

// isParagraphComplete 判断内容是否构成完整段落：不在代码块内且以换行结束，或代码块已闭合
func isParagraphComplete(content string) bool {
	if content == "" {
		return false
	}

	inCodeBlock := false
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCodeBlock = !inCodeBlock
		}
	}
	if inCodeBlock {
		return false
	}

	if strings.HasSuffix(content, "\n") && strings.TrimSuffix(content, "\n") != "" {
		return true
	}
	count := strings.Count(content, "```")
	return count >= 2 && count%2 == 0
}

func (m *MarkdownRenderer) renderContent(content string) {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	rendered, err := m.renderer.Render(content)
	if err != nil {
		fmt.Fprint(m.out, content)
		return
	}

	// 合并连续的空行
	for strings.Contains(rendered, "\n\n\n") {
		rendered = strings.ReplaceAll(rendered, "\n\n\n", "\n\n")
	}
	if !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}
	fmt.Fprint(m.out, rendered)
}

package workspace

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sjzsdu/uiforge/preview"
)

// Report 生成一次刷新结果的 Markdown 报告
func Report(p *Preview, files []string) string {
	var b strings.Builder

	b.WriteString("# Build report\n\n")
	fmt.Fprintf(&b, "- Files: %d\n", len(files))
	if p.Entry != "" {
		fmt.Fprintf(&b, "- Entry: `%s`\n", p.Entry)
	} else {
		b.WriteString("- Entry: none\n")
	}
	fmt.Fprintf(&b, "- Modules: %d\n", countLocalModules(p))
	fmt.Fprintf(&b, "- Errors: %d\n", len(p.Output.Errors))
	b.WriteString("\n")

	if len(p.Output.Errors) > 0 {
		b.WriteString("## Compile errors\n\n")
		for _, compileErr := range p.Output.Errors {
			entry := preview.ParseError(compileErr)
			location := entry.Path
			if entry.Line > 0 {
				location = fmt.Sprintf("%s:%d:%d", entry.Path, entry.Line, entry.Column)
			}
			fmt.Fprintf(&b, "- `%s` %s\n", location, entry.Message)
		}
		b.WriteString("\n")
	}

	if len(p.Output.Placeholders) > 0 {
		b.WriteString("## Placeholder modules\n\n")
		placeholders := append([]string(nil), p.Output.Placeholders...)
		sort.Strings(placeholders)
		for _, spec := range placeholders {
			fmt.Fprintf(&b, "- `%s`\n", spec)
		}
		b.WriteString("\n")
	}

	if len(p.Output.Errors) == 0 {
		b.WriteString("Preview is ready.\n")
	}
	return b.String()
}

// countLocalModules 统计解析表中不同的本地模块数量
func countLocalModules(p *Preview) int {
	refs := make(map[string]bool)
	for _, ref := range p.Output.ImportMap.Imports {
		if strings.HasPrefix(ref, "data:") {
			refs[ref] = true
		}
	}
	return len(refs)
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/charmbracelet/lipgloss"
	"github.com/sjzsdu/uiforge/helper"
	"github.com/sjzsdu/uiforge/helper/renders"
	"github.com/sjzsdu/uiforge/lang"
	uitools "github.com/sjzsdu/uiforge/tools"
	"github.com/sjzsdu/uiforge/workspace"
	"github.com/spf13/cobra"
	"github.com/tmc/langchaingo/tools"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: lang.T("Interactive file editing shell"),
	RunE:  runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3")).Bold(true)
)

type shellCommand struct {
	usage string
	desc  string
	run   func(sh *shell, args []string) error
}

var shellCommands map[string]shellCommand

func init() {
	shellCommands = map[string]shellCommand{
		"ls":      {"ls [dir]", "List a directory", (*shell).list},
		"cat":     {"cat <path>", "Print a file", (*shell).cat},
		"view":    {"view <path> [start end]", "Print a file with line numbers", (*shell).view},
		"create":  {"create <path> [text]", "Create a new file", (*shell).create},
		"edit":    {"edit <path>", "Edit a file in vim", (*shell).edit},
		"replace": {"replace <path> <old> <new>", "Replace every occurrence of old", (*shell).replace},
		"insert":  {"insert <path> <line> <text>", "Insert text after a line", (*shell).insert},
		"mv":      {"mv <from> <to>", "Rename a file or directory", (*shell).rename},
		"rm":      {"rm <path>", "Delete a file or directory", (*shell).remove},
		"status":  {"status", "Compile and show the build report", (*shell).status},
		"save":    {"save [name]", "Save a snapshot", (*shell).save},
		"load":    {"load <name>", "Load a snapshot", (*shell).load},
		"import":  {"import <dir> [prefix]", "Import a directory from disk", (*shell).importDir},
		"export":  {"export <dir>", "Write all files to disk", (*shell).exportDir},
		"reset":   {"reset", "Remove every file", (*shell).reset},
		"tool":    {"tool [name] [json]", "List tools or call one with JSON input", (*shell).callTool},
		"help":    {"help", "Show commands", (*shell).help},
	}
}

// shell 交互式终端，命令都作用于同一个会话
type shell struct {
	session  *workspace.Session
	tools    []tools.Tool
	out      io.Writer
	renderer *renders.MarkdownRenderer
	confirm  func(question string) (bool, error)
	editor   func(initial, ext string) (string, error)
}

func newShell(session *workspace.Session, out io.Writer) (*shell, error) {
	renderer, err := renders.NewMarkdownRendererTo(out, 100)
	if err != nil {
		return nil, err
	}
	return &shell{
		session:  session,
		tools:    uitools.CreateTools(session),
		out:      out,
		renderer: renderer,
		confirm: func(question string) (bool, error) {
			return helper.PromptYesNo(question, false)
		},
		editor: helper.EditInVim,
	}, nil
}

func runShell(cmd *cobra.Command, args []string) error {
	session, err := openSession()
	if err != nil {
		return err
	}
	sh, err := newShell(session, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	fmt.Fprintln(sh.out, mutedStyle.Render("Type 'help' for commands, 'exit' to quit."))
	for {
		line, err := helper.ReadFromTerminal(promptStyle.Render("uiforge> "), sh.complete)
		if err != nil {
			fmt.Fprintln(sh.out, errorStyle.Render(lang.T("Error reading input")+": "+err.Error()))
			continue
		}
		if sh.execute(line) {
			break
		}
	}

	if err := saveSession(session); err != nil {
		return err
	}
	fmt.Fprintln(sh.out, mutedStyle.Render(lang.T("Session terminated")))
	return nil
}

// execute 执行一行命令，返回 true 表示退出
func (sh *shell) execute(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	args, err := helper.SplitArgs(line)
	if err != nil {
		sh.fail(err)
		return false
	}
	if len(args) == 0 {
		return false
	}

	name := args[0]
	switch name {
	case "exit", "quit":
		return true
	case "vim":
		sh.fail(fmt.Errorf("use 'edit <path>' to open a file in vim"))
		return false
	}

	command, ok := shellCommands[name]
	if !ok {
		sh.fail(fmt.Errorf("%s: %s", lang.T("Unknown command"), name))
		return false
	}
	if err := command.run(sh, args[1:]); err != nil {
		sh.fail(err)
	}
	return false
}

func (sh *shell) fail(err error) {
	fmt.Fprintln(sh.out, errorStyle.Render(err.Error()))
}

// printStatus 输出会话返回的状态字符串，以 Error: 开头的按错误样式显示
func (sh *shell) printStatus(status string) {
	if strings.HasPrefix(status, "Error:") {
		fmt.Fprintln(sh.out, errorStyle.Render(status))
		return
	}
	fmt.Fprintln(sh.out, okStyle.Render(status))
}

func requireArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

func (sh *shell) list(args []string) error {
	dir := "/"
	if len(args) > 0 {
		dir = args[0]
	}
	fmt.Fprintln(sh.out, sh.session.View(dir, nil))
	return nil
}

func (sh *shell) cat(args []string) error {
	if err := requireArgs(args, 1, shellCommands["cat"].usage); err != nil {
		return err
	}
	content, ok := sh.session.ReadFile(args[0])
	if !ok {
		return fmt.Errorf("file not found: %s", args[0])
	}
	fmt.Fprint(sh.out, sh.renderer.Render(helper.CodeFence(args[0], content)))
	return nil
}

func (sh *shell) view(args []string) error {
	if err := requireArgs(args, 1, shellCommands["view"].usage); err != nil {
		return err
	}
	var viewRange []int
	if len(args) >= 3 {
		start, err1 := strconv.Atoi(args[1])
		end, err2 := strconv.Atoi(args[2])
		if err1 != nil || err2 != nil {
			return fmt.Errorf("usage: %s", shellCommands["view"].usage)
		}
		viewRange = []int{start, end}
	}
	fmt.Fprintln(sh.out, sh.session.View(args[0], viewRange))
	return nil
}

func (sh *shell) create(args []string) error {
	if err := requireArgs(args, 1, shellCommands["create"].usage); err != nil {
		return err
	}
	text := ""
	if len(args) >= 2 {
		text = unescape(args[1])
	}
	sh.printStatus(sh.session.Create(args[0], text))
	return nil
}

func (sh *shell) edit(args []string) error {
	if err := requireArgs(args, 1, shellCommands["edit"].usage); err != nil {
		return err
	}
	current, _ := sh.session.ReadFile(args[0])
	edited, err := sh.editor(current, path.Ext(args[0]))
	if err != nil {
		return err
	}
	if edited == current {
		fmt.Fprintln(sh.out, mutedStyle.Render("No changes"))
		return nil
	}
	if !sh.session.WriteFile(args[0], edited) {
		return fmt.Errorf("cannot write %s", args[0])
	}
	sh.printStatus("Saved " + args[0])
	return nil
}

func (sh *shell) replace(args []string) error {
	if err := requireArgs(args, 3, shellCommands["replace"].usage); err != nil {
		return err
	}
	sh.printStatus(sh.session.Replace(args[0], unescape(args[1]), unescape(args[2])))
	return nil
}

func (sh *shell) insert(args []string) error {
	if err := requireArgs(args, 3, shellCommands["insert"].usage); err != nil {
		return err
	}
	line, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid line number %q", args[1])
	}
	sh.printStatus(sh.session.Insert(args[0], line, unescape(args[2])))
	return nil
}

func (sh *shell) rename(args []string) error {
	if err := requireArgs(args, 2, shellCommands["mv"].usage); err != nil {
		return err
	}
	sh.printStatus(sh.session.Rename(args[0], args[1]))
	return nil
}

func (sh *shell) remove(args []string) error {
	if err := requireArgs(args, 1, shellCommands["rm"].usage); err != nil {
		return err
	}
	sh.printStatus(sh.session.Delete(args[0]))
	return nil
}

func (sh *shell) status(args []string) error {
	p := sh.session.Latest()
	fmt.Fprint(sh.out, sh.renderer.Render(workspace.Report(p, sh.session.Files())))
	return nil
}

func (sh *shell) save(args []string) error {
	name := snapshotName
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		return fmt.Errorf("usage: %s", shellCommands["save"].usage)
	}
	store, err := workspace.DefaultStore()
	if err != nil {
		return err
	}
	if err := sh.session.Save(store, name); err != nil {
		return err
	}
	sh.printStatus("Saved snapshot " + name)
	return nil
}

func (sh *shell) load(args []string) error {
	if err := requireArgs(args, 1, shellCommands["load"].usage); err != nil {
		return err
	}
	store, err := workspace.DefaultStore()
	if err != nil {
		return err
	}
	if err := sh.session.Load(store, args[0]); err != nil {
		return err
	}
	sh.printStatus("Loaded snapshot " + args[0])
	return nil
}

func (sh *shell) importDir(args []string) error {
	if err := requireArgs(args, 1, shellCommands["import"].usage); err != nil {
		return err
	}
	prefix := "/"
	if len(args) >= 2 {
		prefix = args[1]
	}
	if err := sh.session.LoadDirAt(args[0], prefix); err != nil {
		return err
	}
	sh.printStatus(fmt.Sprintf("Imported %s into %s", args[0], prefix))
	return nil
}

func (sh *shell) exportDir(args []string) error {
	if err := requireArgs(args, 1, shellCommands["export"].usage); err != nil {
		return err
	}
	if err := sh.session.WriteDir(args[0]); err != nil {
		return err
	}
	sh.printStatus("Exported to " + args[0])
	return nil
}

func (sh *shell) reset(args []string) error {
	ok, err := sh.confirm("Remove every file? (y/N) ")
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	sh.session.Reset()
	sh.printStatus("Workspace cleared")
	return nil
}

// callTool 以助手的方式调用工具，输入为 JSON
func (sh *shell) callTool(args []string) error {
	if len(args) == 0 {
		for _, tool := range sh.tools {
			fmt.Fprintf(sh.out, "%s\n%s\n\n", promptStyle.Render(tool.Name()), mutedStyle.Render(tool.Description()))
		}
		return nil
	}
	if err := requireArgs(args, 2, shellCommands["tool"].usage); err != nil {
		return err
	}

	for _, tool := range sh.tools {
		if tool.Name() != args[0] {
			continue
		}
		result, err := tool.Call(context.Background(), args[1])
		if err != nil {
			return err
		}
		sh.printStatus(result)
		return nil
	}
	return fmt.Errorf("unknown tool: %s", args[0])
}

func (sh *shell) help(args []string) error {
	names := make([]string, 0, len(shellCommands))
	for name := range shellCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := shellCommands[name]
		fmt.Fprintf(sh.out, "  %-30s %s\n", c.usage, mutedStyle.Render(c.desc))
	}
	fmt.Fprintf(sh.out, "  %-30s %s\n", "exit", mutedStyle.Render("Leave the shell"))
	return nil
}

// complete 首个单词补全命令名，之后补全文件路径
func (sh *shell) complete(d prompt.Document) []prompt.Suggest {
	before := d.TextBeforeCursor()
	word := d.GetWordBeforeCursor()
	if !strings.Contains(strings.TrimLeft(before, " "), " ") {
		suggestions := make([]prompt.Suggest, 0, len(shellCommands))
		for name, c := range shellCommands {
			suggestions = append(suggestions, prompt.Suggest{Text: name, Description: c.desc})
		}
		sort.Slice(suggestions, func(i, j int) bool { return suggestions[i].Text < suggestions[j].Text })
		return prompt.FilterHasPrefix(suggestions, word, true)
	}

	files := sh.session.Files()
	suggestions := make([]prompt.Suggest, 0, len(files))
	for _, file := range files {
		suggestions = append(suggestions, prompt.Suggest{Text: file})
	}
	return prompt.FilterHasPrefix(suggestions, word, false)
}

// unescape 将参数中的 \n 和 \t 还原为换行和制表符
func unescape(s string) string {
	return strings.NewReplacer(`\n`, "\n", `\t`, "\t").Replace(s)
}

package helper

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/c-bata/go-prompt"
	"github.com/google/uuid"
)

// CommandExists checks if a command exists in the system PATH
func CommandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

// ReadFromTerminal 读取一行输入，completer 为空时不提供补全
//
// Ctrl+C 返回 "quit"，Ctrl+V 返回 "vim"。
func ReadFromTerminal(promptText string, completer prompt.Completer) (string, error) {
	var result string
	done := make(chan struct{})
	once := &sync.Once{}

	if completer == nil {
		completer = func(d prompt.Document) []prompt.Suggest { return nil }
	}

	p := prompt.New(
		func(in string) {
			result = in
			once.Do(func() { close(done) })
		},
		completer,
		prompt.OptionPrefix(""), // 移除默认提示符
		prompt.OptionTitle("uiforge"),
		prompt.OptionPrefixTextColor(prompt.Blue),
		prompt.OptionInputTextColor(prompt.DefaultColor),
		prompt.OptionAddKeyBind(
			prompt.KeyBind{
				Key: prompt.ControlV,
				Fn: func(b *prompt.Buffer) {
					result = "vim"
					once.Do(func() { close(done) })
				},
			},
			prompt.KeyBind{
				Key: prompt.ControlC,
				Fn: func(b *prompt.Buffer) {
					result = "quit"
					once.Do(func() { close(done) })
				},
			},
		),
		prompt.OptionSetExitCheckerOnInput(func(in string, breakline bool) bool {
			return breakline
		}),
	)

	// 手动输出提示符
	fmt.Print(promptText)

	go p.Run()
	<-done

	return result, nil
}

// EditInVim 用 vim 编辑 initial 并返回编辑后的内容
func EditInVim(initial, ext string) (string, error) {
	if !CommandExists("vim") {
		return "", fmt.Errorf("vim not found in PATH")
	}

	tempFile, err := os.CreateTemp("", "uiforge_"+uuid.NewString()[:8]+"_*"+ext)
	if err != nil {
		return "", fmt.Errorf("error creating temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.WriteString(initial); err != nil {
		tempFile.Close()
		return "", fmt.Errorf("error writing temp file: %w", err)
	}
	tempFile.Close()

	cmd := exec.Command("vim", tempFile.Name())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running Vim: %w", err)
	}

	content, err := os.ReadFile(tempFile.Name())
	if err != nil {
		return "", fmt.Errorf("error reading file: %w", err)
	}
	return string(content), nil
}

func PromptYesNo(prompt string, defaultYes bool) (bool, error) {
	return promptYesNoFrom(os.Stdin, os.Stdout, prompt, defaultYes)
}

func promptYesNoFrom(in io.Reader, out io.Writer, prompt string, defaultYes bool) (bool, error) {
	fmt.Fprint(out, prompt)
	scanner := bufio.NewScanner(in)
	// Support \n, \r\n and lone \r
	scanner.Split(scanAnyLine)
	for {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return defaultYes, err
			}
			return defaultYes, io.EOF
		}
		ans := strings.TrimSpace(scanner.Text())
		if ans == "" {
			return defaultYes, nil
		}
		switch normalizeYN(ans) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprint(out, "Please enter y or n: ")
		}
	}
}

// scanAnyLine is like bufio.ScanLines but also treats a lone '\r' as a line ending.
func scanAnyLine(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		// Trim optional preceding '\r'
		if i > 0 && data[i-1] == '\r' {
			return i + 1, data[:i-1], nil
		}
		return i + 1, data[:i], nil
	}
	if i := bytes.IndexByte(data, '\r'); i >= 0 { // handle lone CR
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// normalizeYN normalizes full-width and common Chinese yes/no inputs.
func normalizeYN(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	// Convert full-width ASCII to half-width
	rs := []rune(s)
	for i, r := range rs {
		if r >= 0xFF01 && r <= 0xFF5E {
			rs[i] = r - 0xFEE0
		}
	}
	s = string(rs)
	// Map common Chinese
	switch s {
	case "是", "好", "确定":
		return "yes"
	case "否", "不":
		return "no"
	}
	return s
}

// SplitArgs 按空白切分命令行，支持单双引号
//
// 反斜杠只转义空白、引号和反斜杠本身，其余情况原样保留，因此 \n 会留给调用方处理。
func SplitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
		inArg   bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\' && quote != '\'':
			if i+1 >= len(runes) {
				return nil, fmt.Errorf("trailing backslash")
			}
			next := runes[i+1]
			if strings.ContainsRune(" \t\"'\\", next) {
				current.WriteRune(next)
				i++
			} else {
				current.WriteRune(r)
			}
			inArg = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote")
	}
	if inArg {
		args = append(args, current.String())
	}
	return args, nil
}

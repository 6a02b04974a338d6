package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/sjzsdu/uiforge/helper/renders"
	"github.com/sjzsdu/uiforge/lang"
	"github.com/sjzsdu/uiforge/workspace"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: lang.T("Compile the project once and report errors"),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkEntry, "entry", "", lang.T("Set entry module"))
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Print the build result as JSON")
}

// checkResult check --json 的输出
type checkResult struct {
	Version      uint64   `json:"version"`
	Entry        string   `json:"entry"`
	Files        []string `json:"files"`
	Errors       any      `json:"errors"`
	Placeholders []string `json:"placeholders"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	session, err := openSession()
	if err != nil {
		return err
	}
	if checkEntry != "" {
		session.SetEntry(checkEntry)
	}

	result := session.Refresh()
	files := session.Files()
	out := cmd.OutOrStdout()

	if checkJSON {
		data, err := json.MarshalIndent(checkResult{
			Version:      result.Version,
			Entry:        result.Entry,
			Files:        files,
			Errors:       result.Output.Errors,
			Placeholders: result.Output.Placeholders,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	} else {
		renderer, err := renders.NewMarkdownRendererTo(out, 100)
		if err != nil {
			return err
		}
		if err := renderer.WriteStream(workspace.Report(result, files)); err != nil {
			return err
		}
		renderer.Done()
	}

	if n := len(result.Output.Errors); n > 0 {
		return fmt.Errorf("%d compile error(s)", n)
	}
	return nil
}

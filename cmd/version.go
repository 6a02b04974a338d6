package cmd

import (
	"fmt"

	"github.com/sjzsdu/uiforge/lang"
	"github.com/sjzsdu/uiforge/share"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: lang.T("Print version information"),
	Long:  lang.T("Print detailed version information of uiforge"),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", lang.T("uiforge version"), share.VERSION)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

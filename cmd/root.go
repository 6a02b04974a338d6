package cmd

import (
	"fmt"
	"os"

	"github.com/sjzsdu/uiforge/config"
	"github.com/sjzsdu/uiforge/lang"
	"github.com/sjzsdu/uiforge/logging"
	"github.com/sjzsdu/uiforge/share"
	"github.com/spf13/cobra"
)

var RootCmd = rootCmd

var rootCmd = &cobra.Command{
	Use:   share.BUILDNAME,
	Short: lang.T("Live UI preview workbench"),
	Long:  lang.T("In-memory UI project with a live preview for automated assistants"),
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		// 如果没有参数，显示帮助信息
		if len(args) == 0 {
			cmd.Help()
			return
		}
		fmt.Fprintln(os.Stderr, lang.T("Invalid arguments")+": ", args)
		os.Exit(1)
	},
}

func Execute() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&workDir, "directory", "d", "", lang.T("Work directory path"))
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "v", false, lang.T("Debug mode"))
	rootCmd.PersistentFlags().StringVarP(&snapshotName, "snapshot", "s", "", lang.T("Snapshot name to load and save"))

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		share.SetDebug(debugMode)
		if err := config.Load(); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return logging.Init(loggingConfig())
	}
}

// loggingConfig 调试模式使用控制台格式输出 debug 日志
func loggingConfig() logging.Config {
	cfg := logging.Config{
		Level:  config.Get(config.KeyLogLevel),
		Format: "json",
	}
	if share.GetDebug() {
		cfg.Level = "debug"
		cfg.Format = "console"
	}
	return cfg
}

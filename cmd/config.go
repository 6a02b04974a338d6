package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sjzsdu/uiforge/config"
	"github.com/sjzsdu/uiforge/lang"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: lang.T("Set config"),
	Long:  lang.T("Set global configuration"),
	RunE:  handleConfigCommand,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVarP(&showAllConfigs, "list", "l", false, lang.T("List all configurations"))

	// 通过遍历 ConfigKeys 自动添加所有配置项
	for _, key := range sortedConfigKeys() {
		info := config.ConfigKeys[key]
		desc := lang.T(info.Description)
		if len(info.Options) > 0 {
			desc += " (" + strings.Join(info.Options, ", ") + ")"
		}
		configCmd.Flags().String(key, info.Default, desc)
	}
}

func sortedConfigKeys() []string {
	keys := config.GetAllConfigKeys()
	sort.Strings(keys)
	return keys
}

func handleConfigCommand(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if showAllConfigs {
		fmt.Fprintln(out, lang.T("Current configurations:"))
		for _, key := range sortedConfigKeys() {
			fmt.Fprintf(out, "%s=%s\n", key, config.Get(key))
		}
		return nil
	}

	configChanged := false
	for _, key := range sortedConfigKeys() {
		flag := cmd.Flag(key)
		if flag == nil || !flag.Changed {
			continue
		}
		value, _ := cmd.Flags().GetString(key)
		if err := config.Set(key, value); err != nil {
			return err
		}
		configChanged = true
	}

	if configChanged {
		if err := config.Save(); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
	}
	return nil
}

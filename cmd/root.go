// Package cmd 实现 varwidth 命令行工具
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xmh1011/go-varwidth/config"
	"github.com/xmh1011/go-varwidth/log"
)

var (
	cfgFile    *string
	logCfgFile *string
	verbose    *bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "varwidth",
	Short: "Variable-width little-endian integer codec tools",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	SilenceUsage: true,
}

func init() {
	cfgFile = RootCmd.PersistentFlags().StringP("config", "c", "", "config file (ini)")
	logCfgFile = RootCmd.PersistentFlags().String("log-config", "", "logger config file (ini), overrides log_config in --config")
	verbose = RootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

// initConfig 依次加载配置文件和日志配置
func initConfig() error {
	if *cfgFile != "" {
		if err := config.Load(*cfgFile); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	logPath := config.GetLogConfigPath()
	if *logCfgFile != "" {
		logPath = *logCfgFile
	}
	if err := log.InitLogger(logPath); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if *verbose {
		log.SetLevel("debug")
	}
	return nil
}

func check(err error) {
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

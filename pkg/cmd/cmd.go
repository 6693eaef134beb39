// Package cmd contains the command line applications for the project.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yeisme/goatdesk/pkg/configs"
	"github.com/yeisme/goatdesk/pkg/log"
)

var (
	configPath string
	debug      bool

	rootCmd = &cobra.Command{
		Use:           configs.AppName,
		Short:         "GoatDesk listing dashboard backend",
		Long:          "GoatDesk 商品管理后台：商品、视频、留言接口与上传图片的引用维护和孤儿清理.",
		Version:       configs.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := configs.InitConfig(configPath); err != nil {
				return err
			}

			if debug {
				cfg := configs.GetConfig()
				cfg.Server.Debug = true
				cfg.Log.Level = "debug"
			}

			log.Init()

			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file or directory (default: ./, ./configs, $HOME/.goatdesk)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug mode and verbose logging")

	registerServeCommands()
	registerConfigsCommands()
	registerDBCommands()
	registerKVCommands()
	registerMQCommands()
	registerSweepCommands()
	registerAdminCommands()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

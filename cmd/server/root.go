package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zeromicro/go-zero/core/logx"
	"go.uber.org/zap"

	"jo3qma.com/pulsara_monitor/internal/config"
	"jo3qma.com/pulsara_monitor/internal/logger"
	"jo3qma.com/pulsara_monitor/internal/usecase"
)

// app はサブコマンド間で共有する設定とロガーです
type app struct {
	configFile string
	cfg        *config.Config
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "pulsara",
		Short:         "Pulsara Monitor: stalnote auction price watcher",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// ログはzapに集約するため、キャッシュ統計のlogx出力は止めます
			logx.DisableStat()

			cfg, err := loadConfig(viper.GetViper(), a.configFile)
			if err != nil {
				return err
			}
			l, err := logger.New(cfg.Log)
			if err != nil {
				return err
			}
			a.cfg, a.logger = cfg, l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default ./config/config.yaml or $HOME/.pulsara/config.yaml)")

	root.AddCommand(newServeCmd(a), newWatchCmd(a))
	return root
}

// loadConfig は設定を読み込み、更新間隔を許容範囲に収めます
func loadConfig(v *viper.Viper, configFile string) (*config.Config, error) {
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return nil, err
	}
	cfg.Monitor.DefaultInterval = usecase.ClampInterval(cfg.Monitor.DefaultInterval)
	return cfg, nil
}

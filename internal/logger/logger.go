package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config はロガーの設定です
type Config struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// New は設定に従って zap.Logger を作成します
// 時刻は ISO8601 形式で "time" キーに出力します
func New(cfg Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}

	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.EncoderConfig.TimeKey = "time"

	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		zc.Level = level
	}

	return zc.Build()
}

package config

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"jo3qma.com/pulsara_monitor/internal/logger"
)

// EnvPrefix は環境変数の接頭辞です（例: PULSARA_SERVER_PORT）
const EnvPrefix = "PULSARA"

// 既定値
const (
	DefaultPort            = "8080"
	DefaultBaseURL         = "https://backend.stalnote.ru"
	DefaultTimeout         = 10 * time.Second
	DefaultCatalogTTL      = time.Hour
	DefaultMonitorInterval = 10 * time.Second
)

// Config はアプリケーション全体の設定です
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Monitor  MonitorConfig  `mapstructure:"monitor"`
	Log      logger.Config  `mapstructure:"log"`
}

// ServerConfig はHTTPサーバーの設定です
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// UpstreamConfig は stalnote API の接続設定です
type UpstreamConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// CatalogConfig はカタログキャッシュの設定です
type CatalogConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// MonitorConfig は更新ループの設定です
type MonitorConfig struct {
	DefaultInterval time.Duration `mapstructure:"default_interval"`
}

// Addr は ListenAndServe に渡すアドレスを返します
func (s ServerConfig) Addr() string {
	return ":" + strings.TrimPrefix(s.Port, ":")
}

// SetDefaults は v に既定値を登録します
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("upstream.base_url", DefaultBaseURL)
	v.SetDefault("upstream.timeout", DefaultTimeout)
	// 空ならクライアント側の既定User-Agentを使います
	v.SetDefault("upstream.user_agent", "")
	v.SetDefault("catalog.ttl", DefaultCatalogTTL)
	v.SetDefault("monitor.default_interval", DefaultMonitorInterval)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Load は設定を読み込みます
//
// 優先順位は 環境変数 > 設定ファイル > 既定値 です。
// .env があれば先に読み込みます。configFile が空なら ./config と $HOME/.pulsara から
// config.yaml を探し、見つからなくてもエラーにはしません
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "failed on load .env")
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		path, err := homedir.Expand(configFile)
		if err != nil {
			return nil, errors.Wrap(err, "failed on expand config path")
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".pulsara"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed on read config")
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "failed on decode config")
	}
	return &c, nil
}

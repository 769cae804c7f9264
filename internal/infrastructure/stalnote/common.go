package stalnote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"jo3qma.com/pulsara_monitor/internal/domain/model"
)

const (
	// DefaultBaseURL は stalnote バックエンドのURLです
	DefaultBaseURL = "https://backend.stalnote.ru"
	// DefaultTimeout は1リクエストあたりのタイムアウトです
	DefaultTimeout = 10 * time.Second
	// DefaultUserAgent は一般的なブラウザに見せかけるUser-Agentです
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Options は上流クライアントの設定です
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Logger    *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// fetchJSON は指定されたURLからJSONを取得して out にデコードします
// 共通のヘッダー設定やエラーハンドリングを行います
// 失敗はすべて model.ErrUpstream を包んだエラーになります
// 通信やデコードの失敗は元のエラーもチェーンに残します
func fetchJSON(ctx context.Context, client *http.Client, userAgent, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", model.ErrUpstream, err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7")

	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to fetch %s: %w", model.ErrUpstream, url, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return errors.Wrapf(model.ErrUpstream, "failed to fetch %s: status %d", url, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode %s: %w", model.ErrUpstream, url, err)
	}

	return nil
}

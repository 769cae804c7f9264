package stalnote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"jo3qma.com/pulsara_monitor/internal/domain/model"
	"jo3qma.com/pulsara_monitor/internal/domain/repository"
)

// lotClient は stalnote のオークションAPIから出品一覧を取得する実装です
// 腐敗防止層として、上流の綴り（pottential, ammount）をドメインモデルに閉じ込めます
type lotClient struct {
	client    *http.Client
	baseURL   string
	userAgent string
	logger    *zap.Logger
}

// NewLotClient は新しいLotRepositoryの実装を作成します
func NewLotClient(opts Options) repository.LotRepository {
	opts = opts.withDefaults()
	return newLotClient(&http.Client{Timeout: opts.Timeout}, opts)
}

// newLotClient はテスト容易性のための内部コンストラクタです。
func newLotClient(client *http.Client, opts Options) *lotClient {
	opts = opts.withDefaults()
	return &lotClient{
		client:    client,
		baseURL:   opts.BaseURL,
		userAgent: opts.UserAgent,
		logger:    opts.Logger,
	}
}

// FetchLots は指定されたアイテムIDの出品一覧を取得します
func (c *lotClient) FetchLots(ctx context.Context, itemID string) ([]model.RawLot, error) {
	if itemID == "" {
		return nil, nil
	}

	u := fmt.Sprintf("%s/noauthorize/auctionitem/%s", c.baseURL, url.PathEscape(itemID))

	var lots []model.RawLot
	if err := fetchJSON(ctx, c.client, c.userAgent, u, &lots); err != nil {
		return nil, err
	}

	c.logger.Debug("lots fetched", zap.String("item_id", itemID), zap.Int("count", len(lots)))
	return lots, nil
}

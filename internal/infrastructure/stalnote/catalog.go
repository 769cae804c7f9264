package stalnote

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"jo3qma.com/pulsara_monitor/internal/domain/model"
	"jo3qma.com/pulsara_monitor/internal/domain/repository"
)

type catalogClient struct {
	client    *http.Client
	baseURL   string
	userAgent string
	logger    *zap.Logger
}

// NewCatalogClient は新しいCatalogRepositoryの実装を作成します
// キャッシュは持たないので、通常は NewCachedCatalog で包んで使います
func NewCatalogClient(opts Options) repository.CatalogRepository {
	opts = opts.withDefaults()
	return newCatalogClient(&http.Client{Timeout: opts.Timeout}, opts)
}

func newCatalogClient(client *http.Client, opts Options) *catalogClient {
	opts = opts.withDefaults()
	return &catalogClient{
		client:    client,
		baseURL:   opts.BaseURL,
		userAgent: opts.UserAgent,
		logger:    opts.Logger,
	}
}

// FetchCatalog はアイテムカタログ全件を取得します
func (c *catalogClient) FetchCatalog(ctx context.Context) ([]model.CatalogItem, error) {
	var items []model.CatalogItem
	if err := fetchJSON(ctx, c.client, c.userAgent, c.baseURL+"/noauthorize/GameItems/uniqAll", &items); err != nil {
		return nil, err
	}

	c.logger.Info("catalog fetched", zap.Int("count", len(items)))
	return items, nil
}

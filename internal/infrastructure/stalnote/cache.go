package stalnote

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/collection"

	"jo3qma.com/pulsara_monitor/internal/domain/model"
	"jo3qma.com/pulsara_monitor/internal/domain/repository"
)

// DefaultCatalogTTL はカタログのキャッシュ保持時間です
const DefaultCatalogTTL = time.Hour

const catalogKey = "catalog"

// cachedCatalog はカタログ取得結果をTTL付きでメモリに保持します
// 取得に失敗した結果はキャッシュしないので、次のサイクルで再取得されます
type cachedCatalog struct {
	next  repository.CatalogRepository
	cache *collection.Cache
}

// NewCachedCatalog は next の結果を ttl の間キャッシュするCatalogRepositoryを作成します
func NewCachedCatalog(next repository.CatalogRepository, ttl time.Duration) (repository.CatalogRepository, error) {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	cache, err := collection.NewCache(ttl, collection.WithLimit(1), collection.WithName("catalog"))
	if err != nil {
		return nil, errors.Wrap(err, "failed on create catalog cache")
	}
	return &cachedCatalog{next: next, cache: cache}, nil
}

// FetchCatalog はキャッシュ済みのカタログを返し、なければ上流から取得します
// 同時に呼ばれた場合も上流へのリクエストは1本にまとめられます
func (c *cachedCatalog) FetchCatalog(ctx context.Context) ([]model.CatalogItem, error) {
	v, err := c.cache.Take(catalogKey, func() (any, error) {
		return c.next.FetchCatalog(ctx)
	})
	if err != nil {
		return nil, err
	}
	items, _ := v.([]model.CatalogItem)
	return items, nil
}

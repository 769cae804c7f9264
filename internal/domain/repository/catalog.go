package repository

import (
	"context"

	"jo3qma.com/pulsara_monitor/internal/domain/model"
)

// CatalogRepository はアイテムカタログ全件の取得方法を抽象化します。
type CatalogRepository interface {
	// FetchCatalog はカタログを上流の並び順のまま返します
	FetchCatalog(ctx context.Context) ([]model.CatalogItem, error)
}

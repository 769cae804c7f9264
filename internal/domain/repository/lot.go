package repository

import (
	"context"

	"jo3qma.com/pulsara_monitor/internal/domain/model"
)

// LotRepository はアイテムの出品一覧の取得方法を抽象化します。
// 実装が外部APIなのか、テスト用のフェイクなのかはドメイン層は知りません。
type LotRepository interface {
	// FetchLots は指定されたアイテムIDの出品一覧を取得します
	FetchLots(ctx context.Context, itemID string) ([]model.RawLot, error)
}

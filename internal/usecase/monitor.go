package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"jo3qma.com/pulsara_monitor/internal/domain/model"
	"jo3qma.com/pulsara_monitor/internal/domain/repository"
)

// itemResolver は MonitorUsecase が必要とする名前解決の振る舞いです
type itemResolver interface {
	Resolve(ctx context.Context, query string) (model.CatalogItem, bool)
}

// MonitorUsecase は「名前解決 → 出品取得 → 絞り込み」の1サイクルを担当します
type MonitorUsecase struct {
	resolver itemResolver
	lots     repository.LotRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewMonitorUsecase は新しいMonitorUsecaseインスタンスを作成します
func NewMonitorUsecase(resolver itemResolver, lots repository.LotRepository, logger *zap.Logger) *MonitorUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MonitorUsecase{
		resolver: resolver,
		lots:     lots,
		logger:   logger,
		now:      time.Now,
	}
}

// ResolveItem はクエリをアイテムに解決します
func (u *MonitorUsecase) ResolveItem(ctx context.Context, query string) (model.CatalogItem, bool) {
	return u.resolver.Resolve(ctx, query)
}

// Snapshot は1回分の更新サイクルを実行します
// 上流の失敗は空の結果として扱うので、エラーは返しません
func (u *MonitorUsecase) Snapshot(ctx context.Context, req model.WatchRequest) model.Snapshot {
	snap := model.Snapshot{
		State:     model.StateIdle,
		Query:     req.Query,
		UpdatedAt: u.now(),
	}

	if utf8.RuneCountInString(strings.TrimSpace(req.Query)) < MinQueryLength {
		return snap
	}

	item, ok := u.resolver.Resolve(ctx, req.Query)
	if !ok {
		snap.State = model.StateNotFound
		return snap
	}
	snap.ItemID, snap.ItemName = item.ID, item.Name

	raw, err := u.lots.FetchLots(ctx, item.ID)
	if err != nil {
		u.logger.Warn("lots unavailable, treating as empty",
			zap.String("item_id", item.ID), zap.Error(err))
		snap.Degraded = true
		raw = nil
	}

	snap.Table = ProcessLots(raw, req.Criteria.Normalize())
	if len(snap.Table.Lots) == 0 {
		snap.State = model.StateEmpty
	} else {
		snap.State = model.StateOK
	}
	snap.UpdatedAt = u.now()
	return snap
}

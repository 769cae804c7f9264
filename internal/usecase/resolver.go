package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"jo3qma.com/pulsara_monitor/internal/domain/model"
	"jo3qma.com/pulsara_monitor/internal/domain/repository"
)

// MatchCutoff はあいまい一致として採用する類似度の下限です
const MatchCutoff = 0.5

// MinQueryLength はこれより短いクエリでは名前解決を行いません
const MinQueryLength = 2

// Resolve は自由入力のクエリをカタログ中のアイテムに解決します
//
// 1. 前後の空白を除き、小文字に揃えます
// 2. 大文字小文字を無視した完全一致をカタログ順に探し、最初の一致を返します
// 3. 完全一致がなければ類似度が最も高い名前を1件だけ選びます（MatchCutoff 未満は不採用）
//
// 見つからない場合は ok=false を返します。エラーではありません
func Resolve(query string, catalog []model.CatalogItem) (item model.CatalogItem, ok bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(catalog) == 0 {
		return model.CatalogItem{}, false
	}

	for _, it := range catalog {
		if strings.ToLower(it.Name) == q {
			return it, true
		}
	}

	bestScore := -1.0
	bestName := ""
	for _, it := range catalog {
		// カタログ名を a、クエリを b として比較します（比較は非対称です）
		score := Similarity(it.Name, q)
		if score < MatchCutoff {
			continue
		}
		// 同点の場合は辞書順で大きい名前を採用します
		if score > bestScore || (score == bestScore && it.Name > bestName) {
			bestScore, bestName = score, it.Name
		}
	}
	if bestScore < 0 {
		return model.CatalogItem{}, false
	}

	// 同名が複数ある場合はカタログ順で最初のものを返します
	for _, it := range catalog {
		if it.Name == bestName {
			return it, true
		}
	}
	return model.CatalogItem{}, false
}

// ItemResolver はキャッシュ済みカタログを使ってアイテム名を解決します
type ItemResolver struct {
	repo   repository.CatalogRepository
	logger *zap.Logger
}

// NewItemResolver は新しいItemResolverインスタンスを作成します
func NewItemResolver(repo repository.CatalogRepository, logger *zap.Logger) *ItemResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItemResolver{
		repo:   repo,
		logger: logger,
	}
}

// Resolve はクエリをアイテムに解決します
// カタログの取得に失敗した場合は空のカタログとして扱い、見つからない扱いになります
func (r *ItemResolver) Resolve(ctx context.Context, query string) (model.CatalogItem, bool) {
	if utf8.RuneCountInString(strings.TrimSpace(query)) < MinQueryLength {
		return model.CatalogItem{}, false
	}

	catalog, err := r.repo.FetchCatalog(ctx)
	if err != nil {
		r.logger.Warn("catalog unavailable, treating as empty", zap.Error(err))
		catalog = nil
	}

	item, ok := Resolve(query, catalog)
	if !ok {
		r.logger.Info("item not found", zap.String("query", query), zap.Int("catalog_size", len(catalog)))
	}
	return item, ok
}

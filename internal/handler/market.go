package handler

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"jo3qma.com/pulsara_monitor/internal/domain/model"
)

const (
	// MarketServiceName はConnectサービスの完全修飾名です
	MarketServiceName = "pulsara.market.v1.MarketService"

	ResolveItemProcedure = "/" + MarketServiceName + "/ResolveItem"
	GetLotsProcedure     = "/" + MarketServiceName + "/GetLots"
)

// ResolveItemRequest はアイテム名解決のリクエストです
type ResolveItemRequest struct {
	Query string `json:"query"`
}

// ResolveItemResponse はアイテム名解決の結果です
// 見つからない場合はエラーではなく Found=false を返します
type ResolveItemResponse struct {
	Found bool   `json:"found"`
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
}

// GetLotsRequest は出品一覧取得のリクエストです
// Quality / Enhancement は空文字または "any" で指定なしになります
type GetLotsRequest struct {
	Query        string `json:"query"`
	Quality      string `json:"quality,omitempty"`
	Enhancement  string `json:"enhancement,omitempty"`
	MinAmount    int    `json:"minAmount,omitempty"`
	MaxUnitPrice int64  `json:"maxUnitPrice,omitempty"`
}

// marketService はハンドラーが必要とするユースケースの振る舞いです
type marketService interface {
	ResolveItem(ctx context.Context, query string) (model.CatalogItem, bool)
	Snapshot(ctx context.Context, req model.WatchRequest) model.Snapshot
}

// MarketHandler はConnectのハンドラー実装です
// プロトコル層とドメイン層（usecase）を橋渡しします
type MarketHandler struct {
	svc marketService
}

// NewMarketHandler は新しいMarketHandlerインスタンスを作成します
func NewMarketHandler(svc marketService) *MarketHandler {
	return &MarketHandler{svc: svc}
}

// ResolveItem は自由入力のアイテム名をカタログのアイテムに解決するRPCハンドラーです
func (h *MarketHandler) ResolveItem(
	ctx context.Context,
	req *connect.Request[ResolveItemRequest],
) (*connect.Response[ResolveItemResponse], error) {
	item, ok := h.svc.ResolveItem(ctx, req.Msg.Query)
	if !ok {
		return connect.NewResponse(&ResolveItemResponse{Found: false}), nil
	}
	return connect.NewResponse(&ResolveItemResponse{
		Found: true,
		ID:    item.ID,
		Name:  item.Name,
	}), nil
}

// GetLots は1回分の更新サイクルを実行し、その結果を返すRPCハンドラーです
func (h *MarketHandler) GetLots(
	ctx context.Context,
	req *connect.Request[GetLotsRequest],
) (*connect.Response[model.Snapshot], error) {
	criteria, err := criteriaFromStrings(req.Msg.Quality, req.Msg.Enhancement, req.Msg.MinAmount, req.Msg.MaxUnitPrice)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	snap := h.svc.Snapshot(ctx, model.WatchRequest{
		Query:    req.Msg.Query,
		Criteria: criteria,
	})
	return connect.NewResponse(&snap), nil
}

// NewMarketServiceHandler はサービスのパスとHTTPハンドラーを返します
// 返されたパスに mux.Handle で登録して使います
func NewMarketServiceHandler(h *MarketHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	resolve := connect.NewUnaryHandler(ResolveItemProcedure, h.ResolveItem, opts...)
	getLots := connect.NewUnaryHandler(GetLotsProcedure, h.GetLots, opts...)

	return "/" + MarketServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ResolveItemProcedure:
			resolve.ServeHTTP(w, r)
		case GetLotsProcedure:
			getLots.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// criteriaFromStrings は文字列で受け取った条件を FilterCriteria に変換します
func criteriaFromStrings(quality, enhancement string, minAmount int, maxUnitPrice int64) (model.FilterCriteria, error) {
	q, err := model.ParseQuality(quality)
	if err != nil {
		return model.FilterCriteria{}, err
	}
	e, err := model.ParseEnhancement(enhancement)
	if err != nil {
		return model.FilterCriteria{}, err
	}
	return model.FilterCriteria{
		Quality:      q,
		Enhancement:  e,
		MinAmount:    minAmount,
		MaxUnitPrice: maxUnitPrice,
	}.Normalize(), nil
}

package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// RawLot は上流APIが返すオークション出品1件です
// JSONキーは上流の綴り（pottential, ammount）のまま受け取ります
type RawLot struct {
	Quality     Quality `json:"quality"`
	Potential   int     `json:"pottential"` // 強化レベル（0〜15）
	Amount      int     `json:"ammount"`    // 数量
	BuyoutPrice int64   `json:"buyoutPrice"`
}

// UnmarshalJSON は欠けているフィールドにデフォルト値を補います
// quality=0, pottential=0, ammount=1
func (l *RawLot) UnmarshalJSON(b []byte) error {
	type alias RawLot
	a := alias{Amount: 1}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*l = RawLot(a)
	return nil
}

// Qty は単価計算に使う数量を返します。1未満は1として扱います
func (l RawLot) Qty() int {
	if l.Amount < 1 {
		return 1
	}
	return l.Amount
}

// DisplayLot は表示用に整形された出品です。リフレッシュごとに作り直されます
type DisplayLot struct {
	UnitPrice        int64   `json:"unitPrice"`
	Amount           int     `json:"amount"`
	TotalPrice       int64   `json:"totalPrice"`
	Potential        int     `json:"potential"`
	Quality          Quality `json:"quality"`
	UnitPriceText    string  `json:"unitPriceText"`
	TotalPriceText   string  `json:"totalPriceText"`
	EnhancementLabel string  `json:"enhancementLabel"`
	QualityLabel     string  `json:"qualityLabel"`
	ColorHint        string  `json:"colorHint"`
}

// FilterCriteria は利用者が選んだ絞り込み条件です
// Quality / Enhancement が nil の場合は「指定なし」を意味します
type FilterCriteria struct {
	Quality      *Quality
	Enhancement  *int
	MinAmount    int
	MaxUnitPrice int64 // 0 は上限なし
}

// LotSummary はフィルタ後の出品の簡易統計です
type LotSummary struct {
	Count        int             `json:"count"`
	MinUnitPrice int64           `json:"minUnitPrice"`
	AvgUnitPrice decimal.Decimal `json:"avgUnitPrice"`
}

// LotTable は1サイクル分の整形結果です
// 3つのフラグはフィルタ前の出品全体から算出されます
type LotTable struct {
	Lots                 []DisplayLot `json:"lots"`
	HasVariedEnhancement bool         `json:"hasVariedEnhancement"`
	HasVariedQuality     bool         `json:"hasVariedQuality"`
	ShowAmountColumn     bool         `json:"showAmountColumn"`
	Summary              LotSummary   `json:"summary"`
}

// State はスナップショットの表示状態です
type State string

const (
	StateIdle     State = "idle"      // クエリが短すぎる
	StateNotFound State = "not_found" // アイテム名が解決できない
	StateEmpty    State = "empty"     // 条件に合う出品がない
	StateOK       State = "ok"
)

// WatchRequest は監視1件分の入力です
type WatchRequest struct {
	Query    string
	Criteria FilterCriteria
	Interval time.Duration
}

// Snapshot は1回の更新サイクルの結果です
type Snapshot struct {
	State     State     `json:"state"`
	Query     string    `json:"query"`
	ItemID    string    `json:"itemId,omitempty"`
	ItemName  string    `json:"itemName,omitempty"`
	Table     LotTable  `json:"table"`
	Degraded  bool      `json:"degraded"` // 上流の取得に失敗し空の結果で代用した
	UpdatedAt time.Time `json:"updatedAt"`
}

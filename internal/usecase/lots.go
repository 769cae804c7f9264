package usecase

import (
	"sort"

	"github.com/shopspring/decimal"

	"jo3qma.com/pulsara_monitor/internal/domain/model"
)

// ProcessLots は生の出品一覧を条件で絞り込み、単価の昇順に並べた表示用の表を返します
//
// 列の表示フラグは絞り込み前の出品全体から計算し、絞り込みの挙動もこれに従います。
// 各出品は次の順で判定し、条件を満たさなければその時点で除外します
//
//  1. レア度にばらつきがあり、レア度が指定されていれば一致しないものを除外
//  2. 強化レベルにばらつきがあり、強化レベルが指定されていれば一致しないものを除外
//  3. 数量列を表示する場合、数量が MinAmount 未満のものを除外
//  4. 即決価格が0以下のものを除外
//  5. 単価（切り捨て）が MaxUnitPrice を超えるものを除外（0は上限なし）
func ProcessLots(raw []model.RawLot, criteria model.FilterCriteria) model.LotTable {
	table := model.LotTable{
		Lots: make([]model.DisplayLot, 0, len(raw)),
	}

	qualities := make(map[model.Quality]struct{}, 6)
	for _, lot := range raw {
		if lot.Potential > 0 {
			table.HasVariedEnhancement = true
		}
		if lot.Amount > 1 {
			table.ShowAmountColumn = true
		}
		qualities[lot.Quality] = struct{}{}
	}
	table.HasVariedQuality = len(qualities) > 1

	for _, lot := range raw {
		if table.HasVariedQuality && criteria.Quality != nil && lot.Quality != *criteria.Quality {
			continue
		}
		if table.HasVariedEnhancement && criteria.Enhancement != nil && lot.Potential != *criteria.Enhancement {
			continue
		}
		amount := lot.Qty()
		if table.ShowAmountColumn && amount < criteria.MinAmount {
			continue
		}
		if lot.BuyoutPrice <= 0 {
			continue
		}
		unit := lot.BuyoutPrice / int64(amount)
		if criteria.MaxUnitPrice > 0 && unit > criteria.MaxUnitPrice {
			continue
		}

		table.Lots = append(table.Lots, model.DisplayLot{
			UnitPrice:        unit,
			Amount:           amount,
			TotalPrice:       lot.BuyoutPrice,
			Potential:        lot.Potential,
			Quality:          lot.Quality,
			UnitPriceText:    FormatPrice(unit),
			TotalPriceText:   FormatPrice(lot.BuyoutPrice),
			EnhancementLabel: FormatEnhancement(lot.Potential),
			QualityLabel:     lot.Quality.Label(),
			ColorHint:        lot.Quality.Color(),
		})
	}

	sort.SliceStable(table.Lots, func(i, j int) bool {
		return table.Lots[i].UnitPrice < table.Lots[j].UnitPrice
	})

	table.Summary = summarize(table.Lots)
	return table
}

// summarize は並べ替え済みの出品から件数・最安値・平均単価を求めます
func summarize(lots []model.DisplayLot) model.LotSummary {
	s := model.LotSummary{Count: len(lots), AvgUnitPrice: decimal.Zero}
	if len(lots) == 0 {
		return s
	}

	sum := decimal.Zero
	for _, l := range lots {
		sum = sum.Add(decimal.NewFromInt(l.UnitPrice))
	}
	s.MinUnitPrice = lots[0].UnitPrice
	s.AvgUnitPrice = sum.Div(decimal.NewFromInt(int64(len(lots)))).Round(2)
	return s
}

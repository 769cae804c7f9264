package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Quality はアイテムのレア度（品質ティア）を表します
// 0（Common）から5（Legendary）までの厳密な全順序を持ちます
type Quality int

const (
	QualityCommon      Quality = 0
	QualityUncommon    Quality = 1
	QualitySpecial     Quality = 2
	QualityRare        Quality = 3
	QualityExceptional Quality = 4
	QualityLegendary   Quality = 5
)

// AnyLabel はフィルタ未指定（「Любая」）を表す表示名です
const AnyLabel = "Любая"

type qualityInfo struct {
	key   string
	label string
	color string
}

var qualityTable = [...]qualityInfo{
	QualityCommon:      {key: "common", label: "Обычный", color: "#FFFFFF"},
	QualityUncommon:    {key: "uncommon", label: "Необычный", color: "#20B2AA"},
	QualitySpecial:     {key: "special", label: "Особый", color: "#1E90FF"},
	QualityRare:        {key: "rare", label: "Редкий", color: "#9370DB"},
	QualityExceptional: {key: "exceptional", label: "Исключительный", color: "#FF4500"},
	QualityLegendary:   {key: "legendary", label: "Легендарный", color: "#FFD700"},
}

// Qualities は全ティアを昇順で返します（セレクトボックス用）
func Qualities() []Quality {
	return []Quality{
		QualityCommon, QualityUncommon, QualitySpecial,
		QualityRare, QualityExceptional, QualityLegendary,
	}
}

// Known は 0〜5 の既知コードかどうかを返します
func (q Quality) Known() bool {
	return q >= QualityCommon && q <= QualityLegendary
}

func (q Quality) info() qualityInfo {
	// 範囲外のコードはそのまま通し、表示だけCommonにフォールバックします
	if !q.Known() {
		return qualityTable[QualityCommon]
	}
	return qualityTable[q]
}

// Label はロシア語の表示名を返します
func (q Quality) Label() string { return q.info().label }

// Color はティアに対応する表示色を返します
func (q Quality) Color() string { return q.info().color }

// Key は英語の識別子を返します
func (q Quality) Key() string { return q.info().key }

func (q Quality) String() string { return q.Key() }

// ParseQuality はフィルタ指定文字列を解釈します
// 空文字・"any"・"Любая" は未指定（nil）を返します
// 数値コード、英語キー、ロシア語表示名のいずれも受け付けます
func ParseQuality(s string) (*Quality, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "any") || s == AnyLabel {
		return nil, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		q := Quality(n)
		if !q.Known() {
			return nil, fmt.Errorf("%w: quality %d out of range", ErrInvalidCriteria, n)
		}
		return &q, nil
	}
	for i, info := range qualityTable {
		if strings.EqualFold(s, info.key) || s == info.label {
			q := Quality(i)
			return &q, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown quality %q", ErrInvalidCriteria, s)
}

package model

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxEnhancement は選択肢として提示する強化レベルの上限です
const MaxEnhancement = 15

// ParseEnhancement は強化レベルの指定文字列を解釈します
// 空文字・"any"・"Любая" は未指定（nil）です
func ParseEnhancement(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "any") || s == AnyLabel {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, "+"))
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: enhancement %q", ErrInvalidCriteria, s)
	}
	return &n, nil
}

// Normalize は数値条件を下限に丸めた条件を返します
func (c FilterCriteria) Normalize() FilterCriteria {
	if c.MinAmount < 1 {
		c.MinAmount = 1
	}
	if c.MaxUnitPrice < 0 {
		c.MaxUnitPrice = 0
	}
	return c
}

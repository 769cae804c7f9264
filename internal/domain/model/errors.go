package model

import "errors"

var (
	// ErrUpstream は上流API（カタログ・出品一覧）の取得失敗を表します
	// 画面上は空の結果として扱いますが、ログで区別できるように独立したエラー種別にしています
	ErrUpstream = errors.New("upstream unavailable")

	// ErrInvalidCriteria はフィルタ条件の指定が不正なことを表します
	ErrInvalidCriteria = errors.New("invalid filter criteria")
)

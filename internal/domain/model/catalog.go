package model

// CatalogItem はアイテムカタログの1件を表すドメインモデルです
// 上流APIは他にも多くのフィールドを返しますが、名前解決に必要なものだけを保持します
type CatalogItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

package handler

import "encoding/json"

// jsonCodec は生成コードを持たない素の構造体をConnectでやり取りするためのコーデックです
// 既定の "json"（protojson）を置き換えます
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

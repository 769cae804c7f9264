package main

import (
	"jo3qma.com/pulsara_monitor/internal/infrastructure/stalnote"
	"jo3qma.com/pulsara_monitor/internal/usecase"
)

// buildMonitor は依存関係を組み立てます（依存性注入）
// 上流APIのクライアントをリポジトリとして注入することで、腐敗防止層のパターンを実現します
func (a *app) buildMonitor() (*usecase.MonitorUsecase, *usecase.Poller, error) {
	opts := stalnote.Options{
		BaseURL:   a.cfg.Upstream.BaseURL,
		Timeout:   a.cfg.Upstream.Timeout,
		UserAgent: a.cfg.Upstream.UserAgent,
		Logger:    a.logger,
	}

	catalog, err := stalnote.NewCachedCatalog(stalnote.NewCatalogClient(opts), a.cfg.Catalog.TTL)
	if err != nil {
		return nil, nil, err
	}
	lots := stalnote.NewLotClient(opts)

	resolver := usecase.NewItemResolver(catalog, a.logger)
	monitor := usecase.NewMonitorUsecase(resolver, lots, a.logger)
	poller := usecase.NewPoller(monitor, a.logger)
	return monitor, poller, nil
}

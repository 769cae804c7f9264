package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jo3qma.com/pulsara_monitor/internal/handler"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "start the dashboard and the Connect API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve()
		},
	}
}

func (a *app) serve() error {
	monitor, poller, err := a.buildMonitor()
	if err != nil {
		return err
	}

	if !a.cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	tmpl := handler.Templates()
	dashboard := handler.NewDashboardHandler(monitor, poller, tmpl, a.cfg.Monitor.DefaultInterval, a.logger)
	router := handler.NewRouter(dashboard, handler.NewMarketHandler(monitor), tmpl, a.logger)

	// WebSocketの更新ループはこのコンテキストから派生させ、停止時にまとめて止めます
	baseCtx, stopLive := context.WithCancel(context.Background())
	defer stopLive()

	addr := a.cfg.Server.Addr()
	srv := &http.Server{
		Addr:        addr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// WebSocketの長時間接続があるため WriteTimeout は設定しません
		IdleTimeout: 60 * time.Second,
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// シグナル待機（Ctrl+Cなど）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		a.logger.Info("shutting down server", zap.String("signal", sig.String()))
	case err := <-serveErr:
		a.logger.Error("server failed to start", zap.Error(err))
		return err
	}

	// グレースフルシャットダウン
	stopLive()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		a.logger.Error("server forced to shutdown", zap.Error(err))
		return err
	}

	a.logger.Info("server exited")
	return nil
}

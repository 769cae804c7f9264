package handler

import (
	"html/template"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter はダッシュボードとConnectサービスをまとめたgin.Engineを作成します
// gin のモード設定は呼び出し側で行います
func NewRouter(dashboard *DashboardHandler, market *MarketHandler, tmpl *template.Template, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		ExposeHeaders:   []string{"Content-Length", "Content-Type"},
		MaxAge:          1 * time.Hour,
	}))
	r.SetHTMLTemplate(tmpl)

	r.GET("/", dashboard.Index)
	r.GET("/ws", dashboard.Live)
	r.GET("/healthz", dashboard.Healthz)

	path, h := NewMarketServiceHandler(market)
	r.Any(path+"*procedure", gin.WrapH(h))

	return r
}

// requestLogger はアクセスログをzapで出力するミドルウェアです
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

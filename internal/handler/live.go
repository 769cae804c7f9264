package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"jo3qma.com/pulsara_monitor/internal/domain/model"
	"jo3qma.com/pulsara_monitor/internal/usecase"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// liveMessage はWebSocketで1サイクルごとに送るメッセージです
type liveMessage struct {
	HTML     string         `json:"html"`
	Snapshot model.Snapshot `json:"snapshot"`
}

// Live はWebSocketに昇格し、更新間隔ごとに結果のHTML断片を送り続けます
// 接続が閉じられると更新ループも止まります
// warm=1 の場合はページ描画時に1サイクル済みなので、最初の更新を1間隔遅らせます
func (h *DashboardHandler) Live(c *gin.Context) {
	form, req := h.parseForm(c)

	var delay time.Duration
	if c.Query("warm") == "1" {
		delay = usecase.ClampInterval(req.Interval)
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	session := uuid.NewString()
	logger := h.logger.With(zap.String("session", session), zap.String("query", req.Query))
	logger.Info("live session started", zap.Duration("interval", req.Interval), zap.Duration("delay", delay))

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// クライアントからの切断を検知するための読み取りループ
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	err = h.poller.RunAfter(ctx, req, delay, func(snap model.Snapshot) error {
		view := h.newView(form)
		view.Snapshot = snap
		html, err := h.renderResults(view)
		if err != nil {
			return err
		}
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return err
		}
		return conn.WriteJSON(liveMessage{HTML: html, Snapshot: snap})
	})
	if err != nil && ctx.Err() == nil {
		logger.Warn("live session aborted", zap.Error(err))
		return
	}
	logger.Info("live session closed")
}

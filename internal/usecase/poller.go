package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"jo3qma.com/pulsara_monitor/internal/domain/model"
)

const (
	// MinInterval / MaxInterval は更新間隔として受け付ける範囲です
	MinInterval = 5 * time.Second
	MaxInterval = 60 * time.Second
	// DefaultInterval は間隔未指定時の更新間隔です
	DefaultInterval = 10 * time.Second
)

// ClampInterval は更新間隔を受け付け範囲に収めます。0以下は DefaultInterval です
func ClampInterval(d time.Duration) time.Duration {
	switch {
	case d <= 0:
		return DefaultInterval
	case d < MinInterval:
		return MinInterval
	case d > MaxInterval:
		return MaxInterval
	default:
		return d
	}
}

// snapshotter は Poller が1サイクルごとに呼び出す処理です
type snapshotter interface {
	Snapshot(ctx context.Context, req model.WatchRequest) model.Snapshot
}

// Poller は更新サイクルを一定間隔で繰り返します
// サイクル同士が重なることはなく、ctx のキャンセルで停止します
type Poller struct {
	monitor snapshotter
	logger  *zap.Logger
}

// NewPoller は新しいPollerインスタンスを作成します
func NewPoller(monitor snapshotter, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{monitor: monitor, logger: logger}
}

// Run は直ちに1サイクル実行し、その後 req.Interval ごとに繰り返します
// ctx が終了すると ctx.Err() を、emit がエラーを返すとそのエラーを返します
func (p *Poller) Run(ctx context.Context, req model.WatchRequest, emit func(model.Snapshot) error) error {
	return p.RunAfter(ctx, req, 0, emit)
}

// RunAfter は Run と同じですが、最初のサイクルを delay だけ遅らせます
func (p *Poller) RunAfter(ctx context.Context, req model.WatchRequest, delay time.Duration, emit func(model.Snapshot) error) error {
	interval := ClampInterval(req.Interval)
	if delay < 0 {
		delay = 0
	}
	p.logger.Debug("poll loop started",
		zap.String("query", req.Query),
		zap.Duration("interval", interval),
		zap.Duration("delay", delay),
	)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("poll loop stopped", zap.String("query", req.Query))
			return ctx.Err()
		case <-timer.C:
		}

		snap := p.monitor.Snapshot(ctx, req)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := emit(snap); err != nil {
			return err
		}
		timer.Reset(interval)
	}
}

package service

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	"github.com/yeisme/goatdesk/pkg/configs"
	"github.com/yeisme/goatdesk/pkg/internal/storage/mq"
	nlog "github.com/yeisme/goatdesk/pkg/log"
	"github.com/yeisme/goatdesk/pkg/queue"
)

// publishFunc queue 包中的强类型发布函数.
type publishFunc[T any] func(pub message.Publisher, payload T, opts ...func(*queue.EventHeader)) error

// emit 在数据库提交后发布领域事件，失败只记录日志.
func emit[T any](ctx context.Context, mqc *mq.Client, enabled bool, topic string, publish publishFunc[T], payload T) {
	cfg := configs.GetConfig().Events

	pub := mqc.Publisher()
	if pub == nil || !cfg.Enabled || !enabled {
		return
	}

	opts := []func(*queue.EventHeader){queue.WithProducer(cfg.Producer)}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		opts = append(opts, queue.WithTraceID(sc.TraceID().String()))
	}

	if err := publish(pub, payload, opts...); err != nil {
		nlog.Logger().Warn().Err(err).Str("topic", topic).Msg("publish event failed")
	}
}

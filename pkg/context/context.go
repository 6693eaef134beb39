// Package context 拓展上下文功能，将日志、服务等集成到上下文中，方便在应用程序各处传递和使用.
package context

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/yeisme/goatdesk/pkg/internal/storage"
	dbc "github.com/yeisme/goatdesk/pkg/internal/storage/db"
	kvc "github.com/yeisme/goatdesk/pkg/internal/storage/kv"
	"github.com/yeisme/goatdesk/pkg/internal/storage/media"
	mqc "github.com/yeisme/goatdesk/pkg/internal/storage/mq"
	s3c "github.com/yeisme/goatdesk/pkg/internal/storage/s3"
	"github.com/yeisme/goatdesk/pkg/scheduler"
)

type ContextKey string

const (
	StorageManagerKey ContextKey = "storageManager"
	SchedulerKey      ContextKey = "scheduler"
)

// WithStorageManager 将 Manager 存储到 context 中.
func WithStorageManager(ctx context.Context, mgr *storage.Manager) context.Context {
	return context.WithValue(ctx, StorageManagerKey, mgr)
}

// GetManager 从 context 中获取 Manager.
func GetManager(ctx context.Context) *storage.Manager {
	if mgr, ok := ctx.Value(StorageManagerKey).(*storage.Manager); ok {
		return mgr
	}

	return nil
}

// WithScheduler 将调度器存储到 context 中.
func WithScheduler(ctx context.Context, sched *scheduler.Scheduler) context.Context {
	return context.WithValue(ctx, SchedulerKey, sched)
}

// GetScheduler 从 context 中获取调度器，未注入时返回 nil.
func GetScheduler(ctx context.Context) *scheduler.Scheduler {
	if sched, ok := ctx.Value(SchedulerKey).(*scheduler.Scheduler); ok {
		return sched
	}

	return nil
}

// GetS3Client 从 context 中获取 S3 客户端.
func GetS3Client(ctx context.Context) *s3c.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetS3Client()
	}

	return nil
}

// GetDBClient 从 context 中获取 DB 客户端.
func GetDBClient(ctx context.Context) *dbc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetDBClient()
	}

	return nil
}

// GetMQClient 从 context 中获取 MQ 客户端.
func GetMQClient(ctx context.Context) *mqc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetMQClient()
	}

	return nil
}

// GetKVClient 从 context 中获取 KV 客户端.
func GetKVClient(ctx context.Context) *kvc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetKVClient()
	}

	return nil
}

// GetMediaStore 从 context 中获取媒体文件存储.
func GetMediaStore(ctx context.Context) media.Store {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetMediaStore()
	}

	return nil
}

// WithTraceContext 创建带有追踪上下文的logger.
func WithTraceContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		return logger.With().
			Str("trace_id", span.SpanContext().TraceID().String()).
			Str("span_id", span.SpanContext().SpanID().String()).
			Logger()
	}

	return logger
}

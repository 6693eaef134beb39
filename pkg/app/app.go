// Package app 提供应用程序的初始化、HTTP 服务启动与优雅退出.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yeisme/goatdesk/pkg/api"
	"github.com/yeisme/goatdesk/pkg/cache"
	"github.com/yeisme/goatdesk/pkg/configs"
	"github.com/yeisme/goatdesk/pkg/internal/jobs"
	"github.com/yeisme/goatdesk/pkg/internal/model"
	"github.com/yeisme/goatdesk/pkg/internal/router"
	"github.com/yeisme/goatdesk/pkg/internal/service"
	"github.com/yeisme/goatdesk/pkg/internal/storage"
	"github.com/yeisme/goatdesk/pkg/log"
	"github.com/yeisme/goatdesk/pkg/metrics"
	"github.com/yeisme/goatdesk/pkg/middleware"
	"github.com/yeisme/goatdesk/pkg/rule"
	"github.com/yeisme/goatdesk/pkg/scheduler"
	"github.com/yeisme/goatdesk/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

// App 持有 HTTP 引擎与运行期资源.
type App struct {
	Engine    *gin.Engine
	config    *configs.AppConfig
	manager   *storage.Manager
	scheduler *scheduler.Scheduler
}

// NewApp 初始化追踪、指标、存储、数据表、定时任务与路由.
// 调用前需已完成 configs.InitConfig.
func NewApp(ctx context.Context) (*App, error) {
	config := configs.GetConfig()

	if err := rule.ValidateStruct(config.Server); err != nil {
		return nil, fmt.Errorf("invalid server config: %s", rule.Message(err))
	}

	if err := rule.ValidateStruct(config.Media); err != nil {
		return nil, fmt.Errorf("invalid media config: %s", rule.Message(err))
	}

	if err := rule.ValidateStruct(config.CircuitBreaker); err != nil {
		return nil, fmt.Errorf("invalid circuit breaker config: %s", rule.Message(err))
	}

	if err := tracing.InitTracer(config.Tracing); err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	if err := metrics.InitMetrics(config.Metrics); err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	if err := manager.DB.Migrate(ctx, model.All()...); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	sched, err := scheduler.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("init scheduler: %w", err)
	}

	if err := jobs.RegisterCronJobs(sched, manager, config.Sweep); err != nil {
		return nil, fmt.Errorf("register jobs: %w", err)
	}

	if !config.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine := gin.New()
	engine.MaxMultipartMemory = int64(config.Server.MultipartMemoryMB) << 20

	engine.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.GinLoggerMiddleware(),
		middleware.CORSMiddleware(config.Server),
		middleware.TracingMiddleware(),
		middleware.PrometheusMiddleware(),
		middleware.RateLimitMiddleware(config.RateLimit),
		middleware.CircuitBreakerMiddleware(config.CircuitBreaker),
		middleware.StorageMiddleware(manager),
		middleware.SchedulerMiddleware(sched),
		middleware.AuthMiddleware(config.Auth, service.NewAuthService(config.Auth)),
	)

	metrics.RegisterRoutes(config.Metrics, engine)

	opts := router.Options{
		CacheConfig: config.Cache,
		MediaPrefix: config.Media.Prefix(),
	}
	if manager.KV != nil {
		opts.Cache = cache.NewNamespace(manager.KV, "resp")
	}

	api.RegisterGroup(engine, opts)

	return &App{
		Engine:    engine,
		config:    config,
		manager:   manager,
		scheduler: sched,
	}, nil
}

// Run 启动 HTTP 服务与调度器，ctx 取消后优雅退出.
func (a *App) Run(ctx context.Context) error {
	l := log.Logger()

	srv := &http.Server{
		Addr:              a.config.Server.Addr(),
		Handler:           a.Engine,
		ReadHeaderTimeout: a.config.Server.GetTimeoutDuration(),
	}

	a.scheduler.Start()

	errCh := make(chan error, 1)

	go func() {
		l.Info().Str("addr", srv.Addr).Str("version", configs.AppVersion).Msg("HTTP server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		a.Close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	l.Info().Msg("shutting down")

	err := srv.Shutdown(shutdownCtx)
	a.Close()

	return err
}

// Close 停止调度器并释放存储与追踪资源.
func (a *App) Close() {
	l := log.Logger()

	if err := a.scheduler.Stop(); err != nil {
		l.Warn().Err(err).Msg("stop scheduler failed")
	}

	if err := a.manager.Close(); err != nil {
		l.Warn().Err(err).Msg("close storage failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := tracing.ShutdownTracer(ctx); err != nil {
		l.Warn().Err(err).Msg("shutdown tracer failed")
	}
}

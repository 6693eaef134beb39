// Package metrics 提供监控指标功能.
// 支持Prometheus标准，收集 HTTP、媒体文件与清理任务指标.
//
// Example:
//
//	import "github.com/yeisme/goatdesk/pkg/metrics"
//
//	err := metrics.InitMetrics(config.Metrics)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// 记录指标
//	metrics.RequestCounter.WithLabelValues("GET", "/api/v1/products").Inc()
//	metrics.MediaDeleted.WithLabelValues("goat.updated").Add(2)
package metrics

import (
	"net/http"
	_ "net/http/pprof" // 自动注册pprof端点
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yeisme/goatdesk/pkg/configs"
)

const namespace = configs.AppName

// 全局指标变量，未启用时照常计数但不暴露.
var (
	// RequestCounter HTTP请求计数器.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestDuration HTTP请求持续时间.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// ActiveConnections 活跃连接数.
	ActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_connections",
			Help:      "Number of active connections",
		},
	)

	// GoatMutations 商品记录变更次数，op=create/update/delete.
	GoatMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "goat_mutations_total",
			Help:      "Goat listing mutations by operation",
		},
		[]string{"op"},
	)

	// MediaUploaded 上传文件数与字节数，kind=image/video.
	MediaUploaded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_uploaded_total",
			Help:      "Uploaded media files",
		},
		[]string{"kind"},
	)

	MediaUploadedBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_uploaded_bytes_total",
			Help:      "Uploaded media bytes",
		},
		[]string{"kind"},
	)

	// MediaDeleted 因记录变更或清理而删除的文件数.
	MediaDeleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_deleted_total",
			Help:      "Deleted media files by reason",
		},
		[]string{"reason"},
	)

	// SweepRuns 清理任务执行次数，result=ok/error，mode=apply/dry_run.
	SweepRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_runs_total",
			Help:      "Orphan sweep runs",
		},
		[]string{"mode", "result"},
	)

	// SweepLastOrphans 最近一次清理发现的孤儿文件数.
	SweepLastOrphans = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sweep_last_orphans",
			Help:      "Orphaned files found by the last sweep",
		},
	)

	// registry Prometheus注册表.
	registry = prometheus.NewRegistry()
	initOnce sync.Once
)

// InitMetrics 初始化Metrics，重复调用无副作用.
func InitMetrics(config configs.MetricsConfig) error {
	if !config.Enabled {
		return nil
	}

	initOnce.Do(func() {
		// 注册标准收集器
		if config.RuntimeMetrics {
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}

		registry.MustRegister(
			RequestCounter, RequestDuration, ActiveConnections,
			GoatMutations, MediaUploaded, MediaUploadedBytes, MediaDeleted,
			SweepRuns, SweepLastOrphans,
		)
	})

	return nil
}

// Handler 返回 /metrics 处理器.
// GORM 与 watermill 插件注册在默认注册表，这里一并汇总.
func Handler() http.Handler {
	return promhttp.HandlerFor(prometheus.Gatherers{registry, prometheus.DefaultGatherer}, promhttp.HandlerOpts{})
}

// RegisterRoutes 在 engine 上注册 /metrics 与可选的 pprof 端点.
func RegisterRoutes(config configs.MetricsConfig, engine *gin.Engine) {
	if !config.Enabled {
		return
	}

	engine.GET("/metrics", gin.WrapH(Handler()))

	if config.Pprof {
		engine.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
	}
}

// GetRegistry 获取Prometheus注册表.
func GetRegistry() *prometheus.Registry {
	return registry
}

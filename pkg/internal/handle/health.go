package handle

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/goatdesk/pkg/configs"
	ctxPkg "github.com/yeisme/goatdesk/pkg/context"
)

const timeout = 2 * time.Second

// componentStatus 单个依赖的检查结果.
type componentStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Health 存活检查.
//
//	@Summary	存活检查
//	@Tags		运维
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "app": configs.AppName, "version": configs.AppVersion})
}

// HealthReady 就绪检查：DB 与媒体存储必须可用，KV、MQ、S3 仅在启用时检查.
//
//	@Summary	就绪检查
//	@Tags		运维
//	@Produce	json
//	@Success	200	{object}	map[string]any
//	@Failure	503	{object}	map[string]any
//	@Router		/health/ready [get]
func HealthReady(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	checks := map[string]componentStatus{
		"db":    probe(func() error { return pingDB(ctx) }),
		"media": probe(func() error { return pingMedia(ctx) }),
	}

	if kvc := ctxPkg.GetKVClient(ctx); kvc != nil {
		checks["kv"] = probe(func() error {
			_, err := kvc.Exists(ctx, "health:probe")
			return err
		})
	}

	if mqc := ctxPkg.GetMQClient(ctx); mqc != nil {
		checks["mq"] = probe(func() error {
			if mqc.Publisher() == nil {
				return errNotInitialized
			}

			return nil
		})
	}

	if s3c := ctxPkg.GetS3Client(ctx); s3c != nil {
		checks["s3"] = probe(func() error { return s3c.HealthCheck(ctx) })
	}

	status := http.StatusOK
	overall := "ok"

	for _, s := range checks {
		if s.Status != "ok" {
			status = http.StatusServiceUnavailable
			overall = "unhealthy"

			break
		}
	}

	c.JSON(status, gin.H{"status": overall, "components": checks})
}

type healthError string

func (e healthError) Error() string { return string(e) }

const errNotInitialized = healthError("not initialized")

func probe(fn func() error) componentStatus {
	if err := fn(); err != nil {
		return componentStatus{Status: "unhealthy", Error: err.Error()}
	}

	return componentStatus{Status: "ok"}
}

func pingDB(ctx context.Context) error {
	dbc := ctxPkg.GetDBClient(ctx)
	if dbc == nil || dbc.DB == nil {
		return errNotInitialized
	}

	return dbc.Ping(ctx)
}

func pingMedia(ctx context.Context) error {
	store := ctxPkg.GetMediaStore(ctx)
	if store == nil {
		return errNotInitialized
	}

	return store.Ping(ctx)
}

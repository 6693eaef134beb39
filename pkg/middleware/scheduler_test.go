package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/goatdesk/pkg/middleware"
	"github.com/yeisme/goatdesk/pkg/scheduler"
)

func TestSchedulerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sched, err := scheduler.NewScheduler()
	require.NoError(t, err)

	sched.Start()
	t.Cleanup(func() { _ = sched.Stop() })

	cases := []struct {
		name  string
		sched *scheduler.Scheduler
		code  int
	}{
		{name: "injected", sched: sched, code: http.StatusOK},
		{name: "not running", sched: nil, code: http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := gin.New()
			e.Use(middleware.SchedulerMiddleware(tc.sched))
			e.GET("/jobs", middleware.RequireScheduler(), func(c *gin.Context) {
				assert.Same(t, tc.sched, middleware.GetScheduler(c))
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs", nil))
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

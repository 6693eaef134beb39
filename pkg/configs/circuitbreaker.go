package configs

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// 默认熔断器配置.
	DefaultCBEnabled           = false
	DefaultCBFailureRate       = 0.5
	DefaultCBMinRequests       = 20
	DefaultCBIntervalSeconds   = 60
	DefaultCBTimeoutSeconds    = 30
	DefaultCBMaxRequestsInHalf = 5
)

// DefaultCBSkipPaths 探活、指标与媒体文件不经过熔断.
var DefaultCBSkipPaths = []string{"/health", "/metrics", DefaultMediaURLPrefix + "/"}

// CircuitBreakerConfig 熔断器配置，只统计 API 请求的 5xx.
type CircuitBreakerConfig struct {
	Enabled           bool     `mapstructure:"enabled"`
	FailureRate       float64  `mapstructure:"failure_rate"         rule:"gte=0,lte=1"`
	MinRequests       uint32   `mapstructure:"min_requests"`
	IntervalSeconds   int      `mapstructure:"interval_seconds"     rule:"gte=0"`
	TimeoutSeconds    int      `mapstructure:"timeout_seconds"      rule:"gte=0"`
	MaxRequestsInHalf uint32   `mapstructure:"max_requests_in_half"`
	SkipPaths         []string `mapstructure:"skip_paths"` // 路径前缀
}

// Interval 统计窗口.
func (c CircuitBreakerConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// Timeout 打开状态持续时间.
func (c CircuitBreakerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Skipped 判断路径是否绕过熔断.
func (c CircuitBreakerConfig) Skipped(path string) bool {
	for _, p := range c.SkipPaths {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}

func (c *CircuitBreakerConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("circuit_breaker.enabled", DefaultCBEnabled)
	v.SetDefault("circuit_breaker.failure_rate", DefaultCBFailureRate)
	v.SetDefault("circuit_breaker.min_requests", DefaultCBMinRequests)
	v.SetDefault("circuit_breaker.interval_seconds", DefaultCBIntervalSeconds)
	v.SetDefault("circuit_breaker.timeout_seconds", DefaultCBTimeoutSeconds)
	v.SetDefault("circuit_breaker.max_requests_in_half", DefaultCBMaxRequestsInHalf)
	v.SetDefault("circuit_breaker.skip_paths", DefaultCBSkipPaths)
}

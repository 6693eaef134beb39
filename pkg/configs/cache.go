package configs

import (
	"time"

	"github.com/spf13/viper"
)

// CacheConfig 只读接口的响应缓存.
type CacheConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	TTL          time.Duration `mapstructure:"ttl"`
	MaxBodyBytes int           `mapstructure:"max_body_bytes"`
}

func (c *CacheConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "30s")
	v.SetDefault("cache.max_body_bytes", 1<<20)
}

// Package configs 管理应用程序配置，包括数据库、媒体存储、缓存与队列的配置信息.
// configs 包支持多种配置格式（YAML、JSON、TOML、dotenv）并启用热重载.
//
// Example:
//
//	err := configs.InitConfig("./")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	config := configs.GetConfig()
//	fmt.Println(config.Server.Port)
//
// Example accessing media config:
//
//	media := configs.GetConfig().Media
//	fmt.Println(media.URLPrefix, media.Image.MaxSizeBytes())
//
// 环境变量使用 GOATDESK_ 前缀，层级以下划线分隔，例如 GOATDESK_DB_TYPE=sqlite.
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const (
	// AppName 应用名称.
	AppName = "goatdesk"
	// EnvPrefix 环境变量前缀.
	EnvPrefix = "GOATDESK"
)

// AppVersion 应用版本，构建时可通过 -ldflags "-X" 覆盖.
var AppVersion = "0.3.0"

type (
	// AppConfig 全局应用程序配置.
	AppConfig struct {
		Server         ServerConfig         `mapstructure:"server"`          // 服务器端口、超时等
		Log            LogConfig            `mapstructure:"log"`             // 日志相关配置
		DB             DBConfig             `mapstructure:"db"`              // 数据库配置
		S3             S3Config             `mapstructure:"s3"`              // 对象存储配置
		KV             KVConfig             `mapstructure:"kv"`              // 键值存储配置
		MQ             MQConfig             `mapstructure:"mq"`              // 消息队列配置
		Events         EventsConfig         `mapstructure:"events"`          // 领域事件开关
		Media          MediaConfig          `mapstructure:"media"`           // 上传与媒体文件
		Sweep          SweepConfig          `mapstructure:"sweep"`           // 孤儿文件清理
		Auth           AuthConfig           `mapstructure:"auth"`            // 管理端认证
		Cache          CacheConfig          `mapstructure:"cache"`           // 响应缓存
		Metrics        MetricsConfig        `mapstructure:"metrics"`         // 指标
		Tracing        TracingConfig        `mapstructure:"tracing"`         // 链路追踪
		RateLimit      RateLimitConfig      `mapstructure:"rate_limit"`      // 限流
		CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"` // 熔断
	}
)

var (
	// globalConfig 全局配置实例.
	globalConfig AppConfig
	// appViper 全局 Viper 实例.
	appViper *viper.Viper
	// mu 保护热重载时的并发读写.
	mu sync.RWMutex
)

// InitConfig 加载应用程序配置，支持多种格式(yaml、json、toml、dotenv)并启用热重载.
// 找不到配置文件时仅使用默认值与环境变量.
func InitConfig(path string) error {
	v := NewViper()

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")

		if path != "" {
			v.AddConfigPath(path)
			v.AddConfigPath(filepath.Join(path, "configs"))
		}

		v.AddConfigPath(".")
		v.AddConfigPath("./configs")

		if home, herr := os.UserHomeDir(); herr == nil {
			v.AddConfigPath(filepath.Join(home, "."+AppName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	mu.Lock()
	globalConfig = cfg
	appViper = v
	mu.Unlock()

	reloadConfigs(v, cfg.Server.ReloadConfig)

	return nil
}

// NewViper 创建带默认值与环境变量绑定的 Viper 实例.
func NewViper() *viper.Viper {
	v := viper.New()
	setAllDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Default 返回仅包含默认值的配置，主要用于测试与离线命令.
func Default() AppConfig {
	var cfg AppConfig
	_ = NewViper().Unmarshal(&cfg)

	return cfg
}

// setAllDefaults 设置所有配置的默认值.
func setAllDefaults(v *viper.Viper) {
	var cfg AppConfig

	cfg.Server.setDefaults(v)
	cfg.Log.setDefaults(v)
	cfg.DB.setDefaults(v)
	cfg.S3.setDefaults(v)
	cfg.KV.setDefaults(v)
	cfg.MQ.setDefaults(v)
	cfg.Events.setDefaults(v)
	cfg.Media.setDefaults(v)
	cfg.Sweep.setDefaults(v)
	cfg.Auth.setDefaults(v)
	cfg.Cache.setDefaults(v)
	cfg.Metrics.setDefaults(v)
	cfg.Tracing.setDefaults(v)
	cfg.RateLimit.setDefaults(v)
	cfg.CircuitBreaker.setDefaults(v)
}

func reloadConfigs(v *viper.Viper, isHotReload bool) {
	if !isHotReload || v.ConfigFileUsed() == "" {
		return
	}
	// 启用配置热重载
	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Fprintln(os.Stderr, "Config file changed:", e.Name)

		var cfg AppConfig
		if err := v.Unmarshal(&cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error reloading config: %v\n", err)
			return
		}

		mu.Lock()
		globalConfig = cfg
		mu.Unlock()
	})
	v.WatchConfig()
}

// GetConfig 返回全局配置实例.
func GetConfig() *AppConfig {
	mu.RLock()
	defer mu.RUnlock()

	return &globalConfig
}

// SetConfig 替换全局配置，测试中使用.
func SetConfig(cfg AppConfig) {
	mu.Lock()
	globalConfig = cfg
	mu.Unlock()
}

// GetViper 返回全局 Viper 实例，未初始化时为 nil.
func GetViper() *viper.Viper {
	mu.RLock()
	defer mu.RUnlock()

	return appViper
}

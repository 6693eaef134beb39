package configs

import (
	"time"

	"github.com/spf13/viper"
)

// SweepConfig 孤儿图片清理配置.
type SweepConfig struct {
	ScheduleEnabled bool          `mapstructure:"schedule_enabled"` // 是否注册定时清理
	Cron            string        `mapstructure:"cron"`             // 六段式 cron（含秒）
	MinAge          time.Duration `mapstructure:"min_age"`          // 小于该年龄的文件不参与清理
	Pattern         string        `mapstructure:"pattern"`          // 文件名匹配正则，空则由图片前缀推导
}

func (c *SweepConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("sweep.schedule_enabled", false)
	v.SetDefault("sweep.cron", "0 30 3 * * *")
	v.SetDefault("sweep.min_age", "0s")
	v.SetDefault("sweep.pattern", "")
}

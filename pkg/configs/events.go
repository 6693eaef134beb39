package configs

import "github.com/spf13/viper"

// EventsConfig 控制事件发布的开关（全局与分主题）。
type EventsConfig struct {
	Enabled  bool              `mapstructure:"enabled"` // 总开关
	Producer string            `mapstructure:"producer"`
	Goat     GoatEventsConfig  `mapstructure:"goat"`
	Media    MediaEventsConfig `mapstructure:"media"`
	Sweep    SweepEventsConfig `mapstructure:"sweep"`
	Video    VideoEventsConfig `mapstructure:"video"`
}

// GoatEventsConfig 商品（山羊）记录事件开关。
type GoatEventsConfig struct {
	Created bool `mapstructure:"created"`
	Updated bool `mapstructure:"updated"`
	Deleted bool `mapstructure:"deleted"`
}

// MediaEventsConfig 媒体文件事件开关。
type MediaEventsConfig struct {
	Uploaded bool `mapstructure:"uploaded"`
	Deleted  bool `mapstructure:"deleted"`
}

// SweepEventsConfig 清理任务事件开关。
type SweepEventsConfig struct {
	Completed bool `mapstructure:"completed"`
}

// VideoEventsConfig 视频记录事件开关。
type VideoEventsConfig struct {
	Deleted bool `mapstructure:"deleted"`
}

func (c *EventsConfig) setDefaults(v *viper.Viper) {
	// 总开关：仅在 mq.enabled 时真正生效
	v.SetDefault("events.enabled", true)
	v.SetDefault("events.producer", AppName)

	v.SetDefault("events.goat.created", true)
	v.SetDefault("events.goat.updated", true)
	v.SetDefault("events.goat.deleted", true)

	v.SetDefault("events.media.uploaded", true)
	v.SetDefault("events.media.deleted", true)

	v.SetDefault("events.sweep.completed", true)
	v.SetDefault("events.video.deleted", false)
}

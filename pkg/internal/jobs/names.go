package jobs

// 任务名称常量.
const (
	JobMediaOrphanSweep = "media.orphan_sweep"
)

// TriggerCron 定时触发的清理在事件与指标中使用的来源标记.
const TriggerCron = "cron"

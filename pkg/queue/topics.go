// Package queue 定义消息主题常量与通配模式，供发布/订阅使用.
package queue

// 主题命名规范：gd.<域>.<动作>，发布后保持稳定.
// 域：goat(商品记录)、media(上传文件)、sweep(孤儿清理)、video(视频记录)

const (
	// 商品记录.
	TopicGoatCreated = "gd.goat.created" // 新建记录，携带初始图片定位符
	TopicGoatUpdated = "gd.goat.updated" // 更新成功并已删除被移除的图片
	TopicGoatDeleted = "gd.goat.deleted" // 删除记录及其图片

	// 媒体文件.
	TopicMediaUploaded = "gd.media.uploaded" // 上传完成
	TopicMediaDeleted  = "gd.media.deleted"  // 因记录变更而删除的文件

	// 孤儿清理.
	TopicSweepCompleted = "gd.sweep.completed"

	// 视频记录.
	TopicVideoDeleted = "gd.video.deleted"
)

const (
	// 通配订阅.
	PatternAll   = "gd.>"
	PatternGoat  = "gd.goat.*"
	PatternMedia = "gd.media.*"
)

// AllTopics 返回全部主题，用于 memory 后端逐个订阅.
func AllTopics() []string {
	return []string{
		TopicGoatCreated, TopicGoatUpdated, TopicGoatDeleted,
		TopicMediaUploaded, TopicMediaDeleted,
		TopicSweepCompleted, TopicVideoDeleted,
	}
}

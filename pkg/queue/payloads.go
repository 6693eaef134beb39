package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
// 建议在发布消息时填充 TraceID、OccurredAt、Producer 等，便于追踪链路与审计.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID，可来自中间件或业务生成.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本，便于向后兼容演进.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
// T 即不同主题对应的负载结构体.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// -------------------------- 商品记录 --------------------------

// GoatRef 标识一条商品记录.
type GoatRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name,omitempty"`
}

// GoatCreatedPayload 记录已创建.
type GoatCreatedPayload struct {
	Goat     GoatRef  `json:"goat"`
	Locators []string `json:"locators,omitempty"`
}

// GoatUpdatedPayload 记录已更新，Removed 为本次更新中被移除并尝试删除的定位符.
type GoatUpdatedPayload struct {
	Goat         GoatRef  `json:"goat"`
	Locators     []string `json:"locators,omitempty"`
	Removed      []string `json:"removed,omitempty"`
	DeletedFiles int      `json:"deleted_files"`
}

// GoatDeletedPayload 记录已删除.
type GoatDeletedPayload struct {
	Goat            GoatRef  `json:"goat"`
	Locators        []string `json:"locators,omitempty"`
	DeletedFiles    int      `json:"deleted_files"`
	ReferencedFiles int      `json:"referenced_files"`
}

// -------------------------- 媒体文件 --------------------------

// MediaRef 标识一个上传文件.
type MediaRef struct {
	Locator     string `json:"locator"`
	Kind        string `json:"kind"` // image / video
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}

// MediaUploadedPayload 上传完成.
type MediaUploadedPayload struct {
	Media        MediaRef `json:"media"`
	OriginalName string   `json:"original_name,omitempty"`
}

// MediaDeletedPayload 文件已删除，Reason 为 goat.updated / goat.deleted / video.updated 等.
type MediaDeletedPayload struct {
	Locators []string `json:"locators"`
	Reason   string   `json:"reason"`
	OwnerID  uint     `json:"owner_id,omitempty"`
}

// -------------------------- 孤儿清理 --------------------------

// SweepCompletedPayload 一次清理的结果.
type SweepCompletedPayload struct {
	TotalFiles    int      `json:"total_files"`
	OrphanedFiles int      `json:"orphaned_files"`
	DeletedFiles  int      `json:"deleted_files"`
	FailedFiles   int      `json:"failed_files"`
	DryRun        bool     `json:"dry_run"`
	Trigger       string   `json:"trigger"` // api / cron / cli
	Orphans       []string `json:"orphans,omitempty"`
}

// -------------------------- 视频记录 --------------------------

// VideoDeletedPayload 视频记录已删除.
type VideoDeletedPayload struct {
	ID           uint     `json:"id"`
	Title        string   `json:"title,omitempty"`
	Locators     []string `json:"locators,omitempty"`
	DeletedFiles int      `json:"deleted_files"`
}

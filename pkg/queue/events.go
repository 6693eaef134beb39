package queue

import "github.com/ThreeDotsLabs/watermill/message"

// -------------------------- 基于业务封装 events --------------------------

// publish 构造并发布消息.
func publish[T any](pub message.Publisher, topic string, payload T, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(topic, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(topic, msg)
}

// PublishGoatCreated 发布 gd.goat.created 事件.
func PublishGoatCreated(pub message.Publisher, payload GoatCreatedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicGoatCreated, payload, opts...)
}

// PublishGoatUpdated 发布 gd.goat.updated 事件.
func PublishGoatUpdated(pub message.Publisher, payload GoatUpdatedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicGoatUpdated, payload, opts...)
}

// PublishGoatDeleted 发布 gd.goat.deleted 事件.
func PublishGoatDeleted(pub message.Publisher, payload GoatDeletedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicGoatDeleted, payload, opts...)
}

// PublishMediaUploaded 发布 gd.media.uploaded 事件.
func PublishMediaUploaded(pub message.Publisher, payload MediaUploadedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicMediaUploaded, payload, opts...)
}

// PublishMediaDeleted 发布 gd.media.deleted 事件.
func PublishMediaDeleted(pub message.Publisher, payload MediaDeletedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicMediaDeleted, payload, opts...)
}

// PublishSweepCompleted 发布 gd.sweep.completed 事件.
func PublishSweepCompleted(pub message.Publisher, payload SweepCompletedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicSweepCompleted, payload, opts...)
}

// PublishVideoDeleted 发布 gd.video.deleted 事件.
func PublishVideoDeleted(pub message.Publisher, payload VideoDeletedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicVideoDeleted, payload, opts...)
}

// ParseGoatDeleted 将 Watermill 消息解析为强类型 Envelope.
func ParseGoatDeleted(msg *message.Message) (Message[GoatDeletedPayload], error) {
	return ParseWatermillMessage[GoatDeletedPayload](msg)
}

// ParseSweepCompleted 将 Watermill 消息解析为强类型 Envelope.
func ParseSweepCompleted(msg *message.Message) (Message[SweepCompletedPayload], error) {
	return ParseWatermillMessage[SweepCompletedPayload](msg)
}

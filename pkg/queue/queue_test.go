package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/goatdesk/pkg/internal/storage/mq"
	"github.com/yeisme/goatdesk/pkg/queue"
)

func TestNewWatermillMessage(t *testing.T) {
	payload := queue.GoatDeletedPayload{
		Goat:            queue.GoatRef{ID: 7, Name: "Daisy"},
		Locators:        []string{"/uploads/goat-01.jpg"},
		DeletedFiles:    1,
		ReferencedFiles: 1,
	}

	msg, err := queue.NewWatermillMessage(queue.TopicGoatDeleted, payload,
		queue.WithProducer("goatdesk"), queue.WithTraceID("trace-1"))
	require.NoError(t, err)

	assert.NotEmpty(t, msg.UUID)
	assert.Equal(t, queue.TopicGoatDeleted, msg.Metadata.Get("topic"))
	assert.Equal(t, "goatdesk", msg.Metadata.Get("producer"))
	assert.Equal(t, "trace-1", msg.Metadata.Get("trace_id"))
	assert.Equal(t, queue.PayloadVersionV1, msg.Metadata.Get("version"))

	env, err := queue.ParseGoatDeleted(msg)
	require.NoError(t, err)

	assert.Equal(t, payload, env.Payload)
	assert.Equal(t, queue.TopicGoatDeleted, env.Header.Topic)
	assert.WithinDuration(t, time.Now(), env.Header.OccurredAt, time.Minute)
}

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	raw := []byte(`{"header":{"topic":"gd.sweep.completed","version":"v2","extra":1},` +
		`"payload":{"deleted_files":3,"trigger":"cron","future":"x"}}`)

	env, err := queue.Decode[queue.SweepCompletedPayload](raw)
	require.NoError(t, err)

	assert.Equal(t, "v2", env.Header.Version)
	assert.Equal(t, 3, env.Payload.DeletedFiles)
	assert.Equal(t, "cron", env.Payload.Trigger)
}

func TestPublishThroughMemoryClient(t *testing.T) {
	client := mq.NewMemoryClient()
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := client.Subscribe(ctx, queue.TopicMediaUploaded)
	require.NoError(t, err)

	err = queue.PublishMediaUploaded(client.Publisher(), queue.MediaUploadedPayload{
		Media:        queue.MediaRef{Locator: "/uploads/goat-x.png", Kind: "image", Size: 42},
		OriginalName: "x.png",
	})
	require.NoError(t, err)

	select {
	case m := <-ch:
		m.Ack()

		env, err := queue.ParseWatermillMessage[queue.MediaUploadedPayload](m)
		require.NoError(t, err)
		assert.Equal(t, "/uploads/goat-x.png", env.Payload.Media.Locator)
		assert.Equal(t, int64(42), env.Payload.Media.Size)
	case <-time.After(2 * time.Second):
		t.Fatal("message not delivered")
	}
}

func TestAllTopicsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, topic := range queue.AllTopics() {
		assert.False(t, seen[topic], topic)
		seen[topic] = true
	}

	assert.Len(t, seen, 7)
}

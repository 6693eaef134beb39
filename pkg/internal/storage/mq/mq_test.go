package mq_test

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/goatdesk/pkg/configs"
	"github.com/yeisme/goatdesk/pkg/internal/storage/mq"
)

func TestMemoryClient_PublishSubscribe(t *testing.T) {
	c := mq.NewMemoryClient()
	t.Cleanup(func() { _ = c.Close() })

	assert.Equal(t, configs.MQTypeMemory, c.Type())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := c.Subscribe(ctx, "gd.test")
	require.NoError(t, err)

	require.NoError(t, c.Publish(ctx, "gd.test", message.NewMessage("1", []byte("hello"))))

	select {
	case m := <-ch:
		m.Ack()
		assert.Equal(t, "hello", string(m.Payload))
	case <-time.After(2 * time.Second):
		t.Fatal("message not delivered")
	}
}

func TestNilClient(t *testing.T) {
	var c *mq.Client

	assert.Nil(t, c.Publisher())
	assert.Error(t, c.Publish(context.Background(), "gd.test", message.NewMessage("1", nil)))

	_, err := c.Subscribe(context.Background(), "gd.test")
	assert.Error(t, err)
}

package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luzeouro/internal/domain"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublishOrderPlaced(t *testing.T) {
	ch := &fakeChannel{}
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := &Publisher{ch: ch, now: func() time.Time { return fixed }}

	err := p.PublishOrderPlaced(context.Background(), domain.Order{ID: "o1", UserID: "u1", Total: 22990, PaymentMethod: "PIX"})
	require.NoError(t, err)

	assert.Equal(t, "", ch.exchange)
	assert.Equal(t, OrderPlacedQueue, ch.key)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, "application/json", ch.msg.ContentType)

	var ev map[string]any
	require.NoError(t, json.Unmarshal(ch.msg.Body, &ev))
	assert.Equal(t, "OrderPlaced", ev["eventType"])
	assert.Equal(t, "o1", ev["orderId"])
	assert.Equal(t, 229.9, ev["total"])
	assert.Equal(t, ch.msg.MessageId, ev["eventId"])
	assert.NotEmpty(t, ch.msg.MessageId)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

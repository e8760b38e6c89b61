package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/fuel-control/internal/fuel/receiving"
)

func newTestHandler(handlers map[string]EventHandler) *consumerGroupHandler {
	return &consumerGroupHandler{consumer: &Consumer{handlers: handlers}}
}

func receivingMessage(t *testing.T, eventType string, event ReceivingValidatedEvent) *sarama.ConsumerMessage {
	t.Helper()
	value, err := json.Marshal(event)
	require.NoError(t, err)
	return &sarama.ConsumerMessage{
		Topic: TopicReceivingValidated,
		Value: value,
		Headers: []*sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(eventType)},
			{Key: []byte("event_id"), Value: []byte("hdr-1")},
		},
	}
}

func TestHandleMessageDispatchesReceivingEvent(t *testing.T) {
	var got []receiving.Event
	h := newTestHandler(map[string]EventHandler{
		EventTypeReceivingValidated: func(_ context.Context, e receiving.Event) error {
			got = append(got, e)
			return nil
		},
	})

	h.handleMessage(context.Background(), receivingMessage(t, EventTypeReceivingValidated, ReceivingValidatedEvent{
		Document: "WH/IN/00042",
		Kind:     receiving.KindIncoming,
		Operator: "warehouse",
		Lines: []ReceivingLine{
			{Product: "Diesel S10", Category: "Fuel", Quantity: decimal.RequireFromString("1000")},
		},
	}))

	require.Len(t, got, 1)
	assert.Equal(t, "hdr-1", got[0].EventID)
	assert.Equal(t, "WH/IN/00042", got[0].Document)
	require.Len(t, got[0].Lines, 1)
	assert.True(t, decimal.RequireFromString("1000").Equal(got[0].Lines[0].Quantity))
}

func TestHandleMessageSkipsUnknownAndMalformed(t *testing.T) {
	calls := 0
	h := newTestHandler(map[string]EventHandler{
		EventTypeReceivingValidated: func(context.Context, receiving.Event) error {
			calls++
			return errors.New("unused")
		},
	})

	h.handleMessage(context.Background(), receivingMessage(t, "product.purchased", ReceivingValidatedEvent{}))
	h.handleMessage(context.Background(), &sarama.ConsumerMessage{Value: []byte("{}")})
	h.handleMessage(context.Background(), &sarama.ConsumerMessage{
		Value:   []byte("not json"),
		Headers: []*sarama.RecordHeader{{Key: []byte("event_type"), Value: []byte(EventTypeReceivingValidated)}},
	})

	assert.Zero(t, calls)
}

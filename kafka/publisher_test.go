package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/fuel-control/internal/fuel/domain"
)

func stockChange() domain.StockChangedEvent {
	return domain.StockChangedEvent{
		TankID:         7,
		TankName:       "Main",
		CurrentStock:   decimal.RequireFromString("1500"),
		Capacity:       decimal.RequireFromString("6000"),
		FillPercentage: decimal.RequireFromString("25"),
		Cause:          "refueling.confirmed",
		OccurredAt:     time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestPublishStockChanged(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != TopicTankStock {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "tank_7" {
			return errors.New("unexpected key " + string(key))
		}

		var headerType string
		for _, h := range msg.Headers {
			if string(h.Key) == "event_type" {
				headerType = string(h.Value)
			}
		}
		if headerType != EventTypeTankStockChanged {
			return errors.New("missing event_type header")
		}

		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var event TankStockChangedEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}
		if event.EventID == "" || event.TankID != 7 || !event.CurrentStock.Equal(decimal.RequireFromString("1500")) {
			return errors.New("unexpected payload " + string(value))
		}
		return nil
	})

	publisher := NewPublisherWithProducer(producer, nil)
	require.NoError(t, publisher.PublishStockChanged(context.Background(), stockChange()))
	require.NoError(t, publisher.Close())
}

func TestPublishStockChangedSendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := NewPublisherWithProducer(producer, nil)
	err := publisher.PublishStockChanged(context.Background(), stockChange())
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, publisher.Close())
}

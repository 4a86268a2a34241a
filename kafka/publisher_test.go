package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockPublisher(t *testing.T) (*Publisher, *mocks.SyncProducer) {
	t.Helper()
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, config)
	return newPublisher(producer, "products"), producer
}

func TestPublisher_PublishProductCreated(t *testing.T) {
	publisher, producer := mockPublisher(t)
	defer producer.Close()

	event := NewProductCreatedEvent(sampleProduct())

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, "products", msg.Topic)

		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, "7", string(key), "messages must be keyed by product id")

		value, err := msg.Value.Encode()
		require.NoError(t, err)

		var decoded ProductCreatedEvent
		require.NoError(t, json.Unmarshal(value, &decoded))
		assert.Equal(t, ActionCreate, decoded.Action)
		assert.Equal(t, event.EventID, decoded.EventID)
		assert.Equal(t, uint(7), decoded.Product.ID)
		return nil
	})

	require.NoError(t, publisher.PublishProductCreated(context.Background(), event))
}

func TestPublisher_PublishProductDeleted(t *testing.T) {
	publisher, producer := mockPublisher(t)
	defer producer.Close()

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		value, err := msg.Value.Encode()
		require.NoError(t, err)

		var decoded ProductDeletedEvent
		require.NoError(t, json.Unmarshal(value, &decoded))
		assert.Equal(t, ActionDelete, decoded.Action)
		assert.Equal(t, uint(7), decoded.Product.ID)
		return nil
	})

	require.NoError(t, publisher.PublishProductDeleted(context.Background(), NewProductDeletedEvent(7)))
}

func TestPublisher_SendFailureIsReturned(t *testing.T) {
	publisher, producer := mockPublisher(t)
	defer producer.Close()

	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := publisher.PublishProductUpdated(context.Background(), NewProductUpdatedEvent(sampleProduct()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, sarama.ErrOutOfBrokers))
}

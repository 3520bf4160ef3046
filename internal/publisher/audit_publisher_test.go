package publisher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitDeliverySuccess(t *testing.T) {
	deliveryChan := make(chan kafka.Event, 1)
	deliveryChan <- &kafka.Message{}

	done := make(chan error, 1)
	go func() {
		done <- waitDelivery(context.Background(), deliveryChan)
	}()

	// The report is already buffered; the wait must return promptly, not
	// sit out a timeout.
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("waitDelivery did not consume the delivery report")
	}
}

func TestWaitDeliveryBrokerError(t *testing.T) {
	deliveryChan := make(chan kafka.Event, 1)
	deliveryChan <- &kafka.Message{
		TopicPartition: kafka.TopicPartition{Error: errors.New("broker: message timed out")},
	}

	err := waitDelivery(context.Background(), deliveryChan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delivery failed")
}

func TestWaitDeliveryContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := waitDelivery(ctx, make(chan kafka.Event, 1))
	assert.ErrorIs(t, err, context.Canceled)
}

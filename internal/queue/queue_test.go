package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrilink/agrilink/pkg/redis"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, redis.RedisAdapter) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	// Use unique connection name per test to avoid global adapter caching issues
	connName := t.Name() + "-" + mr.Addr()
	adapter, err := redis.NewRedisAdapter(connName, "", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	return mr, adapter
}

func TestQueue_PublishAndConsume(t *testing.T) {
	mr, adapter := setupTestRedis(t)
	defer mr.Close()

	config := Config{
		Name:              "test:notifications",
		ConsumerGroup:     "test-group",
		ConsumerName:      "test-consumer",
		MaxRetries:        3,
		VisibilityTimeout: 5 * time.Second,
		PollInterval:      100 * time.Millisecond,
		BatchSize:         10,
		MaxLen:            1000,
		EnableDLQ:         true,
	}

	q, err := New(adapter, config)
	require.NoError(t, err)

	t.Run("publish and consume delivery", func(t *testing.T) {
		ctx := context.Background()
		payload := map[string]string{"orderId": "ORD-1001"}

		_, err := q.PublishJSON(ctx, payload, map[string]string{"status": "DELIVERED"})
		require.NoError(t, err)

		received := make(chan bool, 1)
		handler := func(ctx context.Context, d *Delivery) error {
			var data map[string]string
			err := json.Unmarshal(d.Data, &data)
			assert.NoError(t, err)
			assert.Equal(t, "ORD-1001", data["orderId"])
			assert.Equal(t, "DELIVERED", d.Metadata["status"])
			received <- true
			return nil
		}

		err = q.Consume(handler)
		require.NoError(t, err)

		select {
		case <-received:
		case <-time.After(2 * time.Second):
			t.Fatal("delivery not received")
		}

		q.Stop(time.Second)
	})
}

func TestQueue_PublishJSON(t *testing.T) {
	mr, adapter := setupTestRedis(t)
	defer mr.Close()

	config := Config{
		Name:              "test:json:queue",
		ConsumerGroup:     "test-group",
		ConsumerName:      "test-consumer",
		MaxRetries:        3,
		VisibilityTimeout: 5 * time.Second,
		PollInterval:      100 * time.Millisecond,
		BatchSize:         10,
	}

	q, err := New(adapter, config)
	require.NoError(t, err)
	defer q.Stop(time.Second)

	ctx := context.Background()
	payload := struct {
		OrderID string `json:"orderId"`
		Email   string `json:"email"`
	}{
		OrderID: "ORD-42",
		Email:   "buyer@example.com",
	}

	_, err = q.PublishJSON(ctx, payload, map[string]string{"source": "test"})
	assert.NoError(t, err)
}

func TestQueue_FailedHandlerLeavesDeliveryPending(t *testing.T) {
	mr, adapter := setupTestRedis(t)
	defer mr.Close()

	config := Config{
		Name:              "test:retry:queue",
		ConsumerGroup:     "test-group",
		ConsumerName:      "test-consumer",
		MaxRetries:        2,
		VisibilityTimeout: 1 * time.Second,
		PollInterval:      100 * time.Millisecond,
		BatchSize:         10,
		EnableDLQ:         true,
	}

	q, err := New(adapter, config)
	require.NoError(t, err)
	defer q.Stop(time.Second)

	ctx := context.Background()
	_, err = q.PublishJSON(ctx, map[string]string{"orderId": "ORD-RETRY"}, nil)
	require.NoError(t, err)

	attempts := 0
	handler := func(ctx context.Context, d *Delivery) error {
		attempts++
		return assert.AnError
	}

	err = q.Consume(handler)
	require.NoError(t, err)

	time.Sleep(500 * time.Millisecond)
	assert.GreaterOrEqual(t, attempts, 1)

	stats, err := q.GetStats()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.PendingMessages, int64(1))
}

func TestQueue_GetStats(t *testing.T) {
	mr, adapter := setupTestRedis(t)
	defer mr.Close()

	config := Config{
		Name:              "test:stats:queue",
		ConsumerGroup:     "test-group",
		ConsumerName:      "test-consumer",
		MaxRetries:        3,
		VisibilityTimeout: 5 * time.Second,
		PollInterval:      100 * time.Millisecond,
		BatchSize:         10,
	}

	q, err := New(adapter, config)
	require.NoError(t, err)
	defer q.Stop(time.Second)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := q.PublishJSON(ctx, map[string]int{"count": i}, nil)
		require.NoError(t, err)
	}

	stats, err := q.GetStats()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.TotalMessages, int64(5))
}

func TestDelivery_Ack(t *testing.T) {
	mr, adapter := setupTestRedis(t)
	defer mr.Close()

	config := Config{
		Name:              "test:ack:queue",
		ConsumerGroup:     "test-group",
		ConsumerName:      "test-consumer",
		MaxRetries:        3,
		VisibilityTimeout: 5 * time.Second,
		PollInterval:      100 * time.Millisecond,
		BatchSize:         10,
	}

	q, err := New(adapter, config)
	require.NoError(t, err)
	defer q.Stop(time.Second)

	t.Run("ack marks delivery as processed", func(t *testing.T) {
		id, err := q.Publish(context.Background(), []byte(`{"orderId":"ORD-1"}`), map[string]string{})
		require.NoError(t, err)

		d := &Delivery{
			ID:       id,
			Data:     []byte(`{"orderId":"ORD-1"}`),
			Metadata: map[string]string{},
			queue:    q,
		}

		err = d.Ack()
		assert.NoError(t, err)
		assert.True(t, d.acked)
	})

	t.Run("cannot ack twice", func(t *testing.T) {
		d := &Delivery{
			ID:    "test-2",
			acked: true,
		}

		err := d.Ack()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already acknowledged")
	})
}

func TestQueue_ConfigDefaults(t *testing.T) {
	_, adapter := setupTestRedis(t)

	t.Run("name is required", func(t *testing.T) {
		_, err := New(adapter, Config{})
		assert.Error(t, err)
	})

	t.Run("missing settings get defaults", func(t *testing.T) {
		q, err := New(adapter, Config{Name: "defaults:queue"})
		require.NoError(t, err)
		assert.Equal(t, "default-group", q.config.ConsumerGroup)
		assert.Equal(t, 3, q.config.MaxRetries)
		assert.Equal(t, 30*time.Second, q.config.VisibilityTimeout)
		assert.Equal(t, int64(10), q.config.BatchSize)
		q.Stop(time.Second)
	})
}

func TestQueue_ConcurrentPublish(t *testing.T) {
	mr, adapter := setupTestRedis(t)
	defer mr.Close()

	config := Config{
		Name:              "test:concurrent:queue",
		ConsumerGroup:     "test-group",
		ConsumerName:      "test-consumer",
		MaxRetries:        3,
		VisibilityTimeout: 5 * time.Second,
		PollInterval:      100 * time.Millisecond,
		BatchSize:         10,
	}

	q, err := New(adapter, config)
	require.NoError(t, err)
	defer q.Stop(time.Second)

	ctx := context.Background()
	numGoroutines := 10
	done := make(chan bool, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			_, err := q.PublishJSON(ctx, map[string]int{"id": id}, nil)
			assert.NoError(t, err)
			done <- true
		}(i)
	}

	for i := 0; i < numGoroutines; i++ {
		<-done
	}

	stats, err := q.GetStats()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.TotalMessages, int64(numGoroutines))
}

func TestQueue_Stop(t *testing.T) {
	mr, adapter := setupTestRedis(t)
	defer mr.Close()

	config := Config{
		Name:              "test:stop:queue",
		ConsumerGroup:     "test-group",
		ConsumerName:      "test-consumer",
		MaxRetries:        3,
		VisibilityTimeout: 5 * time.Second,
		PollInterval:      100 * time.Millisecond,
		BatchSize:         10,
	}

	q, err := New(adapter, config)
	require.NoError(t, err)

	handler := func(ctx context.Context, d *Delivery) error {
		time.Sleep(100 * time.Millisecond)
		return nil
	}

	err = q.Consume(handler)
	require.NoError(t, err)

	err = q.Stop(2 * time.Second)
	assert.NoError(t, err)
}

package outbox_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/felixgeelhaar/parley/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPublisher is a test double for eventbus.Publisher.
type mockPublisher struct {
	mu          sync.Mutex
	published   []publishedMessage
	failForKeys map[string]bool
}

type publishedMessage struct {
	RoutingKey string
	Payload    []byte
}

func newMockPublisher() *mockPublisher {
	return &mockPublisher{failForKeys: make(map[string]bool)}
}

func (p *mockPublisher) Publish(_ context.Context, routingKey string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.failForKeys[routingKey] {
		return errors.New("publish failed")
	}

	p.published = append(p.published, publishedMessage{
		RoutingKey: routingKey,
		Payload:    payload,
	})
	return nil
}

func (p *mockPublisher) Close() error {
	return nil
}

func (p *mockPublisher) PublishedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

func createTestMessage(routingKey string) *outbox.Message {
	payload, _ := json.Marshal(map[string]string{"test": "data"})
	return &outbox.Message{
		EventID:       uuid.New(),
		AggregateType: "MeetingRequest",
		AggregateID:   uuid.New(),
		EventType:     routingKey,
		RoutingKey:    routingKey,
		Payload:       payload,
		CreatedAt:     time.Now(),
	}
}

func TestProcessor_ProcessOnce(t *testing.T) {
	repo := outbox.NewMemoryRepository()
	publisher := newMockPublisher()
	processor := outbox.NewProcessor(repo, publisher, outbox.DefaultProcessorConfig(), nil)

	ctx := context.Background()
	msg1 := createTestMessage("negotiation.request.created")
	msg2 := createTestMessage("negotiation.request.accepted")
	require.NoError(t, repo.Save(ctx, msg1))
	require.NoError(t, repo.Save(ctx, msg2))

	err := processor.ProcessOnce(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, publisher.PublishedCount())
	assert.True(t, msg1.IsPublished())
	assert.True(t, msg2.IsPublished())

	// Published messages are not picked up again.
	remaining, err := repo.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestProcessor_ProcessOnce_PublishFailure(t *testing.T) {
	repo := outbox.NewMemoryRepository()
	publisher := newMockPublisher()
	publisher.failForKeys["negotiation.request.rejected"] = true
	processor := outbox.NewProcessor(repo, publisher, outbox.DefaultProcessorConfig(), nil)

	ctx := context.Background()
	good := createTestMessage("negotiation.request.created")
	bad := createTestMessage("negotiation.request.rejected")
	require.NoError(t, repo.Save(ctx, good))
	require.NoError(t, repo.Save(ctx, bad))

	err := processor.ProcessOnce(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, publisher.PublishedCount())
	assert.True(t, good.IsPublished())
	assert.False(t, bad.IsPublished())
	assert.Equal(t, 1, bad.RetryCount)
	require.NotNil(t, bad.LastError)
	assert.Equal(t, "publish failed", *bad.LastError)
	require.NotNil(t, bad.NextRetryAt)
	assert.True(t, bad.NextRetryAt.After(time.Now()))
}

func TestProcessor_ProcessOnce_BackoffDefersRetry(t *testing.T) {
	repo := outbox.NewMemoryRepository()
	publisher := newMockPublisher()
	publisher.failForKeys["negotiation.request.created"] = true
	processor := outbox.NewProcessor(repo, publisher, outbox.DefaultProcessorConfig(), nil)

	ctx := context.Background()
	msg := createTestMessage("negotiation.request.created")
	require.NoError(t, repo.Save(ctx, msg))

	require.NoError(t, processor.ProcessOnce(ctx))
	require.NoError(t, processor.ProcessOnce(ctx))

	// The second pass skips the message because its retry is in the future.
	assert.Equal(t, 1, msg.RetryCount)
}

func TestProcessor_StartStop(t *testing.T) {
	repo := outbox.NewMemoryRepository()
	publisher := newMockPublisher()
	config := outbox.DefaultProcessorConfig()
	config.PollInterval = 10 * time.Millisecond
	processor := outbox.NewProcessor(repo, publisher, config, nil)

	ctx := context.Background()
	require.NoError(t, processor.Start(ctx))
	assert.True(t, processor.IsRunning())

	msg := createTestMessage("negotiation.request.created")
	require.NoError(t, repo.Save(ctx, msg))

	assert.Eventually(t, func() bool {
		return publisher.PublishedCount() == 1
	}, time.Second, 10*time.Millisecond)

	processor.Stop()
	assert.False(t, processor.IsRunning())
}

package notifier

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	gateway "github.com/agrilink/agrilink/internal/gateways"
	"github.com/agrilink/agrilink/internal/model"
	"github.com/agrilink/agrilink/internal/queue"
)

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendEmail(ctx context.Context, req *gateway.SendRequest) (*gateway.SendResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.SendResponse), args.Error(1)
}

type MockLogRepo struct {
	mock.Mock
}

func (m *MockLogRepo) Create(ctx context.Context, log *model.NotificationLog) (*model.NotificationLog, error) {
	args := m.Called(ctx, log)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NotificationLog), args.Error(1)
}

func newTestProcessor(sender *MockEmailSender, logRepo *MockLogRepo) *EmailProcessor {
	idempotency := NewIdempotencyService(newMockRedisAdapter(), DefaultIdempotencyConfig())
	return NewEmailProcessor(sender, logRepo, idempotency, "logistics@agrilink.local", "http://localhost:5173/tracking")
}

func testDelivery(t *testing.T, id string, n model.Notification) *queue.Delivery {
	t.Helper()
	data, err := json.Marshal(n)
	require.NoError(t, err)
	return &queue.Delivery{
		ID:        id,
		Data:      data,
		Metadata:  map[string]string{"orderId": n.OrderID, "status": n.Status},
		Timestamp: time.Now(),
	}
}

func TestEmailProcessor_Process(t *testing.T) {
	notification := model.Notification{
		OrderID:  "ORD-1001",
		Email:    "buyer@example.com",
		Status:   string(model.StatusDelivered),
		QueuedAt: time.Now(),
	}

	t.Run("successful send records sent log", func(t *testing.T) {
		sender := new(MockEmailSender)
		logRepo := new(MockLogRepo)
		processor := newTestProcessor(sender, logRepo)

		sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(req *gateway.SendRequest) bool {
			return req.To == "buyer@example.com" &&
				req.Subject == "Delivery Complete - Thank You!" &&
				req.From == "logistics@agrilink.local"
		})).Return(&gateway.SendResponse{
			Status:      gateway.StatusAccepted,
			ProviderID:  "primary",
			ProcessedAt: time.Now(),
		}, nil)

		logRepo.On("Create", mock.Anything, mock.MatchedBy(func(l *model.NotificationLog) bool {
			return l.OrderID == "ORD-1001" && l.State == model.NotificationStateSent && l.ProviderID == "primary"
		})).Return(&model.NotificationLog{ID: 1}, nil)

		err := processor.Process(context.Background(), testDelivery(t, "1700000000001-0", notification))
		require.NoError(t, err)

		sender.AssertExpectations(t)
		logRepo.AssertExpectations(t)
	})

	t.Run("redelivered notification is not sent twice", func(t *testing.T) {
		sender := new(MockEmailSender)
		logRepo := new(MockLogRepo)
		processor := newTestProcessor(sender, logRepo)

		sender.On("SendEmail", mock.Anything, mock.Anything).Return(&gateway.SendResponse{
			Status:     gateway.StatusAccepted,
			ProviderID: "primary",
		}, nil).Once()
		logRepo.On("Create", mock.Anything, mock.Anything).Return(&model.NotificationLog{ID: 1}, nil)

		d := testDelivery(t, "1700000000002-0", notification)
		require.NoError(t, processor.Process(context.Background(), d))

		// Same stream entry arrives again after a reclaim.
		require.NoError(t, processor.Process(context.Background(), testDelivery(t, "1700000000002-0", notification)))

		sender.AssertNumberOfCalls(t, "SendEmail", 1)
	})

	t.Run("transport failure returns error for retry", func(t *testing.T) {
		sender := new(MockEmailSender)
		logRepo := new(MockLogRepo)
		processor := newTestProcessor(sender, logRepo)

		sender.On("SendEmail", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		err := processor.Process(context.Background(), testDelivery(t, "1700000000003-0", notification))
		assert.Error(t, err)

		logRepo.AssertNotCalled(t, "Create")
	})

	t.Run("provider rejection returns error for retry", func(t *testing.T) {
		sender := new(MockEmailSender)
		logRepo := new(MockLogRepo)
		processor := newTestProcessor(sender, logRepo)

		sender.On("SendEmail", mock.Anything, mock.Anything).Return(&gateway.SendResponse{
			Status:    gateway.StatusRejected,
			ErrorCode: "INVALID_RECIPIENT",
		}, nil)

		err := processor.Process(context.Background(), testDelivery(t, "1700000000004-0", notification))
		assert.Error(t, err)
	})

	t.Run("exhausted retries ack the delivery and record failure", func(t *testing.T) {
		sender := new(MockEmailSender)
		logRepo := new(MockLogRepo)
		processor := newTestProcessor(sender, logRepo)

		sender.On("SendEmail", mock.Anything, mock.Anything).Return(nil, assert.AnError)
		logRepo.On("Create", mock.Anything, mock.MatchedBy(func(l *model.NotificationLog) bool {
			return l.State == model.NotificationStateFailed
		})).Return(&model.NotificationLog{ID: 2}, nil)

		d := func() *queue.Delivery { return testDelivery(t, "1700000000005-0", notification) }
		for i := 0; i < DefaultIdempotencyConfig().MaxRetries; i++ {
			assert.Error(t, processor.Process(context.Background(), d()))
		}

		// Retry budget spent; the processor acks so the queue can dead-letter it.
		err := processor.Process(context.Background(), d())
		assert.NoError(t, err)

		logRepo.AssertExpectations(t)
	})

	t.Run("creation notification uses the default template", func(t *testing.T) {
		sender := new(MockEmailSender)
		logRepo := new(MockLogRepo)
		processor := newTestProcessor(sender, logRepo)

		created := model.Notification{
			OrderID: "ORD-2002",
			Email:   "farmer@example.com",
			Status:  model.NotificationStatusDefault,
		}

		sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(req *gateway.SendRequest) bool {
			return req.Subject == "Your Delivery Order Has Been Submitted"
		})).Return(&gateway.SendResponse{Status: gateway.StatusAccepted, ProviderID: "primary"}, nil)
		logRepo.On("Create", mock.Anything, mock.Anything).Return(&model.NotificationLog{ID: 3}, nil)

		err := processor.Process(context.Background(), testDelivery(t, "1700000000006-0", created))
		require.NoError(t, err)

		sender.AssertExpectations(t)
	})

	t.Run("malformed payload fails", func(t *testing.T) {
		sender := new(MockEmailSender)
		logRepo := new(MockLogRepo)
		processor := newTestProcessor(sender, logRepo)

		logRepo.On("Create", mock.Anything, mock.Anything).Return(&model.NotificationLog{}, nil)

		err := processor.Process(context.Background(), &queue.Delivery{
			ID:   "1700000000007-0",
			Data: []byte("not json"),
		})
		assert.Error(t, err)
		sender.AssertNotCalled(t, "SendEmail")
	})
}

package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	gateway "github.com/agrilink/agrilink/internal/gateways"
	"github.com/agrilink/agrilink/internal/model"
	"github.com/agrilink/agrilink/internal/queue"
	"github.com/agrilink/agrilink/pkg/logger"
	"github.com/agrilink/agrilink/pkg/prom"
)

type NotificationLogRepository interface {
	Create(ctx context.Context, log *model.NotificationLog) (*model.NotificationLog, error)
}

// EmailSender is the transport slice of the gateway client the
// processor needs.
type EmailSender interface {
	SendEmail(ctx context.Context, req *gateway.SendRequest) (*gateway.SendResponse, error)
}

type EmailProcessor struct {
	sender      EmailSender
	logRepo     NotificationLogRepository
	idempotency *IdempotencyService
	fromAddress string
	trackingURL string
}

func NewEmailProcessor(sender EmailSender, logRepo NotificationLogRepository, idempotency *IdempotencyService, fromAddress, trackingURL string) *EmailProcessor {
	return &EmailProcessor{
		sender:      sender,
		logRepo:     logRepo,
		idempotency: idempotency,
		fromAddress: fromAddress,
		trackingURL: trackingURL,
	}
}

func (p *EmailProcessor) GetType() string {
	return "email"
}

// Process renders and sends one queued notification. The stream entry
// id identifies the attempt for idempotency, so a reclaimed delivery
// that already went out is acked without a second send.
func (p *EmailProcessor) Process(ctx context.Context, d *queue.Delivery) error {
	var notification model.Notification
	if err := json.Unmarshal(d.Data, &notification); err != nil {
		logger.Error("Failed to unmarshal notification", "delivery_id", d.ID, "error", err)
		p.recordOutcome(ctx, &notification, model.NotificationStateFailed, "", nil)
		return err
	}

	notificationID := d.ID

	procCtx, err := p.idempotency.AcquireProcessingLock(ctx, notificationID)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyProcessed):
			logger.Info("Notification already sent, skipping", "notification_id", notificationID)
			return nil
		case errors.Is(err, ErrMaxRetriesExceeded):
			logger.Error("Max retries exceeded", "notification_id", notificationID, "orderId", notification.OrderID)
			p.recordOutcome(ctx, &notification, model.NotificationStateFailed, "", nil)
			return nil // ack so the delivery lands in the DLQ path, not an endless retry
		case errors.Is(err, ErrLockAcquireFailed):
			return errors.New("lock held by another consumer")
		default:
			return err
		}
	}

	defer p.idempotency.ReleaseLock(ctx, procCtx)

	template := TemplateFor(notification.Status)

	req := &gateway.SendRequest{
		MessageID: notificationID,
		From:      p.fromAddress,
		To:        notification.Email,
		Subject:   template.Subject,
		HTML:      RenderHTML(template, notification.OrderID, p.trackingURL),
	}

	start := time.Now()
	res, err := p.sender.SendEmail(ctx, req)
	if err != nil {
		logger.Error("Failed to send notification", "notification_id", notificationID, "orderId", notification.OrderID, "error", err)
		prom.IncNotificationOutcome("failed")
		if markErr := p.idempotency.MarkFailure(ctx, procCtx, err); markErr != nil {
			logger.Error("Failed to mark failure", "notification_id", notificationID, "error", markErr)
		}
		return err
	}

	prom.AddNotificationSendDuration(time.Since(start).Seconds(), notification.Status)

	if res.Status != gateway.StatusAccepted {
		logger.Warn("Provider rejected notification", "notification_id", notificationID, "status", res.Status, "error_code", res.ErrorCode)
		prom.IncNotificationOutcome("rejected")
		if markErr := p.idempotency.MarkFailure(ctx, procCtx, errors.New("provider rejected the message")); markErr != nil {
			logger.Error("Failed to mark failure", "notification_id", notificationID, "error", markErr)
		}
		return errors.New("failed to send notification")
	}

	logger.Info("Notification sent",
		"notification_id", notificationID,
		"orderId", notification.OrderID,
		"status", notification.Status,
		"provider", res.ProviderID,
		"retry_count", procCtx.RetryCount)
	prom.IncNotificationOutcome("sent")

	sentAt := res.ProcessedAt
	if sentAt.IsZero() {
		sentAt = time.Now()
	}
	p.recordOutcome(ctx, &notification, model.NotificationStateSent, res.ProviderID, &sentAt)

	if markErr := p.idempotency.MarkSuccess(ctx, procCtx); markErr != nil {
		// The mail went out; a lost marker only risks a duplicate.
		logger.Error("Failed to mark success", "notification_id", notificationID, "error", markErr)
	}
	return nil
}

func (p *EmailProcessor) recordOutcome(ctx context.Context, n *model.Notification, state model.NotificationState, providerID string, sentAt *time.Time) {
	if p.logRepo == nil {
		return
	}
	_, err := p.logRepo.Create(ctx, &model.NotificationLog{
		OrderID:    n.OrderID,
		Email:      n.Email,
		Status:     n.Status,
		State:      state,
		ProviderID: providerID,
		SentAt:     sentAt,
	})
	if err != nil {
		logger.Error("Failed to save notification log", "orderId", n.OrderID, "error", err)
	}
}

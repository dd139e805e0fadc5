package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/agrilink/agrilink/internal/model"
	"github.com/agrilink/agrilink/internal/repository"
	"github.com/agrilink/agrilink/pkg/logger"
)

var (
	ErrOrderNotFound    = errors.New("delivery order not found")
	ErrDuplicateOrderID = errors.New("orderId already exists")
	ErrInvalidStatus    = errors.New("invalid status value")
)

type DeliveryOrderRepository interface {
	Create(ctx context.Context, order *model.DeliveryOrder) (*model.DeliveryOrder, error)
	Get(ctx context.Context, id int64) (*model.DeliveryOrder, error)
	GetByOrderID(ctx context.Context, orderID string) (*model.DeliveryOrder, error)
	List(ctx context.Context) ([]*model.DeliveryOrder, error)
	Update(ctx context.Context, id int64, order *model.DeliveryOrder) (*model.DeliveryOrder, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.DeliveryOrder, error)
	Delete(ctx context.Context, id int64) (*model.DeliveryOrder, error)
}

// NotificationDispatcher hands a notification to the delivery pipeline.
// Dispatch is best effort: callers must never fail a request because a
// notification could not be queued.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, n *model.Notification) error
}

type DeliveryService struct {
	orderRepo  DeliveryOrderRepository
	dispatcher NotificationDispatcher
}

func NewDeliveryService(orderRepo DeliveryOrderRepository, dispatcher NotificationDispatcher) *DeliveryService {
	return &DeliveryService{
		orderRepo:  orderRepo,
		dispatcher: dispatcher,
	}
}

// Create validates and stores a new order. The first status is always
// FIRST MILE RECEIVE SCAN regardless of what the caller sent, and the
// order-created mail is queued once the row is in.
func (s *DeliveryService) Create(ctx context.Context, order *model.DeliveryOrder) (*model.DeliveryOrder, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}

	order.Status = model.StatusFirstMileReceiveScan

	created, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateOrderID) {
			return nil, ErrDuplicateOrderID
		}
		return nil, fmt.Errorf("create delivery order: %w", err)
	}

	s.notify(ctx, created, model.NotificationStatusDefault)
	return created, nil
}

func (s *DeliveryService) Get(ctx context.Context, id int64) (*model.DeliveryOrder, error) {
	order, err := s.orderRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *DeliveryService) List(ctx context.Context) ([]*model.DeliveryOrder, error) {
	return s.orderRepo.List(ctx)
}

func (s *DeliveryService) Update(ctx context.Context, id int64, order *model.DeliveryOrder) (*model.DeliveryOrder, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.orderRepo.Update(ctx, id, order)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *DeliveryService) Delete(ctx context.Context, id int64) (*model.DeliveryOrder, error) {
	deleted, err := s.orderRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return deleted, nil
}

// Track returns only the current status of the order identified by its
// public tracking id.
func (s *DeliveryService) Track(ctx context.Context, orderID string) (model.OrderStatus, error) {
	order, err := s.orderRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrOrderNotFound
		}
		return "", err
	}
	return order.Status, nil
}

// SetStatus stores the given status verbatim. Any of the four known
// statuses is accepted in any order; the facility scanners are trusted
// to report what actually happened, including corrections backwards.
func (s *DeliveryService) SetStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.DeliveryOrder, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	s.notify(ctx, updated, string(status))
	return updated, nil
}

func (s *DeliveryService) notify(ctx context.Context, order *model.DeliveryOrder, status string) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Dispatch(ctx, &model.Notification{
		OrderID: order.OrderID,
		Email:   order.Email,
		Status:  status,
	})
	if err != nil {
		logger.Error("notification dispatch failed", "orderId", order.OrderID, "status", status, "error", err)
	}
}

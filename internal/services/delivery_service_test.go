package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/agrilink/agrilink/internal/model"
	"github.com/agrilink/agrilink/internal/repository"
)

type MockDeliveryOrderRepository struct {
	mock.Mock
}

func (m *MockDeliveryOrderRepository) Create(ctx context.Context, order *model.DeliveryOrder) (*model.DeliveryOrder, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeliveryOrder), args.Error(1)
}

func (m *MockDeliveryOrderRepository) Get(ctx context.Context, id int64) (*model.DeliveryOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeliveryOrder), args.Error(1)
}

func (m *MockDeliveryOrderRepository) GetByOrderID(ctx context.Context, orderID string) (*model.DeliveryOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeliveryOrder), args.Error(1)
}

func (m *MockDeliveryOrderRepository) List(ctx context.Context) ([]*model.DeliveryOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.DeliveryOrder), args.Error(1)
}

func (m *MockDeliveryOrderRepository) Update(ctx context.Context, id int64, order *model.DeliveryOrder) (*model.DeliveryOrder, error) {
	args := m.Called(ctx, id, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeliveryOrder), args.Error(1)
}

func (m *MockDeliveryOrderRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.DeliveryOrder, error) {
	args := m.Called(ctx, orderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeliveryOrder), args.Error(1)
}

func (m *MockDeliveryOrderRepository) Delete(ctx context.Context, id int64) (*model.DeliveryOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeliveryOrder), args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func validOrder() *model.DeliveryOrder {
	return &model.DeliveryOrder{
		OrderID:              "ORD-1001",
		DeliveryAddress:      "12 Market Road",
		ContactNumber:        "1234567890",
		Email:                "farmer@example.com",
		PreferredPacking:     "crate",
		PreferredVehicleType: "van",
	}
}

func TestDeliveryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("new order starts at first mile scan and queues the created mail", func(t *testing.T) {
		repo := new(MockDeliveryOrderRepository)
		dispatcher := new(MockDispatcher)
		service := NewDeliveryService(repo, dispatcher)

		order := validOrder()
		order.Status = model.StatusDelivered // caller-supplied status is ignored

		stored := validOrder()
		stored.ID = 1
		stored.Status = model.StatusFirstMileReceiveScan

		repo.On("Create", ctx, mock.MatchedBy(func(o *model.DeliveryOrder) bool {
			return o.Status == model.StatusFirstMileReceiveScan
		})).Return(stored, nil)
		dispatcher.On("Dispatch", ctx, mock.MatchedBy(func(n *model.Notification) bool {
			return n.Status == model.NotificationStatusDefault && n.OrderID == "ORD-1001" && n.Email == "farmer@example.com"
		})).Return(nil)

		created, err := service.Create(ctx, order)
		require.NoError(t, err)
		assert.Equal(t, model.StatusFirstMileReceiveScan, created.Status)

		repo.AssertExpectations(t)
		dispatcher.AssertExpectations(t)
	})

	t.Run("duplicate order id", func(t *testing.T) {
		repo := new(MockDeliveryOrderRepository)
		service := NewDeliveryService(repo, nil)

		repo.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicateOrderID)

		_, err := service.Create(ctx, validOrder())
		assert.ErrorIs(t, err, ErrDuplicateOrderID)
	})

	t.Run("dispatch failure never fails the request", func(t *testing.T) {
		repo := new(MockDeliveryOrderRepository)
		dispatcher := new(MockDispatcher)
		service := NewDeliveryService(repo, dispatcher)

		stored := validOrder()
		stored.ID = 1
		stored.Status = model.StatusFirstMileReceiveScan

		repo.On("Create", ctx, mock.Anything).Return(stored, nil)
		dispatcher.On("Dispatch", ctx, mock.Anything).Return(errors.New("broker down"))

		created, err := service.Create(ctx, validOrder())
		require.NoError(t, err)
		assert.NotNil(t, created)
	})

	t.Run("contact number must be exactly ten digits", func(t *testing.T) {
		repo := new(MockDeliveryOrderRepository)
		service := NewDeliveryService(repo, nil)

		for _, number := range []string{"12345", "123-456-7890", "12345678901"} {
			order := validOrder()
			order.ContactNumber = number

			_, err := service.Create(ctx, order)
			var vErr *model.ValidationError
			require.ErrorAs(t, err, &vErr, "contact number %q should be rejected", number)
			assert.Contains(t, vErr.Fields, "contactNumber")
		}
	})

	t.Run("bulk order requires positive weight", func(t *testing.T) {
		repo := new(MockDeliveryOrderRepository)
		service := NewDeliveryService(repo, nil)

		order := validOrder()
		order.IsBulkOrder = true
		order.BulkOrderID = "BULK-9"
		order.BulkDeliveryAddress = "Depot 4"
		order.BulkContactNumber = "0987654321"
		order.BulkOrderWeight = 0

		_, err := service.Create(ctx, order)
		var vErr *model.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "bulkOrderWeight")

		stored := validOrder()
		stored.ID = 2
		stored.Status = model.StatusFirstMileReceiveScan
		repo.On("Create", ctx, mock.Anything).Return(stored, nil)

		order.BulkOrderWeight = 25
		_, err = service.Create(ctx, order)
		assert.NoError(t, err)
	})
}

func TestDeliveryService_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("known status is stored and notified", func(t *testing.T) {
		repo := new(MockDeliveryOrderRepository)
		dispatcher := new(MockDispatcher)
		service := NewDeliveryService(repo, dispatcher)

		updated := validOrder()
		updated.ID = 1
		updated.Status = model.StatusOutForDelivery

		repo.On("UpdateStatus", ctx, "ORD-1001", model.StatusOutForDelivery).Return(updated, nil)
		dispatcher.On("Dispatch", ctx, mock.MatchedBy(func(n *model.Notification) bool {
			return n.Status == string(model.StatusOutForDelivery)
		})).Return(nil)

		got, err := service.SetStatus(ctx, "ORD-1001", model.StatusOutForDelivery)
		require.NoError(t, err)
		assert.Equal(t, model.StatusOutForDelivery, got.Status)
		dispatcher.AssertExpectations(t)
	})

	t.Run("backward transition is accepted", func(t *testing.T) {
		repo := new(MockDeliveryOrderRepository)
		dispatcher := new(MockDispatcher)
		service := NewDeliveryService(repo, dispatcher)

		updated := validOrder()
		updated.Status = model.StatusReceivedInFacility

		repo.On("UpdateStatus", ctx, "ORD-1001", model.StatusReceivedInFacility).Return(updated, nil)
		dispatcher.On("Dispatch", ctx, mock.Anything).Return(nil)

		got, err := service.SetStatus(ctx, "ORD-1001", model.StatusReceivedInFacility)
		require.NoError(t, err)
		assert.Equal(t, model.StatusReceivedInFacility, got.Status)
	})

	t.Run("unknown status is rejected before any write", func(t *testing.T) {
		repo := new(MockDeliveryOrderRepository)
		service := NewDeliveryService(repo, nil)

		for _, status := range []string{"SHIPPED", "delivered", "Out For Delivery", ""} {
			_, err := service.SetStatus(ctx, "ORD-1001", model.OrderStatus(status))
			assert.ErrorIs(t, err, ErrInvalidStatus, "status %q", status)
		}
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing order", func(t *testing.T) {
		repo := new(MockDeliveryOrderRepository)
		service := NewDeliveryService(repo, nil)

		repo.On("UpdateStatus", ctx, "ORD-NOPE", model.StatusDelivered).Return(nil, repository.ErrNotFound)

		_, err := service.SetStatus(ctx, "ORD-NOPE", model.StatusDelivered)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestDeliveryService_Track(t *testing.T) {
	ctx := context.Background()

	t.Run("returns only the status", func(t *testing.T) {
		repo := new(MockDeliveryOrderRepository)
		service := NewDeliveryService(repo, nil)

		order := validOrder()
		order.Status = model.StatusOutForDelivery
		repo.On("GetByOrderID", ctx, "ORD-1001").Return(order, nil)

		status, err := service.Track(ctx, "ORD-1001")
		require.NoError(t, err)
		assert.Equal(t, model.StatusOutForDelivery, status)
	})

	t.Run("missing order", func(t *testing.T) {
		repo := new(MockDeliveryOrderRepository)
		service := NewDeliveryService(repo, nil)

		repo.On("GetByOrderID", ctx, "ORD-NOPE").Return(nil, repository.ErrNotFound)

		_, err := service.Track(ctx, "ORD-NOPE")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestDeliveryService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("missing order", func(t *testing.T) {
		repo := new(MockDeliveryOrderRepository)
		service := NewDeliveryService(repo, nil)

		repo.On("Delete", ctx, int64(42)).Return(nil, repository.ErrNotFound)

		_, err := service.Delete(ctx, 42)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("returns the removed order", func(t *testing.T) {
		repo := new(MockDeliveryOrderRepository)
		service := NewDeliveryService(repo, nil)

		order := validOrder()
		order.ID = 42
		repo.On("Delete", ctx, int64(42)).Return(order, nil)

		deleted, err := service.Delete(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, "ORD-1001", deleted.OrderID)
	})
}

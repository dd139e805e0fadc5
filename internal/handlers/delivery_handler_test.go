package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/agrilink/agrilink/internal/model"
	"github.com/agrilink/agrilink/internal/services"
	xhttp "github.com/agrilink/agrilink/pkg/http"
)

type MockDeliveryService struct {
	mock.Mock
}

func (m *MockDeliveryService) Create(ctx context.Context, order *model.DeliveryOrder) (*model.DeliveryOrder, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeliveryOrder), args.Error(1)
}

func (m *MockDeliveryService) Get(ctx context.Context, id int64) (*model.DeliveryOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeliveryOrder), args.Error(1)
}

func (m *MockDeliveryService) List(ctx context.Context) ([]*model.DeliveryOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.DeliveryOrder), args.Error(1)
}

func (m *MockDeliveryService) Update(ctx context.Context, id int64, order *model.DeliveryOrder) (*model.DeliveryOrder, error) {
	args := m.Called(ctx, id, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeliveryOrder), args.Error(1)
}

func (m *MockDeliveryService) Delete(ctx context.Context, id int64) (*model.DeliveryOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeliveryOrder), args.Error(1)
}

func (m *MockDeliveryService) Track(ctx context.Context, orderID string) (model.OrderStatus, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.OrderStatus), args.Error(1)
}

func (m *MockDeliveryService) SetStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.DeliveryOrder, error) {
	args := m.Called(ctx, orderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeliveryOrder), args.Error(1)
}

func setupTestContext(method, path string, body []byte) *xhttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != nil {
		ctx.Request.SetBody(body)
	}
	return ctx
}

func testOrder() *model.DeliveryOrder {
	return &model.DeliveryOrder{
		ID:                   1,
		OrderID:              "ORD-1001",
		DeliveryAddress:      "12 Market Road",
		ContactNumber:        "9876543210",
		Email:                "buyer@example.com",
		PreferredPacking:     "crate",
		PreferredVehicleType: "truck",
		Status:               model.StatusFirstMileReceiveScan,
	}
}

func TestDeliveryHandler_CreateOrder(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		svc := new(MockDeliveryService)
		handler := NewDeliveryHandler(svc)

		order := testOrder()
		bodyBytes, _ := json.Marshal(order)

		svc.On("Create", mock.Anything, mock.MatchedBy(func(o *model.DeliveryOrder) bool {
			return o.OrderID == "ORD-1001"
		})).Return(order, nil)

		ctx := setupTestContext("POST", "/api/create-delivery-order", bodyBytes)
		handler.CreateOrder(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())

		var response struct {
			Message string               `json:"message"`
			Data    *model.DeliveryOrder `json:"data"`
		}
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.Equal(t, "Delivery order created successfully", response.Message)
		assert.Equal(t, "ORD-1001", response.Data.OrderID)

		svc.AssertExpectations(t)
	})

	t.Run("duplicate orderId", func(t *testing.T) {
		svc := new(MockDeliveryService)
		handler := NewDeliveryHandler(svc)

		bodyBytes, _ := json.Marshal(testOrder())
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, services.ErrDuplicateOrderID)

		ctx := setupTestContext("POST", "/api/create-delivery-order", bodyBytes)
		handler.CreateOrder(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())

		var response map[string]string
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.Equal(t, "Delivery order with this orderId already exists", response["message"])
	})

	t.Run("validation error carries field messages", func(t *testing.T) {
		svc := new(MockDeliveryService)
		handler := NewDeliveryHandler(svc)

		vErr := model.NewValidationError()
		vErr.Add("contactNumber", "contactNumber must be a 10-digit number")

		bodyBytes, _ := json.Marshal(testOrder())
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, vErr)

		ctx := setupTestContext("POST", "/api/create-delivery-order", bodyBytes)
		handler.CreateOrder(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())

		var response struct {
			Message string            `json:"message"`
			Errors  map[string]string `json:"errors"`
		}
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.Equal(t, "Validation failed", response.Message)
		assert.Equal(t, "contactNumber must be a 10-digit number", response.Errors["contactNumber"])
	})

	t.Run("invalid JSON", func(t *testing.T) {
		svc := new(MockDeliveryService)
		handler := NewDeliveryHandler(svc)

		ctx := setupTestContext("POST", "/api/create-delivery-order", []byte("not json"))
		handler.CreateOrder(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})

	t.Run("unexpected error stays generic", func(t *testing.T) {
		svc := new(MockDeliveryService)
		handler := NewDeliveryHandler(svc)

		bodyBytes, _ := json.Marshal(testOrder())
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("pq: connection refused"))

		ctx := setupTestContext("POST", "/api/create-delivery-order", bodyBytes)
		handler.CreateOrder(ctx)

		assert.Equal(t, 500, ctx.Response.StatusCode())

		var response map[string]string
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.Equal(t, "Internal server error", response["message"])
		assert.NotContains(t, string(ctx.Response.Body()), "connection refused")
	})
}

func TestDeliveryHandler_ListOrders(t *testing.T) {
	t.Run("returns raw array", func(t *testing.T) {
		svc := new(MockDeliveryService)
		handler := NewDeliveryHandler(svc)

		svc.On("List", mock.Anything).Return([]*model.DeliveryOrder{testOrder()}, nil)

		ctx := setupTestContext("GET", "/api/get-delivery-orders", nil)
		handler.ListOrders(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response []*model.DeliveryOrder
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.Len(t, response, 1)
	})

	t.Run("empty store returns empty array not null", func(t *testing.T) {
		svc := new(MockDeliveryService)
		handler := NewDeliveryHandler(svc)

		svc.On("List", mock.Anything).Return(nil, nil)

		ctx := setupTestContext("GET", "/api/get-delivery-orders", nil)
		handler.ListOrders(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		assert.Equal(t, "[]", string(ctx.Response.Body()))
	})
}

func TestDeliveryHandler_GetOrder(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := new(MockDeliveryService)
		handler := NewDeliveryHandler(svc)

		svc.On("Get", mock.Anything, int64(1)).Return(testOrder(), nil)

		ctx := setupTestContext("GET", "/api/get-delivery-order/1", nil)
		ctx.SetUserValue("id", "1")
		handler.GetOrder(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response model.DeliveryOrder
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.Equal(t, "ORD-1001", response.OrderID)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(MockDeliveryService)
		handler := NewDeliveryHandler(svc)

		svc.On("Get", mock.Anything, int64(99)).Return(nil, services.ErrOrderNotFound)

		ctx := setupTestContext("GET", "/api/get-delivery-order/99", nil)
		ctx.SetUserValue("id", "99")
		handler.GetOrder(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})

	t.Run("non-numeric id", func(t *testing.T) {
		svc := new(MockDeliveryService)
		handler := NewDeliveryHandler(svc)

		ctx := setupTestContext("GET", "/api/get-delivery-order/abc", nil)
		ctx.SetUserValue("id", "abc")
		handler.GetOrder(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "Get")
	})
}

func TestDeliveryHandler_DeleteOrder(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc := new(MockDeliveryService)
		handler := NewDeliveryHandler(svc)

		svc.On("Delete", mock.Anything, int64(1)).Return(testOrder(), nil)

		ctx := setupTestContext("DELETE", "/api/delete-delivery-order/1", nil)
		ctx.SetUserValue("id", "1")
		handler.DeleteOrder(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response map[string]string
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.Equal(t, "Delivery order deleted successfully", response["message"])
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(MockDeliveryService)
		handler := NewDeliveryHandler(svc)

		svc.On("Delete", mock.Anything, int64(7)).Return(nil, services.ErrOrderNotFound)

		ctx := setupTestContext("DELETE", "/api/delete-delivery-order/7", nil)
		ctx.SetUserValue("id", "7")
		handler.DeleteOrder(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})
}

func TestDeliveryHandler_TrackOrder(t *testing.T) {
	t.Run("returns only the status", func(t *testing.T) {
		svc := new(MockDeliveryService)
		handler := NewDeliveryHandler(svc)

		svc.On("Track", mock.Anything, "ORD-1001").Return(model.StatusOutForDelivery, nil)

		ctx := setupTestContext("GET", "/api/track-order/ORD-1001", nil)
		ctx.SetUserValue("orderId", "ORD-1001")
		handler.TrackOrder(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response map[string]string
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"status": "OUT FOR DELIVERY"}, response)
	})

	t.Run("unknown order", func(t *testing.T) {
		svc := new(MockDeliveryService)
		handler := NewDeliveryHandler(svc)

		svc.On("Track", mock.Anything, "NOPE").Return(model.OrderStatus(""), services.ErrOrderNotFound)

		ctx := setupTestContext("GET", "/api/track-order/NOPE", nil)
		ctx.SetUserValue("orderId", "NOPE")
		handler.TrackOrder(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())

		var response map[string]string
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.Equal(t, "Order not found", response["message"])
	})
}

func TestDeliveryHandler_UpdateStatus(t *testing.T) {
	t.Run("status updated", func(t *testing.T) {
		svc := new(MockDeliveryService)
		handler := NewDeliveryHandler(svc)

		updated := testOrder()
		updated.Status = model.StatusDelivered

		svc.On("SetStatus", mock.Anything, "ORD-1001", model.StatusDelivered).Return(updated, nil)

		body, _ := json.Marshal(map[string]string{"status": "DELIVERED"})
		ctx := setupTestContext("PATCH", "/api/update-status/ORD-1001", body)
		ctx.SetUserValue("orderId", "ORD-1001")
		handler.UpdateStatus(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response struct {
			Message string               `json:"message"`
			Data    *model.DeliveryOrder `json:"data"`
		}
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.Equal(t, "Order status updated successfully", response.Message)
		assert.Equal(t, model.StatusDelivered, response.Data.Status)

		svc.AssertExpectations(t)
	})

	t.Run("invalid status value", func(t *testing.T) {
		svc := new(MockDeliveryService)
		handler := NewDeliveryHandler(svc)

		svc.On("SetStatus", mock.Anything, "ORD-1001", model.OrderStatus("SHIPPED")).
			Return(nil, services.ErrInvalidStatus)

		body, _ := json.Marshal(map[string]string{"status": "SHIPPED"})
		ctx := setupTestContext("PATCH", "/api/update-status/ORD-1001", body)
		ctx.SetUserValue("orderId", "ORD-1001")
		handler.UpdateStatus(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())

		var response map[string]string
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.Equal(t, "Invalid status value", response["message"])
	})

	t.Run("unknown order", func(t *testing.T) {
		svc := new(MockDeliveryService)
		handler := NewDeliveryHandler(svc)

		svc.On("SetStatus", mock.Anything, "NOPE", model.StatusDelivered).
			Return(nil, services.ErrOrderNotFound)

		body, _ := json.Marshal(map[string]string{"status": "DELIVERED"})
		ctx := setupTestContext("PATCH", "/api/update-status/NOPE", body)
		ctx.SetUserValue("orderId", "NOPE")
		handler.UpdateStatus(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})
}

func TestRespondHelpers(t *testing.T) {
	t.Run("writeJSON sets content type", func(t *testing.T) {
		ctx := setupTestContext("GET", "/", nil)
		writeJSON(ctx, 200, map[string]string{"message": "ok"})

		assert.Equal(t, 200, ctx.Response.StatusCode())
		assert.Contains(t, string(ctx.Response.Header.Peek("Content-Type")), "application/json")
	})

	t.Run("writeError uses message key", func(t *testing.T) {
		ctx := setupTestContext("GET", "/", nil)
		writeError(ctx, 404, "not found")

		assert.Equal(t, 404, ctx.Response.StatusCode())

		var result map[string]string
		err := json.Unmarshal(ctx.Response.Body(), &result)
		require.NoError(t, err)
		assert.Equal(t, "not found", result["message"])
	})

	t.Run("readJSON", func(t *testing.T) {
		ctx := setupTestContext("POST", "/", []byte(`{"key":"value"}`))

		var result map[string]string
		err := readJSON(ctx, &result)
		require.NoError(t, err)
		assert.Equal(t, "value", result["key"])
	})
}

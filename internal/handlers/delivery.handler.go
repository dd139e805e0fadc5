package handlers

import (
	"context"
	"errors"

	"github.com/fasthttp/router"

	"github.com/agrilink/agrilink/internal/model"
	"github.com/agrilink/agrilink/internal/services"
	xhttp "github.com/agrilink/agrilink/pkg/http"
)

type DeliveryService interface {
	Create(ctx context.Context, order *model.DeliveryOrder) (*model.DeliveryOrder, error)
	Get(ctx context.Context, id int64) (*model.DeliveryOrder, error)
	List(ctx context.Context) ([]*model.DeliveryOrder, error)
	Update(ctx context.Context, id int64, order *model.DeliveryOrder) (*model.DeliveryOrder, error)
	Delete(ctx context.Context, id int64) (*model.DeliveryOrder, error)
	Track(ctx context.Context, orderID string) (model.OrderStatus, error)
	SetStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.DeliveryOrder, error)
}

type DeliveryHandler struct {
	svc DeliveryService
}

func NewDeliveryHandler(svc DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{svc: svc}
}

// RegisterDeliveryRoutes keeps the route names the web frontend already
// calls.
func RegisterDeliveryRoutes(e *router.Group, h *DeliveryHandler) {
	e.POST("/create-delivery-order", h.CreateOrder)
	e.GET("/get-delivery-orders", h.ListOrders)
	e.GET("/get-delivery-order/{id}", h.GetOrder)
	e.PUT("/update-delivery-order/{id}", h.UpdateOrder)
	e.DELETE("/delete-delivery-order/{id}", h.DeleteOrder)
	e.GET("/track-order/{orderId}", h.TrackOrder)
	e.PATCH("/update-status/{orderId}", h.UpdateStatus)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *DeliveryHandler) CreateOrder(ctx *xhttp.RequestCtx) {
	var order model.DeliveryOrder
	if err := readJSON(ctx, &order); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	created, err := h.svc.Create(ctx, &order)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateOrderID) {
			writeError(ctx, xhttp.StatusBadRequest, "Delivery order with this orderId already exists")
			return
		}
		writeServiceError(ctx, err)
		return
	}

	writeJSON(ctx, xhttp.StatusCreated, messageResponse{
		Message: "Delivery order created successfully",
		Data:    created,
	})
}

func (h *DeliveryHandler) ListOrders(ctx *xhttp.RequestCtx) {
	orders, err := h.svc.List(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if orders == nil {
		orders = []*model.DeliveryOrder{}
	}
	writeJSON(ctx, xhttp.StatusOK, orders)
}

func (h *DeliveryHandler) GetOrder(ctx *xhttp.RequestCtx) {
	id, err := pathParamInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			writeError(ctx, xhttp.StatusNotFound, "Delivery order not found")
			return
		}
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, order)
}

func (h *DeliveryHandler) UpdateOrder(ctx *xhttp.RequestCtx) {
	id, err := pathParamInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid order id")
		return
	}

	var order model.DeliveryOrder
	if err := readJSON(ctx, &order); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	updated, err := h.svc.Update(ctx, id, &order)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			writeError(ctx, xhttp.StatusNotFound, "Delivery order not found")
			return
		}
		writeServiceError(ctx, err)
		return
	}

	writeJSON(ctx, xhttp.StatusOK, messageResponse{
		Message: "Delivery order updated successfully",
		Data:    updated,
	})
}

func (h *DeliveryHandler) DeleteOrder(ctx *xhttp.RequestCtx) {
	id, err := pathParamInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid order id")
		return
	}

	if _, err := h.svc.Delete(ctx, id); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			writeError(ctx, xhttp.StatusNotFound, "Delivery order not found")
			return
		}
		writeServiceError(ctx, err)
		return
	}

	writeJSON(ctx, xhttp.StatusOK, messageResponse{
		Message: "Delivery order deleted successfully",
	})
}

// TrackOrder exposes only the status so the public tracking page cannot
// read addresses or contact details.
func (h *DeliveryHandler) TrackOrder(ctx *xhttp.RequestCtx) {
	orderID := pathParam(ctx, "orderId")

	status, err := h.svc.Track(ctx, orderID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			writeError(ctx, xhttp.StatusNotFound, "Order not found")
			return
		}
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": string(status)})
}

func (h *DeliveryHandler) UpdateStatus(ctx *xhttp.RequestCtx) {
	orderID := pathParam(ctx, "orderId")

	var req updateStatusRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	updated, err := h.svc.SetStatus(ctx, orderID, model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			writeError(ctx, xhttp.StatusBadRequest, "Invalid status value")
		case errors.Is(err, services.ErrOrderNotFound):
			writeError(ctx, xhttp.StatusNotFound, "Order not found")
		default:
			writeServiceError(ctx, err)
		}
		return
	}

	writeJSON(ctx, xhttp.StatusOK, messageResponse{
		Message: "Order status updated successfully",
		Data:    updated,
	})
}

package handlers

import (
	"context"
	"errors"

	"github.com/fasthttp/router"

	"github.com/agrilink/agrilink/internal/model"
	"github.com/agrilink/agrilink/internal/services"
	xhttp "github.com/agrilink/agrilink/pkg/http"
)

type WarehouseService interface {
	Create(ctx context.Context, req *model.WarehouseRequest) (*model.WarehouseRequest, error)
	List(ctx context.Context) ([]*model.WarehouseRequest, error)
	Update(ctx context.Context, id int64, req *model.WarehouseRequest) (*model.WarehouseRequest, error)
	Delete(ctx context.Context, id int64) error
}

type WarehouseHandler struct {
	svc WarehouseService
}

func NewWarehouseHandler(svc WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{svc: svc}
}

func RegisterWarehouseRoutes(e *router.Group, h *WarehouseHandler) {
	e.GET("/requests", h.ListRequests)
	e.POST("/request-warehouse", h.CreateRequest)
	e.PUT("/update-request/{id}", h.UpdateRequest)
	e.DELETE("/delete-request/{id}", h.DeleteRequest)
}

func (h *WarehouseHandler) CreateRequest(ctx *xhttp.RequestCtx) {
	var req model.WarehouseRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	created, err := h.svc.Create(ctx, &req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	writeJSON(ctx, xhttp.StatusCreated, messageResponse{
		Message: "Warehouse request submitted successfully",
		Data:    created,
	})
}

func (h *WarehouseHandler) ListRequests(ctx *xhttp.RequestCtx) {
	requests, err := h.svc.List(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if requests == nil {
		requests = []*model.WarehouseRequest{}
	}
	writeJSON(ctx, xhttp.StatusOK, requests)
}

func (h *WarehouseHandler) UpdateRequest(ctx *xhttp.RequestCtx) {
	id, err := pathParamInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid request id")
		return
	}

	var req model.WarehouseRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	updated, err := h.svc.Update(ctx, id, &req)
	if err != nil {
		if errors.Is(err, services.ErrWarehouseRequestNotFound) {
			writeError(ctx, xhttp.StatusNotFound, "Warehouse request not found")
			return
		}
		writeServiceError(ctx, err)
		return
	}

	writeJSON(ctx, xhttp.StatusOK, messageResponse{
		Message: "Warehouse request updated successfully",
		Data:    updated,
	})
}

func (h *WarehouseHandler) DeleteRequest(ctx *xhttp.RequestCtx) {
	id, err := pathParamInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid request id")
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		if errors.Is(err, services.ErrWarehouseRequestNotFound) {
			writeError(ctx, xhttp.StatusNotFound, "Warehouse request not found")
			return
		}
		writeServiceError(ctx, err)
		return
	}

	writeJSON(ctx, xhttp.StatusOK, messageResponse{
		Message: "Warehouse request deleted successfully",
	})
}

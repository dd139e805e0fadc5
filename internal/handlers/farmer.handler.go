package handlers

import (
	"context"
	"errors"

	"github.com/fasthttp/router"

	"github.com/agrilink/agrilink/internal/model"
	"github.com/agrilink/agrilink/internal/services"
	xhttp "github.com/agrilink/agrilink/pkg/http"
)

type FarmerService interface {
	Register(ctx context.Context, farmer *model.Farmer) (*model.Farmer, error)
	Get(ctx context.Context, id int64) (*model.Farmer, error)
	List(ctx context.Context) ([]*model.Farmer, error)
	Update(ctx context.Context, id int64, farmer *model.Farmer) (*model.Farmer, error)
	Delete(ctx context.Context, id int64) error
}

type FarmerHandler struct {
	svc FarmerService
}

func NewFarmerHandler(svc FarmerService) *FarmerHandler {
	return &FarmerHandler{svc: svc}
}

func RegisterFarmerRoutes(e *router.Group, h *FarmerHandler) {
	e.POST("/signup", h.Register)
	e.GET("/profiles", h.ListProfiles)
	e.GET("/profile/{id}", h.GetProfile)
	e.PUT("/profile/{id}", h.UpdateProfile)
	e.DELETE("/profile/{id}", h.DeleteProfile)
}

func (h *FarmerHandler) Register(ctx *xhttp.RequestCtx) {
	var farmer model.Farmer
	if err := readJSON(ctx, &farmer); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	created, err := h.svc.Register(ctx, &farmer)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			writeError(ctx, xhttp.StatusBadRequest, "Farmer with this email already exists")
			return
		}
		writeServiceError(ctx, err)
		return
	}

	writeJSON(ctx, xhttp.StatusCreated, messageResponse{
		Message: "Farmer registered successfully",
		Data:    created,
	})
}

func (h *FarmerHandler) GetProfile(ctx *xhttp.RequestCtx) {
	id, err := pathParamInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid farmer id")
		return
	}

	farmer, err := h.svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrFarmerNotFound) {
			writeError(ctx, xhttp.StatusNotFound, "Farmer not found")
			return
		}
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, farmer)
}

func (h *FarmerHandler) ListProfiles(ctx *xhttp.RequestCtx) {
	farmers, err := h.svc.List(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if farmers == nil {
		farmers = []*model.Farmer{}
	}
	writeJSON(ctx, xhttp.StatusOK, farmers)
}

func (h *FarmerHandler) UpdateProfile(ctx *xhttp.RequestCtx) {
	id, err := pathParamInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid farmer id")
		return
	}

	var farmer model.Farmer
	if err := readJSON(ctx, &farmer); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	updated, err := h.svc.Update(ctx, id, &farmer)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFarmerNotFound):
			writeError(ctx, xhttp.StatusNotFound, "Farmer not found")
		case errors.Is(err, services.ErrDuplicateEmail):
			writeError(ctx, xhttp.StatusBadRequest, "Farmer with this email already exists")
		default:
			writeServiceError(ctx, err)
		}
		return
	}

	writeJSON(ctx, xhttp.StatusOK, messageResponse{
		Message: "Profile updated successfully",
		Data:    updated,
	})
}

func (h *FarmerHandler) DeleteProfile(ctx *xhttp.RequestCtx) {
	id, err := pathParamInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid farmer id")
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		if errors.Is(err, services.ErrFarmerNotFound) {
			writeError(ctx, xhttp.StatusNotFound, "Farmer not found")
			return
		}
		writeServiceError(ctx, err)
		return
	}

	writeJSON(ctx, xhttp.StatusOK, messageResponse{
		Message: "Farmer profile deleted successfully",
	})
}

package handlers

import (
	"context"

	"github.com/fasthttp/router"

	"github.com/agrilink/agrilink/internal/model"
	xhttp "github.com/agrilink/agrilink/pkg/http"
)

type FeedbackService interface {
	Create(ctx context.Context, feedback *model.Feedback) (*model.Feedback, error)
	List(ctx context.Context) ([]*model.Feedback, error)
	AverageRating(ctx context.Context) (*model.RatingSummary, error)
}

type FeedbackHandler struct {
	svc FeedbackService
}

func NewFeedbackHandler(svc FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

func RegisterFeedbackRoutes(e *router.Group, h *FeedbackHandler) {
	e.POST("/", h.SubmitFeedback)
	e.GET("/", h.ListFeedback)
	e.GET("/average-rating", h.GetAverageRating)
}

// feedbackEnvelope keeps the success flag the admin dashboard checks.
type feedbackEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func (h *FeedbackHandler) SubmitFeedback(ctx *xhttp.RequestCtx) {
	var feedback model.Feedback
	if err := readJSON(ctx, &feedback); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	created, err := h.svc.Create(ctx, &feedback)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	writeJSON(ctx, xhttp.StatusCreated, feedbackEnvelope{
		Success: true,
		Message: "Thank you for your feedback!",
		Data:    created,
	})
}

func (h *FeedbackHandler) ListFeedback(ctx *xhttp.RequestCtx) {
	items, err := h.svc.List(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if items == nil {
		items = []*model.Feedback{}
	}
	count := len(items)
	writeJSON(ctx, xhttp.StatusOK, feedbackEnvelope{
		Success: true,
		Count:   &count,
		Data:    items,
	})
}

func (h *FeedbackHandler) GetAverageRating(ctx *xhttp.RequestCtx) {
	summary, err := h.svc.AverageRating(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, feedbackEnvelope{
		Success: true,
		Data:    summary,
	})
}

package handlers

import (
	"github.com/fasthttp/router"

	xhttp "github.com/agrilink/agrilink/pkg/http"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func RegisterHealthRoutes(r *router.Router, h *HealthHandler) {
	r.GET("/health", h.GetHealth)
}

func (h *HealthHandler) GetHealth(ctx *xhttp.RequestCtx) {
	ctx.Response.SetBodyString("success")
}

package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/agrilink/agrilink/internal/model"
	xhttp "github.com/agrilink/agrilink/pkg/http"
	"github.com/agrilink/agrilink/pkg/logger"
)

// messageResponse is the confirmation envelope used by mutating routes.
type messageResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	return json.Unmarshal(ctx.PostBody(), dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		logger.Error("response marshal failed", "error", err)
		ctx.Response.SetStatusCode(xhttp.StatusInternalServerError)
		return
	}
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

// writeError emits the {"message": ...} shape every error response uses.
func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"message": msg})
}

// writeServiceError maps a service failure onto the wire. Validation
// errors keep their field-keyed messages; anything unrecognized becomes
// a generic 500 with no detail leakage.
func writeServiceError(ctx *xhttp.RequestCtx, err error) {
	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(ctx, xhttp.StatusBadRequest, map[string]any{
			"message": "Validation failed",
			"errors":  vErr.Fields,
		})
		return
	}

	logger.Error("request failed", "error", err)
	writeError(ctx, xhttp.StatusInternalServerError, "Internal server error")
}

func pathParam(ctx *xhttp.RequestCtx, name string) string {
	if v, ok := ctx.UserValue(name).(string); ok {
		return v
	}
	return ""
}

func pathParamInt64(ctx *xhttp.RequestCtx, name string) (int64, error) {
	return strconv.ParseInt(pathParam(ctx, name), 10, 64)
}

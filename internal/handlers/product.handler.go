package handlers

import (
	"context"
	"errors"

	"github.com/fasthttp/router"

	"github.com/agrilink/agrilink/internal/model"
	"github.com/agrilink/agrilink/internal/services"
	xhttp "github.com/agrilink/agrilink/pkg/http"
)

type ProductService interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
	Update(ctx context.Context, id int64, product *model.Product) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
}

type ProductHandler struct {
	svc ProductService
}

func NewProductHandler(svc ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func RegisterProductRoutes(e *router.Group, h *ProductHandler) {
	e.POST("/create-products", h.CreateProduct)
	e.GET("/get-products", h.ListProducts)
	e.PUT("/update-products/{id}", h.UpdateProduct)
	e.DELETE("/delete-products/{id}", h.DeleteProduct)
}

func (h *ProductHandler) CreateProduct(ctx *xhttp.RequestCtx) {
	var product model.Product
	if err := readJSON(ctx, &product); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	created, err := h.svc.Create(ctx, &product)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	writeJSON(ctx, xhttp.StatusCreated, messageResponse{
		Message: "Product created successfully",
		Data:    created,
	})
}

func (h *ProductHandler) ListProducts(ctx *xhttp.RequestCtx) {
	products, err := h.svc.List(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if products == nil {
		products = []*model.Product{}
	}
	writeJSON(ctx, xhttp.StatusOK, products)
}

func (h *ProductHandler) UpdateProduct(ctx *xhttp.RequestCtx) {
	id, err := pathParamInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid product id")
		return
	}

	var product model.Product
	if err := readJSON(ctx, &product); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	updated, err := h.svc.Update(ctx, id, &product)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			writeError(ctx, xhttp.StatusNotFound, "Product not found")
			return
		}
		writeServiceError(ctx, err)
		return
	}

	writeJSON(ctx, xhttp.StatusOK, messageResponse{
		Message: "Product updated successfully",
		Data:    updated,
	})
}

func (h *ProductHandler) DeleteProduct(ctx *xhttp.RequestCtx) {
	id, err := pathParamInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			writeError(ctx, xhttp.StatusNotFound, "Product not found")
			return
		}
		writeServiceError(ctx, err)
		return
	}

	writeJSON(ctx, xhttp.StatusOK, messageResponse{
		Message: "Product deleted successfully",
	})
}

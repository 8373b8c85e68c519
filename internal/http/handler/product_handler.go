package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sandeepkv93/product-catalog-api/internal/http/response"
	"github.com/sandeepkv93/product-catalog-api/internal/observability"
	"github.com/sandeepkv93/product-catalog-api/internal/repository"
	"github.com/sandeepkv93/product-catalog-api/internal/service"
)

type ProductHandler struct {
	svc service.ProductService
}

func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to list products", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, items)
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	productID, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", nil)
		return
	}

	product, err := h.svc.GetByID(r.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to load product", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, product)
}

// Create ignores any client-supplied id; the store assigns one. The response
// carries a Location header addressing the new resource.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name  string          `json:"name"`
		Price decimal.Decimal `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	created, err := h.svc.Create(r.Context(), service.CreateProductInput{
		Name:  body.Name,
		Price: body.Price,
	})
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to create product", nil)
		return
	}

	observability.Audit(r, "product.create",
		"product_id", strconv.FormatUint(uint64(created.ID), 10),
		"name", created.Name,
	)
	w.Header().Set("Location", fmt.Sprintf("/api/v1/products/%d", created.ID))
	response.JSON(w, r, http.StatusCreated, created)
}

// Update replaces the whole record. A payload id that differs from the path id
// is rejected before the store is touched; a replace that races a concurrent
// delete surfaces as 404, any other write conflict propagates as fatal.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	productID, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", nil)
		return
	}
	var body struct {
		ID    uint            `json:"id"`
		Name  string          `json:"name"`
		Price decimal.Decimal `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	err = h.svc.Replace(r.Context(), productID, service.ReplaceProductInput{
		ID:    body.ID,
		Name:  body.Name,
		Price: body.Price,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductIDMismatch):
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
			return
		case errors.Is(err, repository.ErrProductNotFound):
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
			return
		default:
			response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to update product", nil)
			return
		}
	}

	observability.Audit(r, "product.update",
		"product_id", strconv.FormatUint(uint64(productID), 10),
	)
	response.NoContent(w)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", nil)
		return
	}

	if err := h.svc.DeleteByID(r.Context(), productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to delete product", nil)
		return
	}

	observability.Audit(r, "product.delete",
		"product_id", strconv.FormatUint(uint64(productID), 10),
	)
	response.NoContent(w)
}

func parsePathID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse id %q: %w", raw, err)
	}
	return uint(id), nil
}

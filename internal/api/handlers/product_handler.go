package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/edenniyi/shopstack-be/internal/auth"
	"github.com/edenniyi/shopstack-be/internal/models"
	"github.com/edenniyi/shopstack-be/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  services.ProductServiceProvider
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service services.ProductServiceProvider) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// ProductPayload defines the structure for create and update requests.
// Price is a pointer so an explicit zero survives the required check.
type ProductPayload struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required"`
}

func (h *ProductHandler) decodePayload(w http.ResponseWriter, r *http.Request) (ProductPayload, bool) {
	var payload ProductPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return payload, false
	}
	if err := h.validate.Struct(payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "name, description and price are required")
		return payload, false
	}
	return payload, true
}

func actingUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		log.Error().Msg("No user ID in request context")
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return "", false
	}
	return userID, true
}

// Create handles new product creation for the authenticated user.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	product, err := h.service.CreateProduct(r.Context(), userID, payload.Name, payload.Description, *payload.Price)
	if err != nil {
		if !errors.Is(err, models.ErrUserNotFound) {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to create product")
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"product": product,
	})
}

// List returns every product owned by the authenticated user.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	products, err := h.service.ListProducts(r.Context(), userID)
	if err != nil {
		if !errors.Is(err, models.ErrUserNotFound) {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to list products")
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"products": products,
	})
}

// Update replaces a product's name, description and price, provided the
// authenticated user owns it.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	product, err := h.service.UpdateProduct(r.Context(), id, userID, payload.Name, payload.Description, *payload.Price)
	if err != nil {
		if !errors.Is(err, models.ErrUserNotFound) &&
			!errors.Is(err, models.ErrProductNotFound) &&
			!errors.Is(err, models.ErrForbidden) {
			log.Error().Err(err).Str("product_id", id).Msg("Failed to update product")
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"updatedProduct": product,
	})
}

// Delete removes a product owned by the authenticated user and returns the
// deleted row. A cross-owner attempt answers 404 and leaves the row alone.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	product, err := h.service.DeleteProduct(r.Context(), id, userID)
	if err != nil {
		if !errors.Is(err, models.ErrUserNotFound) && !errors.Is(err, models.ErrProductNotFound) {
			log.Error().Err(err).Str("product_id", id).Msg("Failed to delete product")
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"product": product,
	})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/edenniyi/shopstack-be/internal/auth"
	"github.com/edenniyi/shopstack-be/internal/models"
	"github.com/edenniyi/shopstack-be/internal/services"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	service  services.UserServiceProvider
	tokens   *auth.TokenService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, tokens *auth.TokenService) *UserHandler {
	return &UserHandler{
		service:  service,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// RegisterPayload defines the structure for signup requests.
type RegisterPayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Create handles new user signup, answering with the stored user and a
// fresh bearer token in both the body and the Authorization header.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	user, err := h.service.CreateUser(r.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		if !errors.Is(err, models.ErrEmailTaken) {
			log.Error().Err(err).Str("email", payload.Email).Msg("Failed to create user")
		}
		respondServiceError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue token")
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

// Login handles user authentication and token issuance.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.service.AuthenticateUser(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
		} else {
			log.Error().Err(err).Str("email", payload.Email).Msg("Failed to authenticate user")
		}
		respondServiceError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue token")
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

// Logout instructs the client to drop its credential. Tokens are stateless,
// so there is nothing to revoke server-side.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Authorization", "Bearer ")
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logout successful",
	})
}

// GetMe returns the authenticated user's id, name and email. The password
// hash is never part of the projection.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		log.Error().Msg("No user ID in request context")
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	user, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			// The account was removed after the token was issued; answer
			// with a null user rather than an error.
			respondJSON(w, http.StatusOK, map[string]any{"success": true, "user": nil})
			return
		}
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch user")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user": map[string]any{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

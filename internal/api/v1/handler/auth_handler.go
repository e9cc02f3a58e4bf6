package handler

import (
	"net/http"

	"seocontrol/internal/api/v1/dto"
	"seocontrol/internal/api/v1/respond"
	"seocontrol/internal/service"
	"seocontrol/internal/validation"

	"github.com/rs/zerolog"
)

const signupMessage = "User created successfully. Please check your email to confirm your account."

// AuthHandler handles signup
type AuthHandler struct {
	authService service.AuthService
	validate    *validation.Validator
	logger      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, v *validation.Validator, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, validate: v, logger: logger.With().Str("handler", "AuthHandler").Logger()}
}

// RegisterRoutes mounts the public auth routes
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux, limitMw Middleware) {
	mux.Handle("POST /api/auth/signup", limitMw(http.HandlerFunc(h.signup)))
}

// signup godoc
// @Summary Sign up
// @Description Registers a new account with the auth provider. A confirmation email is sent.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "Signup request"
// @Success 200 {object} dto.SignupResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed or rejected by the auth provider"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/signup [post]
func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	// 1. Decode and validate the request body
	var req dto.SignupRequest
	if err := h.validate.DecodeAndValidate(r, &req); err != nil {
		respond.FromError(w, h.logger, err, respond.MsgInternal)
		return
	}

	// 2. Register with the auth provider
	res, err := h.authService.SignUp(r.Context(), service.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respond.FromError(w, h.logger, err, respond.MsgInternal)
		return
	}

	// 3. Return response
	respond.JSON(w, http.StatusOK, dto.SignupResponse{
		Message: signupMessage,
		User:    dto.SignupUserDTO{ID: res.UserID, Name: res.Name, Email: res.Email},
	})
}

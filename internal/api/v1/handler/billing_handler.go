package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"seocontrol/internal/api/v1/dto"
	"seocontrol/internal/api/v1/respond"
	"seocontrol/internal/middleware"
	"seocontrol/internal/service"
	"seocontrol/internal/validation"

	"github.com/rs/zerolog"
)

// Stripe never sends webhook payloads larger than this.
const maxWebhookBytes = 65536

// BillingService is the part of *service.StripeService the handler uses.
type BillingService interface {
	CreateCheckoutSession(ctx context.Context, plan, userID string) (string, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// BillingHandler handles checkout and Stripe webhook endpoints
type BillingHandler struct {
	billing  BillingService
	validate *validation.Validator
	logger   zerolog.Logger
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(billing BillingService, v *validation.Validator, logger zerolog.Logger) *BillingHandler {
	return &BillingHandler{billing: billing, validate: v, logger: logger.With().Str("handler", "BillingHandler").Logger()}
}

// RegisterRoutes mounts checkout and webhook routes. identityMw may attach a
// session but must not require one.
func (h *BillingHandler) RegisterRoutes(mux *http.ServeMux, limitMw, identityMw Middleware) {
	mux.Handle("POST /api/checkout", limitMw(identityMw(http.HandlerFunc(h.checkout))))
	mux.HandleFunc("POST /api/webhooks/stripe", h.webhook)
}

// checkout godoc
// @Summary Start checkout
// @Description Creates a hosted subscription checkout session for a plan.
// @Tags billing
// @Accept json
// @Produce json
// @Param body body dto.CheckoutRequest true "Plan: Free, Pro or Enterprise"
// @Success 200 {object} dto.CheckoutResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid plan"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse "Failed to create checkout session"
// @Router /checkout [post]
func (h *BillingHandler) checkout(w http.ResponseWriter, r *http.Request) {
	// 1. Decode and validate the plan
	var req dto.CheckoutRequest
	if err := h.validate.DecodeAndValidate(r, &req); err != nil {
		respond.FromError(w, h.logger, err, "Failed to create checkout session")
		return
	}

	// 2. Attach the caller when signed in
	userID := ""
	if id, ok := middleware.IdentityFrom(r.Context()); ok {
		userID = id.UserID
	}

	// 3. Create the hosted session
	url, err := h.billing.CreateCheckoutSession(r.Context(), req.Plan, userID)
	if err != nil {
		respond.FromError(w, h.logger, err, "Failed to create checkout session")
		return
	}

	respond.JSON(w, http.StatusOK, dto.CheckoutResponse{URL: url})
}

// webhook godoc
// @Summary Stripe webhook
// @Description Receives Stripe events. Completed checkouts update the buyer's plan; deleted subscriptions reset it to FREE.
// @Tags billing
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 400 {object} dto.ErrorResponse "Invalid signature"
// @Failure 500 {object} dto.ErrorResponse "Failed to process webhook"
// @Router /webhooks/stripe [post]
func (h *BillingHandler) webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read Stripe webhook payload")
		respond.Error(w, http.StatusBadRequest, "Failed to read payload")
		return
	}

	err = h.billing.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if errors.Is(err, service.ErrInvalidSignature) {
		respond.Error(w, http.StatusBadRequest, "Invalid signature")
		return
	}
	if err != nil {
		respond.FromError(w, h.logger, err, "Failed to process webhook")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"received": true})
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"seocontrol/internal/config"
	"seocontrol/internal/model"
	"seocontrol/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

// ErrInvalidSignature is returned for webhook payloads that fail verification.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// CheckoutProvider creates hosted checkout sessions.
type CheckoutProvider interface {
	NewCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type stripeCheckout struct{}

// NewStripeCheckout sets the Stripe API key and returns a CheckoutProvider
// that talks to Stripe.
func NewStripeCheckout(secretKey string) CheckoutProvider {
	stripe.Key = secretKey
	return stripeCheckout{}
}

func (stripeCheckout) NewCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return checkoutsession.New(params)
}

// StripeService manages Stripe checkout and the plan updates that follow it.
type StripeService struct {
	cfg         *config.Config
	checkout    CheckoutProvider
	profileRepo repository.ProfileRepository
	logger      zerolog.Logger
}

// NewStripeService returns a StripeService with a scoped logger.
func NewStripeService(cfg *config.Config, checkout CheckoutProvider, profileRepo repository.ProfileRepository, logger zerolog.Logger) *StripeService {
	lg := logger.With().Str("service", "StripeService").Logger()
	return &StripeService{cfg: cfg, checkout: checkout, profileRepo: profileRepo, logger: lg}
}

// priceForPlan maps a checkout plan name to its configured Stripe price.
func (s *StripeService) priceForPlan(plan string) string {
	switch plan {
	case "Free":
		return s.cfg.StripePriceFree
	case "Pro":
		return s.cfg.StripePricePro
	case "Enterprise":
		return s.cfg.StripePriceEnterprise
	default:
		return ""
	}
}

// planForPrice maps a configured Stripe price back to the stored plan.
func (s *StripeService) planForPrice(priceID string) (model.Plan, bool) {
	switch {
	case priceID == "":
		return "", false
	case priceID == s.cfg.StripePriceFree:
		return model.PlanFree, true
	case priceID == s.cfg.StripePricePro:
		return model.PlanPro, true
	case priceID == s.cfg.StripePriceEnterprise:
		return model.PlanEnterprise, true
	default:
		return "", false
	}
}

// CreateCheckoutSession creates a subscription checkout session for plan and
// returns its hosted URL. userID is optional; when set it is attached to the
// session so the webhook can update the right profile.
func (s *StripeService) CreateCheckoutSession(ctx context.Context, plan, userID string) (string, error) {
	priceID := s.priceForPlan(plan)
	if priceID == "" {
		s.logger.Warn().Str("plan", plan).Msg("No Stripe price configured for plan")
		return "", &ProviderError{Message: "Invalid plan"}
	}

	metadata := map[string]string{"price_id": priceID}
	if userID != "" {
		metadata["user_id"] = userID
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          []*stripe.CheckoutSessionLineItemParams{{Price: stripe.String(priceID), Quantity: stripe.Int64(1)}},
		Mode:               stripe.String(stripe.CheckoutSessionModeSubscription),
		SuccessURL:         stripe.String(s.cfg.PublicURL + "/billing?success=true"),
		CancelURL:          stripe.String(s.cfg.PublicURL + "/billing?canceled=true"),
		Metadata:           metadata,
	}
	params.Context = ctx
	if userID != "" {
		params.ClientReferenceID = stripe.String(userID)
	}

	sess, err := s.checkout.NewCheckoutSession(params)
	if err != nil {
		s.logger.Error().Err(err).Str("plan", plan).Msg("Failed to create Stripe checkout session")
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.URL, nil
}

// HandleWebhook verifies and applies a Stripe event. Without a configured
// webhook secret every event is rejected.
func (s *StripeService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.cfg.StripeWebhookSecret == "" {
		s.logger.Error().Msg("Stripe webhook received but STRIPE_WEBHOOK_SECRET is not set")
		return ErrInvalidSignature
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.cfg.StripeWebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		s.logger.Error().Err(err).Msg("Signature verification failed for Stripe webhook")
		return ErrInvalidSignature
	}
	s.logger.Info().Str("event_type", string(event.Type)).Msg("Stripe webhook received")

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
			return &ProviderError{Message: "Invalid checkout session data"}
		}
		return s.applyCompletedCheckout(ctx, &cs)

	case stripe.EventTypeCustomerSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return &ProviderError{Message: "Invalid subscription data"}
		}
		if sub.Customer == nil || sub.Customer.ID == "" {
			s.logger.Warn().Str("subscription_id", sub.ID).Msg("Deleted subscription has no customer")
			return nil
		}
		err := s.profileRepo.UpdatePlanByCustomer(ctx, sub.Customer.ID, model.PlanFree)
		if errors.Is(err, repository.ErrNoRows) {
			s.logger.Warn().Str("stripe_customer_id", sub.Customer.ID).Msg("No profile for cancelled subscription")
			return nil
		}
		if err != nil {
			return fmt.Errorf("downgrade customer %s: %w", sub.Customer.ID, err)
		}
		s.logger.Info().Str("stripe_customer_id", sub.Customer.ID).Msg("Subscription cancelled, plan reset to FREE")
		return nil

	default:
		s.logger.Debug().Str("event_type", string(event.Type)).Msg("Ignoring Stripe event")
		return nil
	}
}

func (s *StripeService) applyCompletedCheckout(ctx context.Context, cs *stripe.CheckoutSession) error {
	userID := cs.ClientReferenceID
	if userID == "" {
		userID = cs.Metadata["user_id"]
	}
	if userID == "" {
		s.logger.Info().Str("session_id", cs.ID).Msg("Anonymous checkout completed; no profile to update")
		return nil
	}

	plan, ok := s.planForPrice(cs.Metadata["price_id"])
	if !ok {
		s.logger.Warn().Str("session_id", cs.ID).Str("price_id", cs.Metadata["price_id"]).Msg("Unknown price on completed checkout")
		return nil
	}

	var customerID *string
	if cs.Customer != nil && cs.Customer.ID != "" {
		customerID = &cs.Customer.ID
	}

	err := s.profileRepo.UpdatePlan(ctx, userID, plan, customerID)
	if errors.Is(err, repository.ErrNoRows) {
		s.logger.Warn().Str("user_id", userID).Msg("No profile for completed checkout")
		return nil
	}
	if err != nil {
		return fmt.Errorf("update plan for user %s: %w", userID, err)
	}
	s.logger.Info().Str("user_id", userID).Str("plan", string(plan)).Msg("Plan updated from checkout")
	return nil
}

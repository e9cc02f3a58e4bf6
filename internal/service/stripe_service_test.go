package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"seocontrol/internal/config"
	"seocontrol/internal/model"
	"seocontrol/internal/repository/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const testWebhookSecret = "whsec_test_secret"

type fakeCheckout struct {
	params *stripe.CheckoutSessionParams
	err    error
}

func (f *fakeCheckout) NewCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/pay/cs_test_1"}, nil
}

func testStripeConfig() *config.Config {
	return &config.Config{
		PublicURL:             "https://app.example.com",
		StripeWebhookSecret:   testWebhookSecret,
		StripePriceFree:       "price_free",
		StripePricePro:        "price_pro",
		StripePriceEnterprise: "price_ent",
	}
}

func TestStripeService_CreateCheckoutSession(t *testing.T) {
	checkout := &fakeCheckout{}
	svc := NewStripeService(testStripeConfig(), checkout, repotest.New().ProfileRepo(), testLogger())

	ctx := context.Background()
	url, err := svc.CreateCheckoutSession(ctx, "Pro", "")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", url)

	p := checkout.params
	require.Len(t, p.LineItems, 1)
	assert.Equal(t, "price_pro", *p.LineItems[0].Price)
	assert.Equal(t, int64(1), *p.LineItems[0].Quantity)
	assert.Equal(t, string(stripe.CheckoutSessionModeSubscription), *p.Mode)
	assert.Equal(t, "https://app.example.com/billing?success=true", *p.SuccessURL)
	assert.Equal(t, "https://app.example.com/billing?canceled=true", *p.CancelURL)
	assert.Nil(t, p.ClientReferenceID)
	assert.NotContains(t, p.Metadata, "user_id")
	assert.Equal(t, ctx, p.Context)
}

func TestStripeService_CheckoutCarriesRequestContext(t *testing.T) {
	checkout := &fakeCheckout{}
	svc := NewStripeService(testStripeConfig(), checkout, repotest.New().ProfileRepo(), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, err := svc.CreateCheckoutSession(ctx, "Pro", "user-1")
	require.NoError(t, err)
	assert.Equal(t, ctx, checkout.params.Context)
}

func TestStripeService_CheckoutAttachesSignedInUser(t *testing.T) {
	checkout := &fakeCheckout{}
	svc := NewStripeService(testStripeConfig(), checkout, repotest.New().ProfileRepo(), testLogger())

	_, err := svc.CreateCheckoutSession(context.Background(), "Enterprise", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", *checkout.params.ClientReferenceID)
	assert.Equal(t, "user-1", checkout.params.Metadata["user_id"])
	assert.Equal(t, "price_ent", checkout.params.Metadata["price_id"])
}

func TestStripeService_CheckoutUnconfiguredPlan(t *testing.T) {
	cfg := testStripeConfig()
	cfg.StripePriceFree = ""
	checkout := &fakeCheckout{}
	svc := NewStripeService(cfg, checkout, repotest.New().ProfileRepo(), testLogger())

	_, err := svc.CreateCheckoutSession(context.Background(), "Free", "")
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "Invalid plan", perr.Message)
	assert.Nil(t, checkout.params)
}

func TestStripeService_CheckoutProviderFailure(t *testing.T) {
	svc := NewStripeService(testStripeConfig(), &fakeCheckout{err: errors.New("stripe down")}, repotest.New().ProfileRepo(), testLogger())

	_, err := svc.CreateCheckoutSession(context.Background(), "Pro", "")
	require.Error(t, err)
	var perr *ProviderError
	assert.False(t, errors.As(err, &perr))
}

func signedEvent(t *testing.T, eventType string, object string) ([]byte, string) {
	t.Helper()
	payload := []byte(fmt.Sprintf(`{"id":"evt_1","object":"event","type":%q,"data":{"object":%s}}`, eventType, object))
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    testWebhookSecret,
		Timestamp: time.Now(),
	})
	return signed.Payload, signed.Header
}

func TestStripeService_WebhookCheckoutCompleted(t *testing.T) {
	store := repotest.New()
	store.AddProfile("user-1", "u@example.com", model.RoleUser)
	svc := NewStripeService(testStripeConfig(), &fakeCheckout{}, store.ProfileRepo(), testLogger())

	payload, sig := signedEvent(t, "checkout.session.completed",
		`{"id":"cs_1","object":"checkout.session","client_reference_id":"user-1","customer":"cus_9","metadata":{"price_id":"price_pro","user_id":"user-1"}}`)
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, sig))

	p, _ := store.Profile("user-1")
	assert.Equal(t, model.PlanPro, p.Plan)
	require.NotNil(t, p.StripeCustomerID)
	assert.Equal(t, "cus_9", *p.StripeCustomerID)

	payload, sig = signedEvent(t, "customer.subscription.deleted",
		`{"id":"sub_1","object":"subscription","customer":"cus_9"}`)
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, sig))

	p, _ = store.Profile("user-1")
	assert.Equal(t, model.PlanFree, p.Plan)
}

func TestStripeService_WebhookAnonymousCheckoutIgnored(t *testing.T) {
	store := repotest.New()
	svc := NewStripeService(testStripeConfig(), &fakeCheckout{}, store.ProfileRepo(), testLogger())

	payload, sig := signedEvent(t, "checkout.session.completed",
		`{"id":"cs_2","object":"checkout.session","metadata":{"price_id":"price_pro"}}`)
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, sig))
	assert.Zero(t, store.Calls())
}

func TestStripeService_WebhookBadSignature(t *testing.T) {
	svc := NewStripeService(testStripeConfig(), &fakeCheckout{}, repotest.New().ProfileRepo(), testLogger())

	payload, _ := signedEvent(t, "checkout.session.completed", `{"id":"cs_3"}`)
	err := svc.HandleWebhook(context.Background(), payload, "t=1,v1=deadbeef")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestStripeService_WebhookUnknownCustomerAcknowledged(t *testing.T) {
	store := repotest.New()
	svc := NewStripeService(testStripeConfig(), &fakeCheckout{}, store.ProfileRepo(), testLogger())

	payload, sig := signedEvent(t, "customer.subscription.deleted",
		`{"id":"sub_2","object":"subscription","customer":"cus_unknown"}`)
	assert.NoError(t, svc.HandleWebhook(context.Background(), payload, sig))

	payload, sig = signedEvent(t, "invoice.paid", `{"id":"in_1","object":"invoice"}`)
	assert.NoError(t, svc.HandleWebhook(context.Background(), payload, sig))
}

func TestStripeService_WebhookRejectedWithoutSecret(t *testing.T) {
	store := repotest.New()
	store.AddProfile("user-1", "u@example.com", model.RoleUser)
	cfg := testStripeConfig()
	cfg.StripeWebhookSecret = ""
	svc := NewStripeService(cfg, &fakeCheckout{}, store.ProfileRepo(), testLogger())

	// A payload signed with an empty key must not be accepted.
	payload := []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed","data":{"object":` +
		`{"id":"cs_1","object":"checkout.session","client_reference_id":"user-1","metadata":{"price_id":"price_pro"}}}}`)
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload, Secret: "", Timestamp: time.Now()})

	err := svc.HandleWebhook(context.Background(), signed.Payload, signed.Header)
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Zero(t, store.Calls())

	p, _ := store.Profile("user-1")
	assert.Equal(t, model.PlanFree, p.Plan)
}

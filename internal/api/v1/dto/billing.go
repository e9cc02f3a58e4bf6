package dto

// CheckoutRequest is the body of POST /api/checkout.
type CheckoutRequest struct {
	Plan string `json:"plan" validate:"required,oneof=Free Pro Enterprise" msg:"Invalid plan"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

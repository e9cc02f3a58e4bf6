package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type supabaseAuthClient struct {
	baseURL string
	anonKey string
	client  *http.Client
	logger  zerolog.Logger
}

// NewSupabaseAuthClient returns an AuthProvider backed by the Supabase Auth
// (GoTrue) REST API at baseURL.
func NewSupabaseAuthClient(baseURL, anonKey string, logger zerolog.Logger) AuthProvider {
	return &supabaseAuthClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger.With().Str("service", "SupabaseAuthClient").Logger(),
	}
}

type supabaseSignUpRequest struct {
	Email    string            `json:"email"`
	Password string            `json:"password"`
	Data     map[string]string `json:"data,omitempty"`
}

type supabaseUser struct {
	ID string `json:"id"`
}

// supabaseSignUpResponse covers both response shapes: a bare user when email
// confirmation is on, and a session wrapping the user when it is off.
type supabaseSignUpResponse struct {
	ID   string        `json:"id"`
	User *supabaseUser `json:"user"`
}

type supabaseErrorResponse struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
	Error            string `json:"error"`
}

func (e supabaseErrorResponse) text() string {
	for _, s := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

func (c *supabaseAuthClient) SignUp(ctx context.Context, in ProviderSignUpRequest) (string, error) {
	reqBody := supabaseSignUpRequest{
		Email:    in.Email,
		Password: in.Password,
		Data:     map[string]string{"full_name": in.FullName},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request body: %w", err)
	}

	endpoint := c.baseURL + "/auth/v1/signup"
	if in.RedirectTo != "" {
		endpoint += "?redirect_to=" + url.QueryEscape(in.RedirectTo)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("making request to auth provider: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn().Err(closeErr).Msg("Failed to close response body")
		}
	}()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading auth provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp supabaseErrorResponse
		_ = json.Unmarshal(bodyBytes, &errResp)
		msg := errResp.text()
		c.logger.Error().
			Int("status_code", resp.StatusCode).
			Str("error_body", string(bodyBytes)).
			Msg("Auth provider rejected signup")
		if resp.StatusCode >= 500 || msg == "" {
			return "", fmt.Errorf("auth provider returned status %d", resp.StatusCode)
		}
		return "", &ProviderError{Message: msg, Status: resp.StatusCode}
	}

	var out supabaseSignUpResponse
	if err := json.Unmarshal(bodyBytes, &out); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if out.User != nil && out.User.ID != "" {
		return out.User.ID, nil
	}
	return out.ID, nil
}

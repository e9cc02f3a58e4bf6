package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	// Postgres (Supabase) connection string
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true"`

	// Supabase auth settings
	SupabaseURL       string `envconfig:"SUPABASE_URL" required:"true"`
	SupabaseAnonKey   string `envconfig:"SUPABASE_ANON_KEY" required:"true"`
	JWTSecret         string `envconfig:"SUPABASE_JWT_SECRET" required:"true"`
	SessionCookieName string `envconfig:"SESSION_COOKIE_NAME" default:"sb-access-token"`
	SignupRedirectURL string `envconfig:"SIGNUP_REDIRECT_URL"`

	// Public base URL of the web app, used for redirect targets
	PublicURL string `envconfig:"PUBLIC_URL" default:"http://localhost:3000"`

	// Stripe settings
	StripeSecretKey       string `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	StripeWebhookSecret   string `envconfig:"STRIPE_WEBHOOK_SECRET"`
	StripePriceFree       string `envconfig:"STRIPE_FREE_PRICE_ID"`
	StripePricePro        string `envconfig:"STRIPE_PRO_PRICE_ID"`
	StripePriceEnterprise string `envconfig:"STRIPE_ENTERPRISE_PRICE_ID"`

	// Role values compared by the API gate and by the web page guard.
	// The defaults differ: stored roles are upper case, the web app checks lower case.
	AdminRole     string `envconfig:"ADMIN_ROLE" default:"ADMIN"`
	AdminPageRole string `envconfig:"ADMIN_PAGE_ROLE" default:"admin"`

	// Directory holding the built web UI. Page routes are disabled when empty.
	WebDir string `envconfig:"WEB_DIR"`

	// Rate limiting for public write endpoints
	RedisURL           string `envconfig:"REDIS_URL"`
	RateLimitPerMinute int    `envconfig:"RATE_LIMIT_PER_MINUTE" default:"20"`

	// Proxies whose X-Forwarded-For header is trusted for the client address.
	// Bare IPs are accepted as single-host ranges.
	TrustedProxyCIDRs []string `envconfig:"TRUSTED_PROXY_CIDRS"`

	// GCP project used to resolve sm:// secret references and publish events
	GCPProjectID string `envconfig:"GCP_PROJECT_ID"`

	// Pub/Sub topic announcing newly requested reports. Publishing is disabled when empty.
	ReportTopic string `envconfig:"REPORT_TOPIC"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if _, err := ParseCIDRs(cfg.TrustedProxyCIDRs); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseCIDRs parses CIDR ranges; a bare IP becomes a /32 (or /128) range.
func ParseCIDRs(values []string) ([]*net.IPNet, error) {
	out := make([]*net.IPNet, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if !strings.Contains(v, "/") {
			ip := net.ParseIP(v)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", v)
			}
			bits := 128
			if ip.To4() != nil {
				ip = ip.To4()
				bits = 32
			}
			out = append(out, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, cidr, err := net.ParseCIDR(v)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", v, err)
		}
		out = append(out, cidr)
	}
	return out, nil
}

// SignupRedirect returns the URL the confirmation email should lead to.
func (c *Config) SignupRedirect() string {
	if c.SignupRedirectURL != "" {
		return c.SignupRedirectURL
	}
	return c.PublicURL + "/dashboard"
}

// IsDevelopment reports whether the app runs in local development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

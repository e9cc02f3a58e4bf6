package router

import (
	"context"
	"net/http"
	"time"

	"seocontrol/internal/api/v1/handler"
	"seocontrol/internal/api/v1/respond"
	"seocontrol/internal/config"
	"seocontrol/internal/middleware"
	"seocontrol/internal/pubsub"
	"seocontrol/internal/ratelimit"
	"seocontrol/internal/repository"
	"seocontrol/internal/service"
	"seocontrol/internal/validation"

	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Config         *config.Config
	Logger         zerolog.Logger
	Resolver       middleware.IdentityResolver
	Limiter        ratelimit.Limiter
	AuthService    service.AuthService
	SiteService    service.SiteService
	KeywordService service.KeywordService
	ReportService  service.ReportService
	ProfileService service.ProfileService
	Billing        handler.BillingService
	// Ping reports whether the database is reachable. Optional.
	Ping func(ctx context.Context) error
}

// New connects to the database and the optional Redis and Pub/Sub clients, wires every
// service and returns the HTTP handler. The returned cleanup function closes
// those connections.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (http.Handler, func(), error) {
	logger.Info().Str("environment", cfg.Environment).Msg("App environment loaded")

	// 1. Open DB connection pool
	pool, err := repository.NewPool(ctx, repository.PoolOptions{
		DSN:         cfg.DBConnectionString,
		Development: cfg.IsDevelopment(),
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := []func(){pool.Close}
	closeAll := func() {
		for i := len(cleanup) - 1; i >= 0; i-- {
			cleanup[i]()
		}
	}

	// 2. Rate limiter, shared through Redis when configured
	window := time.Minute
	var limiter ratelimit.Limiter = ratelimit.NewInMemory(window)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		client := redis.NewClient(opts)
		cleanup = append(cleanup, func() { _ = client.Close() })
		limiter = ratelimit.NewRedis(client, window, logger)
		logger.Info().Msg("Rate limiting backed by Redis")
	}

	// 3. Report events, published to Pub/Sub when a topic is configured
	var publisher pubsub.Publisher
	if cfg.ReportTopic != "" {
		pub, err := pubsub.NewPublisher(ctx, cfg.GCPProjectID)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		cleanup = append(cleanup, func() { _ = pub.Close() })
		publisher = pub
		logger.Info().Str("topic", cfg.ReportTopic).Msg("Report events enabled")
	}

	// 4. Initialize repositories & services
	profileRepo := repository.NewProfileRepo(pool)
	siteRepo := repository.NewSiteRepo(pool)
	keywordRepo := repository.NewKeywordRepo(pool)
	reportRepo := repository.NewReportRepo(pool)

	authProvider := service.NewSupabaseAuthClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, logger)
	checkout := service.NewStripeCheckout(cfg.StripeSecretKey)

	deps := Deps{
		Config:         cfg,
		Logger:         logger,
		Resolver:       middleware.NewJWTResolver(cfg.JWTSecret, cfg.SessionCookieName),
		Limiter:        limiter,
		AuthService:    service.NewAuthService(authProvider, profileRepo, cfg.SignupRedirect(), logger),
		SiteService:    service.NewSiteService(siteRepo),
		KeywordService: service.NewKeywordService(keywordRepo, siteRepo),
		ReportService:  service.NewReportService(reportRepo, siteRepo, publisher, cfg.ReportTopic, logger),
		ProfileService: service.NewProfileService(profileRepo),
		Billing:        service.NewStripeService(cfg, checkout, profileRepo, logger),
		Ping:           pool.Ping,
	}

	logger.Info().Msg("Router initialized")
	return NewHandler(deps), closeAll, nil
}

// NewHandler builds the route table and middleware chain from deps.
func NewHandler(d Deps) http.Handler {
	cfg := d.Config
	logger := d.Logger
	validate := validation.New()

	// 1. Initialize middleware
	authMw := middleware.RequireUser(d.Resolver, logger)
	adminMw := middleware.RequireRole(d.ProfileService, cfg.AdminRole, logger)
	identityMw := middleware.OptionalUser(d.Resolver)
	trustedProxies, err := config.ParseCIDRs(cfg.TrustedProxyCIDRs)
	if err != nil {
		logger.Error().Err(err).Msg("Ignoring trusted proxies; X-Forwarded-For will not be used")
		trustedProxies = nil
	}
	signupLimit := middleware.RateLimit(d.Limiter, "signup", cfg.RateLimitPerMinute, trustedProxies)
	checkoutLimit := middleware.RateLimit(d.Limiter, "checkout", cfg.RateLimitPerMinute, trustedProxies)

	// 2. Initialize handlers
	authHandler := handler.NewAuthHandler(d.AuthService, validate, logger)
	siteHandler := handler.NewSiteHandler(d.SiteService, validate, logger)
	keywordHandler := handler.NewKeywordHandler(d.KeywordService, validate, logger)
	reportHandler := handler.NewReportHandler(d.ReportService, validate, logger)
	userHandler := handler.NewUserHandler(d.ProfileService, logger)
	billingHandler := handler.NewBillingHandler(d.Billing, validate, logger)

	// 3. Create ServeMux router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", health(d.Ping))

	authHandler.RegisterRoutes(mux, signupLimit)
	siteHandler.RegisterRoutes(mux, authMw)
	keywordHandler.RegisterRoutes(mux, authMw)
	reportHandler.RegisterRoutes(mux, authMw)
	userHandler.RegisterRoutes(mux, authMw, adminMw)
	billingHandler.RegisterRoutes(mux, checkoutLimit, identityMw)

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusNotFound, "Not found")
	})

	// 4. Web pages
	registerPages(mux, cfg, d.Resolver, d.ProfileService, logger)

	// 5. Apply CORS, logging and panic recovery
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Stripe-Signature"},
		AllowCredentials: true,
	})

	// Recover sits inside the logger so recovered panics are logged with status 500.
	return middleware.LoggerMiddleware(logger)(middleware.Recover(logger)(c.Handler(mux)))
}

func health(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				respond.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

package handler

import (
	"deposit-address-service/internal/adapter/http/middleware"
	redisStore "deposit-address-service/internal/adapter/storage/redis"
	"deposit-address-service/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	DepositSvc     ports.DepositAddressService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	LookupLimit    middleware.RateLimitRule
	HealthCheckers []ports.HealthChecker
	Gatherer       prometheus.Gatherer // nil = /metrics disabled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 16))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	rl := func(c *gin.Context) { c.Next() }
	if deps.RateLimitStore != nil && deps.LookupLimit.Limit > 0 {
		rl = middleware.RateLimiter(deps.RateLimitStore, "deposit_address", deps.LookupLimit, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// --- JWT-authenticated member routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	depositHandler := NewDepositAddressHandler(deps.DepositSvc)

	account := v1.Group("/account", jwtAuth)
	{
		account.GET("/deposit_address/:currency", rl, depositHandler.Get)
	}

	return r
}

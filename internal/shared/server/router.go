package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thesminc/POCkit-sub000/internal/capability"
	"github.com/thesminc/POCkit-sub000/internal/feasibility"
	"github.com/thesminc/POCkit-sub000/internal/knowledge"
	"github.com/thesminc/POCkit-sub000/internal/requirements"
	"github.com/thesminc/POCkit-sub000/internal/scoring"
	"github.com/thesminc/POCkit-sub000/internal/shared/config"
	"github.com/thesminc/POCkit-sub000/internal/shared/metrics"
	"github.com/thesminc/POCkit-sub000/internal/shared/server/middleware"
	"github.com/thesminc/POCkit-sub000/internal/shared/server/respond"
)

// RouterDeps carries the wired handlers the router mounts.
type RouterDeps struct {
	Config              config.Config
	KnowledgeHandler    *knowledge.Handler
	RequirementsHandler *requirements.Handler
	CapabilityHandler   *capability.Handler
	ScoringHandler      *scoring.Handler
	FeasibilityHandler  *feasibility.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(rateLimits()),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	registerMeRoutes(api)
	deps.KnowledgeHandler.RegisterRoutes(api)
	deps.RequirementsHandler.RegisterRoutes(api)
	deps.CapabilityHandler.RegisterRoutes(api)
	deps.ScoringHandler.RegisterRoutes(api)
	deps.FeasibilityHandler.RegisterRoutes(api)

	r.GET("/metrics", metrics.Handler())

	return r
}

// rateLimits throttles the compute-heavy endpoints per caller. Reads and
// everything else pass through unlimited.
func rateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"EVALUATE": {Rate: 5, Burst: 20},
			"UPLOAD":   {Rate: 2, Burst: 10},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method != http.MethodPost {
				return ""
			}
			switch c.Request.URL.Path {
			case "/api/v1/recommendations", "/api/v1/feasibility", "/api/v1/feasibility/quick-check":
				return "EVALUATE"
			case "/api/v1/documents":
				return "UPLOAD"
			}
			return ""
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}

package router

import (
	"net/http"

	"ctai_backend/internal/config"
	apphttp "ctai_backend/internal/http"
	"ctai_backend/platform/httpkit"
	"ctai_backend/platform/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// New assembles the Gin engine: shared middleware, the health endpoint,
// and every module's routes under /api/v1.
func New(cfg *config.Config, log *logger.Logger, ready func() bool, modules ...apphttp.Module) *gin.Engine {
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(log))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(corsMiddleware(cfg))

	perSecond := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	limiter := httpkit.NewIPRateLimiter(perSecond, cfg.RateLimitPerMinute, log)
	engine.Use(limiter.RateLimit())

	engine.GET("/api/health", func(c *gin.Context) {
		status := gin.H{"status": "ok"}
		if ready != nil {
			status["index_ready"] = ready()
		}
		c.JSON(http.StatusOK, status)
	})

	routerCtx := &apphttp.RouterContext{
		Engine: engine,
		V1:     engine.Group("/api/v1"),
	}

	for _, module := range modules {
		module.RegisterRoutes(routerCtx)
		log.Info("module_routes_registered", "module", module.Name())
	}

	return engine
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}
	if cfg.CORSAllowAll {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	return cors.New(corsCfg)
}

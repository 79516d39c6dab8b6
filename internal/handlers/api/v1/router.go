// Package v1 serves the AGE Toolbox REST API over gin
package v1

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/age-toolbox/internal/errors"
	"github.com/KirkDiggler/age-toolbox/internal/handlers/middleware"
	"github.com/KirkDiggler/age-toolbox/internal/pkg/idgen"
)

const indexFile = "index.html"

// RouterConfig holds everything the HTTP router serves
type RouterConfig struct {
	DiceHandler  *DiceHandler
	StuntHandler *StuntHandler

	// Optional
	HealthCheck HealthCheck
	CORSOrigins []string
	StaticDir   string
	Logger      *slog.Logger
	RequestIDs  idgen.Generator
}

// Validate ensures all required handlers are present
func (c *RouterConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.DiceHandler == nil {
		vb.RequiredField("DiceHandler")
	}
	if c.StuntHandler == nil {
		vb.RequiredField("StuntHandler")
	}
	return vb.Build()
}

// NewRouter builds the gin engine with middleware, API routes and, when
// StaticDir is set, the frontend with a fallback to index.html
func NewRouter(cfg *RouterConfig) (*gin.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid router config")
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(cfg.RequestIDs),
		middleware.Logger(cfg.Logger),
		middleware.Recovery(cfg.Logger),
		middleware.CORS(cfg.CORSOrigins),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, errors.Wrap(err, "failed to set trusted proxies")
	}

	api := r.Group("/api")
	{
		api.GET("/test", Test)
		api.GET("/health", Health(cfg.HealthCheck))

		api.POST("/roll_dice", cfg.DiceHandler.RollDice)
		api.GET("/roll_history", cfg.DiceHandler.GetHistory)
		api.DELETE("/roll_history", cfg.DiceHandler.ClearHistory)

		stunts := api.Group("/stunts")
		stunts.GET("", cfg.StuntHandler.ListStunts)
		stunts.POST("", cfg.StuntHandler.CreateStunt)
		stunts.GET("/facets", cfg.StuntHandler.GetFacets)
		stunts.GET("/:id", cfg.StuntHandler.GetStunt)
		stunts.PUT("/:id", cfg.StuntHandler.ReplaceStunt)
		stunts.PATCH("/:id", cfg.StuntHandler.PatchStunt)
		stunts.DELETE("/:id", cfg.StuntHandler.DeleteStunt)
	}

	r.NoRoute(noRoute(cfg.StaticDir))

	return r, nil
}

func noRoute(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if staticDir == "" || strings.HasPrefix(path, "/api/") || path == "/api" {
			respondError(c, errors.NotFoundf("route %s %s not found", c.Request.Method, path))
			return
		}

		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			respondError(c, errors.NotFoundf("route %s %s not found", c.Request.Method, path))
			return
		}

		// filepath.Clean on a rooted path cannot climb above staticDir
		candidate := filepath.Join(staticDir, filepath.Clean("/"+path))
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			c.File(candidate)
			return
		}

		c.File(filepath.Join(staticDir, indexFile))
	}
}

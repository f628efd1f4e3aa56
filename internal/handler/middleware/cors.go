package middleware

import (
	"log/slog"
	"slices"

	"treebox/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	// The dashboard reads the CSV export filename off the response, so
	// Content-Disposition must be visible cross-origin.
	exposed := cfg.ExposeHeaders
	if !slices.Contains(exposed, "Content-Disposition") {
		exposed = append(slices.Clone(exposed), "Content-Disposition")
	}

	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    exposed,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized", "AllowOrigins", cfg.AllowOrigins)
	return cors.New(corsCfg)
}

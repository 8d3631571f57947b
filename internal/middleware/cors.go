package middleware

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"datacenter-inventory/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware builds the cors handler. A "*" origin allows every origin;
// credentials are never combined with a wildcard.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           time.Duration(cfg.MaxAge) * time.Second,
	}

	if allowsAnyOrigin(cfg) {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}

	return cors.New(corsConfig)
}

// OriginChecker applies the CORS origin list to websocket upgrades.
// Requests without an Origin header come from non-browser clients and pass.
func OriginChecker(cfg *config.CORSConfig) func(r *http.Request) bool {
	if allowsAnyOrigin(cfg) {
		return func(*http.Request) bool { return true }
	}
	allowed := make([]string, len(cfg.AllowedOrigins))
	for i, origin := range cfg.AllowedOrigins {
		allowed[i] = strings.ToLower(strings.TrimRight(origin, "/"))
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return slices.Contains(allowed, strings.ToLower(origin))
	}
}

func allowsAnyOrigin(cfg *config.CORSConfig) bool {
	return len(cfg.AllowedOrigins) == 0 || slices.Contains(cfg.AllowedOrigins, "*")
}

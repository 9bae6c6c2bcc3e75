package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/icsbenin/candidature/internal"
)

// DefaultCORSMaxAge is the default preflight cache duration.
const DefaultCORSMaxAge = 12 * time.Hour

// CORSConfig configures the CORS middleware.
// AllowOrigins is read from CORS_ALLOW_ORIGINS as a comma separated list.
type CORSConfig struct {
	// AllowOrigins is a static list of allowed origins. "*" allows any origin.
	AllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`

	// AllowMethods specifies the allowed HTTP methods.
	AllowMethods []string

	// AllowHeaders specifies the allowed request headers.
	AllowHeaders []string

	// ExposeHeaders specifies headers readable by browser scripts.
	ExposeHeaders []string

	// MaxAge specifies how long preflight responses can be cached.
	MaxAge time.Duration `env:"CORS_MAX_AGE" envDefault:"12h"`
}

// DefaultCORSConfig allows any origin to post the application form.
var DefaultCORSConfig = CORSConfig{
	AllowOrigins:  []string{"*"},
	AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
	ExposeHeaders: []string{"X-Request-ID"},
	MaxAge:        DefaultCORSMaxAge,
}

// CORSOption configures CORSConfig.
type CORSOption func(*CORSConfig)

// WithCORSConfig applies a loaded configuration; empty fields keep their defaults.
func WithCORSConfig(c CORSConfig) CORSOption {
	return func(cfg *CORSConfig) {
		if len(c.AllowOrigins) > 0 {
			cfg.AllowOrigins = c.AllowOrigins
		}
		if len(c.AllowMethods) > 0 {
			cfg.AllowMethods = c.AllowMethods
		}
		if len(c.AllowHeaders) > 0 {
			cfg.AllowHeaders = c.AllowHeaders
		}
		if len(c.ExposeHeaders) > 0 {
			cfg.ExposeHeaders = c.ExposeHeaders
		}
		if c.MaxAge > 0 {
			cfg.MaxAge = c.MaxAge
		}
	}
}

// WithAllowOrigins sets the allowed origins.
func WithAllowOrigins(origins ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowOrigins = origins
	}
}

// WithAllowHeaders sets the allowed request headers.
func WithAllowHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowHeaders = headers
	}
}

// WithMaxAge sets the preflight cache duration.
func WithMaxAge(duration time.Duration) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.MaxAge = duration
	}
}

// CORS returns middleware that handles Cross-Origin Resource Sharing.
// Preflight requests are answered with 204 and never reach the handler.
func CORS(opts ...CORSOption) internal.Middleware {
	cfg := DefaultCORSConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	origins := make([]string, 0, len(cfg.AllowOrigins))
	for _, o := range cfg.AllowOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	hasWildcard := slices.Contains(origins, "*")

	allowMethods := strings.Join(cfg.AllowMethods, ", ")
	allowHeaders := strings.Join(cfg.AllowHeaders, ", ")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ", ")
	maxAge := strconv.Itoa(int(cfg.MaxAge.Seconds()))

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			origin := c.Header("Origin")
			if origin == "" {
				return next(c)
			}

			// Disallowed origins get no CORS headers and the browser blocks the response.
			if !hasWildcard && !slices.Contains(origins, origin) {
				return next(c)
			}

			headers := c.Response().Header()
			headers.Add("Vary", "Origin")
			if hasWildcard {
				headers.Set("Access-Control-Allow-Origin", "*")
			} else {
				headers.Set("Access-Control-Allow-Origin", origin)
			}
			if exposeHeaders != "" {
				headers.Set("Access-Control-Expose-Headers", exposeHeaders)
			}

			if c.Request().Method == http.MethodOptions && c.Header("Access-Control-Request-Method") != "" {
				headers.Add("Vary", "Access-Control-Request-Method")
				headers.Add("Vary", "Access-Control-Request-Headers")
				headers.Set("Access-Control-Allow-Methods", allowMethods)
				headers.Set("Access-Control-Allow-Headers", allowHeaders)
				if cfg.MaxAge > 0 {
					headers.Set("Access-Control-Max-Age", maxAge)
				}
				return c.NoContent(http.StatusNoContent)
			}

			return next(c)
		}
	}
}

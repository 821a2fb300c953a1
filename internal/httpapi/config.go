package httpapi

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}

// Rate limiting of mutating routes (PUT/POST/DELETE). Disabled when rps <= 0.
var (
	rateLimitRPS   float64
	rateLimitBurst int
)

// SetRateLimit configures the per-client limit applied to mutating routes.
// A non-positive burst defaults to one request.
func SetRateLimit(rps float64, burst int) {
	if rps <= 0 {
		rateLimitRPS, rateLimitBurst = 0, 0
		return
	}
	if burst <= 0 {
		burst = 1
	}
	rateLimitRPS, rateLimitBurst = rps, burst
}

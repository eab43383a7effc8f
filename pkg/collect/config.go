package collect

// Config holds collection endpoint settings.
type Config struct {
	// CookieName is the signed cookie carrying the visitor id.
	CookieName string `env:"COLLECT_COOKIE_NAME" envDefault:"_gab_vid"`
	// MaxBodySize limits JSON request bodies in bytes.
	MaxBodySize int64 `env:"COLLECT_MAX_BODY_SIZE" envDefault:"65536"`
	// TrustProxyHeaders reads the client IP from proxy headers
	// (CF-Connecting-IP, X-Forwarded-For, X-Real-IP).
	TrustProxyHeaders bool `env:"COLLECT_TRUST_PROXY_HEADERS" envDefault:"false"`
}

// DefaultConfig returns default collection configuration
func DefaultConfig() Config {
	return Config{
		CookieName:  "_gab_vid",
		MaxBodySize: 64 << 10,
	}
}

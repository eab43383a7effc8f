package cookie

import (
	"net/http"
	"strings"
)

// Config is the environment form of the visitor cookie settings.
type Config struct {
	Secrets  string        `env:"COOKIE_SECRETS,required"` // comma separated; the first signs
	Path     string        `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string        `env:"COOKIE_DOMAIN"`
	MaxAge   int           `env:"COOKIE_MAX_AGE" envDefault:"63072000"` // two years, the lifetime of __utma
	Secure   bool          `env:"COOKIE_SECURE" envDefault:"true"`
	HttpOnly bool          `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"2"` // 1 default, 2 lax, 3 strict, 4 none
}

// NewFromConfig builds a Manager whose cookies carry exactly the attributes
// in cfg. An empty Path falls back to "/".
func NewFromConfig(cfg Config) (*Manager, error) {
	m, err := New(strings.Split(cfg.Secrets, ","))
	if err != nil {
		return nil, err
	}

	m.template = http.Cookie{
		Path:     cfg.Path,
		Domain:   cfg.Domain,
		MaxAge:   cfg.MaxAge,
		Secure:   cfg.Secure,
		HttpOnly: cfg.HttpOnly,
		SameSite: cfg.SameSite,
	}
	if m.template.Path == "" {
		m.template.Path = "/"
	}
	return m, nil
}

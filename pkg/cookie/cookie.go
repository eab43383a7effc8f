package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const minSecretLength = 32

// Manager signs cookie values with HMAC-SHA256. The MAC covers the cookie
// name too, so a value signed for one cookie does not verify under another.
type Manager struct {
	keys     [][]byte
	template http.Cookie
}

// Option adjusts the attributes written with every cookie.
type Option func(*http.Cookie)

// WithMaxAge sets Max-Age in seconds.
func WithMaxAge(seconds int) Option {
	return func(c *http.Cookie) { c.MaxAge = seconds }
}

// WithDomain scopes cookies to domain and its subdomains.
func WithDomain(domain string) Option {
	return func(c *http.Cookie) { c.Domain = domain }
}

// WithSecure restricts cookies to HTTPS.
func WithSecure(secure bool) Option {
	return func(c *http.Cookie) { c.Secure = secure }
}

// New returns a Manager. Blank secrets are skipped. The first remaining
// secret signs and all of them verify. Cookies default to Path=/, HttpOnly
// and SameSite=Lax.
func New(secrets []string, opts ...Option) (*Manager, error) {
	keys := make([][]byte, 0, len(secrets))
	for _, s := range secrets {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: %d chars, need %d", ErrWeakSecret, len(s), minSecretLength)
		}
		keys = append(keys, []byte(s))
	}
	if len(keys) == 0 {
		return nil, ErrNoSecret
	}

	tmpl := http.Cookie{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode}
	for _, opt := range opts {
		opt(&tmpl)
	}
	return &Manager{keys: keys, template: tmpl}, nil
}

// SetSigned writes cookie name holding value and its signature.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string) {
	c := m.template
	c.Name = name
	c.Value = base64.RawURLEncoding.EncodeToString([]byte(value)) + "." + m.signature(m.keys[0], name, value)
	http.SetCookie(w, &c)
}

// GetSigned returns the value of cookie name if its signature verifies
// under any configured secret.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if errors.Is(err, http.ErrNoCookie) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errors.Join(ErrMalformed, err)
	}

	payload, sig, ok := strings.Cut(c.Value, ".")
	if !ok {
		return "", ErrMalformed
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrMalformed
	}
	value := string(raw)

	for _, key := range m.keys {
		if hmac.Equal([]byte(sig), []byte(m.signature(key, name, value))) {
			return value, nil
		}
	}
	return "", ErrInvalidSignature
}

func (m *Manager) signature(key []byte, name, value string) string {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

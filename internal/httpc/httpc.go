// Package httpc builds per-account resty clients carrying a browser-like
// header set and the account's session cookies.
package httpc

import (
	"crypto/tls"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/loykin/leafcheck/internal/constants"
)

type Httpc struct {
	Timeout   time.Duration
	UserAgent string
	TlsConfig *tls.Config
}

// New returns a resty.Client configured according to the receiver's settings.
// Defaults: 30s request timeout, the fixed desktop-browser header set, and
// TLS MinVersion 1.3 when a TLS config is supplied without one.
func (h *Httpc) New() *resty.Client {
	c := resty.New()

	timeout := h.Timeout
	if timeout == 0 {
		timeout = constants.DefaultRequestTimeout
	}
	c.SetTimeout(timeout)

	ua := h.UserAgent
	if ua == "" {
		ua = constants.DefaultUserAgent
	}
	c.SetHeaders(map[string]string{
		"User-Agent":      ua,
		"Accept":          constants.AcceptHeader,
		"Accept-Language": constants.AcceptLanguage,
		"Connection":      "keep-alive",
	})

	if cfg := h.TlsConfig; cfg != nil {
		if cfg.MinVersion == 0 {
			cfg.MinVersion = tls.VersionTLS13
		}
		c.SetTLSClientConfig(cfg)
	}
	return c
}

// NewSession returns a client with the credential set attached as cookies for
// every given base URL. Each account gets its own client and jar so cookies
// never leak across accounts. No network I/O occurs here.
func (h *Httpc) NewSession(creds map[string]string, baseURLs ...string) *resty.Client {
	c := h.New()

	jar, err := cookiejar.New(nil)
	if err != nil {
		// cookiejar.New with nil options cannot fail; keep the client usable.
		return c
	}

	cookies := make([]*http.Cookie, 0, len(creds))
	for name, value := range creds {
		cookies = append(cookies, &http.Cookie{Name: name, Value: value, Path: "/"})
	}
	for _, base := range baseURLs {
		u, err := url.Parse(base)
		if err != nil || u.Host == "" {
			continue
		}
		jar.SetCookies(u, cookies)
	}
	c.SetCookieJar(jar)
	return c
}

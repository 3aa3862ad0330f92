// Package server provides the HTTP middleware shared by the reader.
package server

import (
	"net/http"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/FocuswithJustin/JuniperStage/internal/logging"
)

// CSPConfig holds Content-Security-Policy configuration.
type CSPConfig struct {
	DefaultSrc     []string
	ScriptSrc      []string
	StyleSrc       []string
	ImgSrc         []string
	FrameAncestors []string
	BaseURI        []string
	FormAction     []string
}

// ReaderCSPConfig is the policy for the HTML reader: same-origin
// stylesheet, no scripts.
func ReaderCSPConfig() CSPConfig {
	return CSPConfig{
		DefaultSrc:     []string{"'self'"},
		ScriptSrc:      []string{"'none'"},
		StyleSrc:       []string{"'self'"},
		ImgSrc:         []string{"'self'", "data:"},
		FrameAncestors: []string{"'none'"},
		BaseURI:        []string{"'self'"},
		FormAction:     []string{"'self'"},
	}
}

// APICSPConfig returns a strict CSP configuration for JSON endpoints.
func APICSPConfig() CSPConfig {
	return CSPConfig{
		DefaultSrc:     []string{"'none'"},
		FrameAncestors: []string{"'none'"},
		BaseURI:        []string{"'none'"},
		FormAction:     []string{"'none'"},
	}
}

// BuildCSPHeader builds a Content-Security-Policy header value from config.
func (cfg CSPConfig) BuildCSPHeader() string {
	var directives []string
	add := func(name string, sources []string) {
		if len(sources) > 0 {
			directives = append(directives, name+" "+strings.Join(sources, " "))
		}
	}
	add("default-src", cfg.DefaultSrc)
	add("script-src", cfg.ScriptSrc)
	add("style-src", cfg.StyleSrc)
	add("img-src", cfg.ImgSrc)
	add("frame-ancestors", cfg.FrameAncestors)
	add("base-uri", cfg.BaseURI)
	add("form-action", cfg.FormAction)
	return strings.Join(directives, "; ")
}

// SecurityHeadersWithCSP adds the standard security headers plus cfg's CSP.
func SecurityHeadersWithCSP(cfg CSPConfig, next http.Handler) http.Handler {
	cspHeader := cfg.BuildCSPHeader()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if cspHeader != "" {
			w.Header().Set("Content-Security-Policy", cspHeader)
		}
		next.ServeHTTP(w, r)
	})
}

// SlowRequest is the duration above which TimingMiddleware warns.
const SlowRequest = 100 * time.Millisecond

// TimingMiddleware logs request duration, warning on slow requests.
func TimingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		if duration > SlowRequest {
			logging.WarnContext(r.Context(), "slow request", "method", r.Method, "path", r.URL.Path, "duration", duration)
		} else {
			logging.DebugContext(r.Context(), "request timing", "method", r.Method, "path", r.URL.Path, "duration", duration)
		}
	})
}

// MethodsMiddleware answers 405 to any method outside allowed.
func MethodsMiddleware(next http.Handler, allowed ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, m := range allowed {
			if r.Method == m {
				next.ServeHTTP(w, r)
				return
			}
		}
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})
}

// MaxIdentifierLength bounds act and scene numbers taken from a URL.
const MaxIdentifierLength = 256

// ValidIdentifier reports whether s can name an act or scene in a URL.
// Numbers are opaque, so anything non-empty, valid UTF-8, free of control
// characters and at most MaxIdentifierLength bytes is accepted; the caller
// then matches it exactly.
func ValidIdentifier(s string) bool {
	if s == "" || len(s) > MaxIdentifierLength || !utf8.ValidString(s) {
		return false
	}
	return strings.IndexFunc(s, unicode.IsControl) < 0
}

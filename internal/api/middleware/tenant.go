package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rentbounce/bouncer/internal/domain"
	"github.com/rentbounce/bouncer/internal/store"
	"go.uber.org/zap"
)

type contextKey string

const companyContextKey contextKey = "company"

// CompanyFromContext returns the company resolved from the request host,
// or nil when the request carried no tenant context.
func CompanyFromContext(ctx context.Context) *domain.Company {
	c, _ := ctx.Value(companyContextKey).(*domain.Company)
	return c
}

// ResolveTenant maps the request host to the owning active company.
//
// A host without the platform domain suffix (and not localhost) is a
// custom domain and must match a registered one exactly. Otherwise the
// leading label is treated as a subdomain; "www", "api", and localhost
// hosts carry no tenant context and pass through, which lets
// non-tenant-scoped routes share the middleware chain. An attempted
// lookup that misses is a hard 404.
//
// Matching is case-sensitive on the raw host as received.
func ResolveTenant(companies domain.CompanyStore, platformDomain string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := r.Host
			if host == "" {
				writeError(w, http.StatusBadRequest, "Host header is required")
				return
			}

			var company *domain.Company
			var err error

			if !strings.Contains(host, platformDomain) && !strings.Contains(host, "localhost") {
				company, err = companies.GetActiveByCustomDomain(r.Context(), host)
			} else {
				subdomain := host
				if i := strings.Index(host, "."); i >= 0 {
					subdomain = host[:i]
				}
				if subdomain == "www" || subdomain == "api" || strings.Contains(host, "localhost") {
					next.ServeHTTP(w, r)
					return
				}
				company, err = companies.GetActiveBySubdomain(r.Context(), subdomain)
			}

			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					writeError(w, http.StatusNotFound, "tenant not found")
					return
				}
				logger.Error("tenant lookup failed", zap.String("host", host), zap.Error(err))
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), companyContextKey, company)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireCompany guards handlers that cannot run without a resolved
// tenant. Distinct from 404: the lookup never happened.
func RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CompanyFromContext(r.Context()) == nil {
			writeError(w, http.StatusBadRequest, "company context is required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

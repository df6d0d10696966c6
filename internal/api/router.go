package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rentbounce/bouncer/internal/api/handlers"
	mw "github.com/rentbounce/bouncer/internal/api/middleware"
	"github.com/rentbounce/bouncer/internal/config"
	"github.com/rentbounce/bouncer/internal/domain"
	"github.com/rentbounce/bouncer/internal/geo"
	"github.com/rentbounce/bouncer/internal/service"
	"github.com/rentbounce/bouncer/internal/store"
	"go.uber.org/zap"
)

// App holds the router and background services for lifecycle management.
type App struct {
	Router   *chi.Mux
	Enricher *service.EnricherService
}

func NewApp(db *pgxpool.Pool, logger *zap.Logger) *App {
	// Stores
	companyStore := store.NewCompanyStore(db)
	userStore := store.NewUserStore(db)
	bookingStore := store.NewBookingStore(db)
	waiverStore := store.NewWaiverStore(db)

	// Geocoding providers: key-gated Google when configured, free
	// Nominatim otherwise; zip lookup rides alongside.
	geocoder := geo.NewGeocoder(config.GoogleMapsAPIKey())
	logger.Info("geocoder initialized", zap.String("provider", geocoder.Name()))

	locationSvc := service.NewLocationService(
		geocoder,
		geo.NewZippopotamClient(),
		companyStore,
		service.LocationConfig{
			ZipLookupEnabled: config.ZipLookupEnabled(),
			GeocodeDelay:     config.GeocodeDelay(),
			CacheTTL:         config.GeocodeCacheTTL(),
		},
		logger,
	)

	// Services
	companySvc := service.NewCompanyService(companyStore, locationSvc, logger)
	bookingSvc := service.NewBookingService(bookingStore)
	waiverSvc := service.NewWaiverService(waiverStore, bookingStore)
	authSvc := service.NewAuthService(userStore, config.JWTSecret())
	enricherSvc := service.NewEnricherService(companyStore, locationSvc, logger)
	enricherSvc.SetInterval(config.EnricherInterval())

	// Handlers
	companyHandler := handlers.NewCompanyHandler(companySvc)
	locationHandler := handlers.NewLocationHandler(locationSvc)
	storefrontHandler := handlers.NewStorefrontHandler()
	bookingHandler := handlers.NewBookingHandler(bookingSvc)
	waiverHandler := handlers.NewWaiverHandler(waiverSvc)
	authHandler := handlers.NewAuthHandler(authSvc)

	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Metrics)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	// Health and metrics (no auth)
	r.Get("/health", healthHandler(db))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Delivery lookup runs over all active tenants, independent of
		// tenant resolution.
		r.Get("/delivery-options", locationHandler.DeliveryOptions)

		// Tenant-scoped storefront routes, resolved from the Host header.
		r.Group(func(r chi.Router) {
			r.Use(mw.ResolveTenant(companyStore, config.PlatformDomain(), logger))

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireCompany)
				r.Get("/storefront", storefrontHandler.Branding)
				r.Get("/storefront/waiver", storefrontHandler.WaiverTemplate)
				r.Post("/bookings", bookingHandler.Create)
			})
		})

		// Operator/admin routes behind JWT auth.
		r.Group(func(r chi.Router) {
			r.Use(mw.JWTAuth(authSvc))

			r.Route("/companies", func(r chi.Router) {
				r.Get("/", companyHandler.List)
				r.With(mw.RequireRole(string(domain.RoleAdmin))).Post("/", companyHandler.Create)
				r.With(mw.RequireRole(string(domain.RoleAdmin))).Post("/geocode-all", companyHandler.GeocodeAll)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", companyHandler.GetByID)
					r.With(mw.RequireRole(string(domain.RoleOperator), string(domain.RoleAdmin))).Put("/", companyHandler.Update)
					r.With(mw.RequireRole(string(domain.RoleAdmin))).Delete("/", companyHandler.Delete)
					r.With(mw.RequireRole(string(domain.RoleAdmin))).Post("/geocode", companyHandler.Geocode)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireRole(string(domain.RoleOperator), string(domain.RoleAdmin)))

				r.Get("/bookings", bookingHandler.List)
				r.Put("/bookings/{id}/status", bookingHandler.UpdateStatus)
				r.Get("/bookings/{id}/waivers", waiverHandler.ListByBooking)

				r.Post("/waivers", waiverHandler.Create)
				r.Get("/waivers/{id}", waiverHandler.GetByID)
				r.Post("/waivers/{id}/sign", waiverHandler.Sign)
			})
		})
	})

	return &App{
		Router:   r,
		Enricher: enricherSvc,
	}
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := db.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

// Ensure stores satisfy interfaces at compile time.
var (
	_ domain.CompanyStore = (*store.CompanyStore)(nil)
	_ domain.UserStore    = (*store.UserStore)(nil)
	_ domain.BookingStore = (*store.BookingStore)(nil)
	_ domain.WaiverStore  = (*store.WaiverStore)(nil)
	_ geo.Geocoder        = (*geo.GoogleClient)(nil)
	_ geo.Geocoder        = (*geo.NominatimClient)(nil)
	_ geo.ZipLookup       = (*geo.ZippopotamClient)(nil)
)

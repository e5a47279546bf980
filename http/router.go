package http

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// RouterConfig bundles what the router needs.
type RouterConfig struct {
	Loans          *LoanHandler
	Limiter        *RateLimiter
	Logger         *slog.Logger
	AllowedOrigins []string
}

// NewRouter wires the loan routes behind request logging, CORS and, when a
// limiter is given, rate limiting of the calculation endpoints.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := mux.NewRouter()
	r.Use(RequestLogger(logger.With("component", "http")))

	r.HandleFunc("/healthz", Health).Methods(http.MethodGet)

	loans := r.PathPrefix("/loan").Subrouter()
	if cfg.Limiter != nil {
		loans.Use(RateLimitMiddleware(cfg.Limiter))
	}
	loans.HandleFunc("/amortization", cfg.Loans.CalculateLoan).Methods(http.MethodPost)
	loans.HandleFunc("/amortization", cfg.Loans.CalculateFromQuery).Methods(http.MethodGet)
	loans.HandleFunc("/terms", cfg.Loans.CompareTerms).Methods(http.MethodGet)
	// legacy path, same payload
	loans.HandleFunc("/calculate", cfg.Loans.CalculateLoan).Methods(http.MethodPost)

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, http.StatusNotFound, "not found")
	})

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader, "Retry-After"},
	})

	return c.Handler(r)
}

package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/internal/catalog/usecase/command"
	"github.com/tair/product-catalog/internal/catalog/usecase/query"
	"github.com/tair/product-catalog/internal/currency"
	"github.com/tair/product-catalog/pkg/logger"
)

const (
	maxPage     = 100
	maxSize     = 100
	defaultSize = 10
)

// ProductHandler handles HTTP requests for products using CQRS pattern
type ProductHandler struct {
	createHandler *command.CreateProductHandler
	updateHandler *command.UpdateProductHandler
	deleteHandler *command.DeleteProductHandler

	getProductHandler *query.GetProductHandler
	listHandler       *query.ListProductsHandler

	converter *currency.Converter
	repo      domain.ProductRepository

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
	totalProducts  prometheus.Gauge
}

// NewProductHandler creates a new product handler. Metrics are registered
// on the given registerer so tests can pass an isolated registry.
func NewProductHandler(
	repo domain.ProductRepository,
	publisher command.EventPublisher,
	converter *currency.Converter,
	reg prometheus.Registerer,
) *ProductHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_service_requests_total",
			Help: "Total number of requests to the catalog service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_service_request_duration_seconds",
			Help:    "Duration of catalog service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	requestSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "catalog_service_request_duration_summary",
			Help: "Summary of request durations with percentiles (client-side quantiles)",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.01,
				0.99: 0.001,
			},
			MaxAge: 10 * time.Minute,
		},
		[]string{"method", "endpoint"},
	)

	totalProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_service_total_products",
			Help: "Total number of products in the catalog",
		},
	)

	reg.MustRegister(requestCounter, requestLatency, requestSummary, totalProducts)

	return &ProductHandler{
		createHandler:     command.NewCreateProductHandler(repo, publisher),
		updateHandler:     command.NewUpdateProductHandler(repo, publisher),
		deleteHandler:     command.NewDeleteProductHandler(repo, publisher),
		getProductHandler: query.NewGetProductHandler(repo),
		listHandler:       query.NewListProductsHandler(repo),
		converter:         converter,
		repo:              repo,
		requestCounter:    requestCounter,
		requestLatency:    requestLatency,
		requestSummary:    requestSummary,
		totalProducts:     totalProducts,
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *ProductHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/products", h.metricsMiddleware("/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/products/{id}", h.metricsMiddleware("/products/{id}", h.GetProduct)).Methods("GET")
	router.HandleFunc("/products", h.metricsMiddleware("/products", h.CreateProduct)).Methods("POST")
	router.HandleFunc("/products/{id}", h.metricsMiddleware("/products/{id}", h.UpdateProduct)).Methods("PUT")
	router.HandleFunc("/products/{id}", h.metricsMiddleware("/products/{id}", h.DeleteProduct)).Methods("DELETE")
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, size, violations := listParams(r)
	if len(violations) > 0 {
		respondProblem(w, r, http.StatusBadRequest, strings.Join(violations, ", "))
		return
	}

	q := query.ListProductsQuery{
		Page: page,
		Size: size,
		Name: r.URL.Query().Get("name"),
	}

	products, err := h.listHandler.Handle(r.Context(), q)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list products")
		h.respondError(w, r, err)
		return
	}

	response, err := toProductsResponse(r.Context(), h.converter, products)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to compute USD prices")
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, response)
}

// GetProduct handles GET /products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := h.getProductHandler.Handle(r.Context(), query.GetProductQuery{ID: id})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	response, err := toProductResponse(r.Context(), h.converter, product)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to compute USD price")
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, response)
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondProblem(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if violations := req.validate(); len(violations) > 0 {
		respondProblem(w, r, http.StatusBadRequest, strings.Join(violations, ", "))
		return
	}

	cmd := command.CreateProductCommand{
		Code:        req.Code,
		Name:        req.Name,
		PriceEur:    *req.PriceEur,
		Description: req.Description,
		IsAvailable: req.IsAvailable,
	}

	product, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Str("code", cmd.Code).Msg("Failed to create product")
		h.respondError(w, r, err)
		return
	}

	h.updateProductsMetric(r.Context())

	response, err := toProductResponse(r.Context(), h.converter, product)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to compute USD price")
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, response)
}

// UpdateProduct handles PUT /products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondProblem(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if violations := req.validate(); len(violations) > 0 {
		respondProblem(w, r, http.StatusBadRequest, strings.Join(violations, ", "))
		return
	}

	cmd := command.UpdateProductCommand{
		ID:          id,
		Code:        req.Code,
		Name:        req.Name,
		PriceEur:    *req.PriceEur,
		Description: req.Description,
		IsAvailable: req.IsAvailable,
	}

	product, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Uint("product_id", id).Msg("Failed to update product")
		h.respondError(w, r, err)
		return
	}

	response, err := toProductResponse(r.Context(), h.converter, product)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to compute USD price")
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, response)
}

// DeleteProduct handles DELETE /products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteProductCommand{ID: id}); err != nil {
		logger.Logger.Error().Err(err).Uint("product_id", id).Msg("Failed to delete product")
		h.respondError(w, r, err)
		return
	}

	h.updateProductsMetric(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondProblem(w, r, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
}

// respondError translates domain and currency errors to HTTP problems
func (h *ProductHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *domain.NotFoundError
	var upstream *currency.UpstreamError
	switch {
	case errors.As(err, &notFound):
		respondProblem(w, r, http.StatusNotFound, notFound.Error())
	case errors.Is(err, domain.ErrCodeConflict):
		respondProblem(w, r, http.StatusBadRequest, domain.ErrCodeConflict.Error())
	case errors.As(err, &upstream) || errors.Is(err, currency.ErrRateNotFound):
		respondProblem(w, r, http.StatusInternalServerError, "Hnb api error")
	default:
		respondProblem(w, r, http.StatusInternalServerError, err.Error())
	}
}

// listParams extracts and bounds-checks page and size
func listParams(r *http.Request) (page, size int, violations []string) {
	page, size = 0, defaultSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			violations = append(violations, "attribute page must be a number")
		} else {
			page = parsed
		}
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			violations = append(violations, "attribute size must be a number")
		} else {
			size = parsed
		}
	}

	if page < 0 {
		violations = append(violations, "attribute page must be positive number")
	}
	if page > maxPage {
		violations = append(violations, "attribute page must be below than 100")
	}
	if size < 1 {
		violations = append(violations, "attribute size must be greater than 1")
	}
	if size > maxSize {
		violations = append(violations, "attribute size must be below than 100")
	}
	return page, size, violations
}

// pathID parses the {id} path variable, responding 400 when malformed
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondProblem(w, r, http.StatusBadRequest, "Invalid product id")
		return 0, false
	}
	return uint(id), true
}

// updateProductsMetric updates the total products gauge
func (h *ProductHandler) updateProductsMetric(ctx context.Context) {
	count, err := h.repo.Count(ctx)
	if err == nil {
		h.totalProducts.Set(float64(count))
	}
}

func respondProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	respondJSON(w, status, Problem{
		Status:   status,
		Detail:   detail,
		Instance: r.URL.Path,
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

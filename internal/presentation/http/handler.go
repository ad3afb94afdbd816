package httppresentation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Zhima-Mochi/minishop-checkout/internal/application"
	appCustomer "github.com/Zhima-Mochi/minishop-checkout/internal/application/customer"
	appOrder "github.com/Zhima-Mochi/minishop-checkout/internal/application/order"
	appProduct "github.com/Zhima-Mochi/minishop-checkout/internal/application/product"
	domainCustomer "github.com/Zhima-Mochi/minishop-checkout/internal/domain/customer"
	domainOrder "github.com/Zhima-Mochi/minishop-checkout/internal/domain/order"
	domainProduct "github.com/Zhima-Mochi/minishop-checkout/internal/domain/product"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/validation"
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability"
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability/logctx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	componentHTTPHandler = "http_server"
	headerRequestID      = "X-Request-ID"
	headerTenantID       = "X-Tenant-ID"
	maxBodyBytes         = 1 << 20
)

type CreateOrderUseCase = application.UseCase[appOrder.CreateOrderInput, *appOrder.CreateOrderResult]

// Deps are the collaborators the HTTP surface dispatches to. Metrics may be nil to
// leave /metrics unmounted.
type Deps struct {
	CreateOrder   CreateOrderUseCase
	Orders        *appOrder.Service
	Customers     *appCustomer.Service
	Products      *appProduct.Service
	Metrics       http.Handler
	Logger        observability.Logger
	Observability observability.Observability
}

type Handler struct {
	createOrder CreateOrderUseCase
	orders      *appOrder.Service
	customers   *appCustomer.Service
	products    *appProduct.Service
	metrics     http.Handler
	log         observability.Logger
	tel         observability.Observability

	reqCounter   observability.Counter   // http_requests_total{method,route,status}
	durHistogram observability.Histogram // http_request_duration_seconds{method,route,status}
}

func NewHandler(d Deps) *Handler {
	tel := d.Observability
	if tel == nil {
		tel = observability.Nop()
	}
	baseLogger := d.Logger
	if baseLogger == nil {
		baseLogger = tel.Logger()
	}
	return &Handler{
		createOrder:  d.CreateOrder,
		orders:       d.Orders,
		customers:    d.Customers,
		products:     d.Products,
		metrics:      d.Metrics,
		log:          baseLogger.With(observability.F("component", componentHTTPHandler)),
		tel:          tel,
		reqCounter:   tel.Metrics().Counter(observability.MHTTPRequests),
		durHistogram: tel.Metrics().Histogram(observability.MHTTPRequestDuration),
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	// Wire each route with middlewares:
	// Trace → ObservabilityMiddleware (request logger) → Access log → HTTP metrics → Handler
	h.route(r, http.MethodPost, "/orders", h.handleCreateOrder)
	h.route(r, http.MethodGet, "/orders", h.handleListOrders)
	h.route(r, http.MethodGet, "/orders/{id}", h.handleGetOrder)
	h.route(r, http.MethodPost, "/orders/{id}/items", h.handleAddOrderItem)
	h.route(r, http.MethodDelete, "/orders/{id}/items/{itemID}", h.handleRemoveOrderItem)

	h.route(r, http.MethodPost, "/customers", h.handleCreateCustomer)
	h.route(r, http.MethodGet, "/customers", h.handleListCustomers)
	h.route(r, http.MethodGet, "/customers/{id}", h.handleGetCustomer)
	h.route(r, http.MethodPut, "/customers/{id}/address", h.handleChangeCustomerAddress)
	h.route(r, http.MethodPost, "/customers/{id}/activate", h.handleActivateCustomer)

	h.route(r, http.MethodPost, "/products", h.handleCreateProduct)
	h.route(r, http.MethodGet, "/products", h.handleListProducts)
	h.route(r, http.MethodGet, "/products/{id}", h.handleGetProduct)
	h.route(r, http.MethodPut, "/products/{id}/price", h.handleChangeProductPrice)

	h.route(r, http.MethodGet, "/health", h.handleHealth)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics)
	}
	return r
}

func (h *Handler) route(router chi.Router, method, pattern string, handler http.HandlerFunc) {
	wrapped := h.withTrace(
		ObservabilityMiddleware(
			h.log,
			func(r *http.Request) string {
				return r.Header.Get(headerRequestID)
			},
			func(r *http.Request) string {
				return r.Header.Get(headerTenantID)
			},
		)(
			h.withAccessLog(
				h.withHTTPMetrics(handler),
			),
		),
	)
	router.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Store stable route template for low-cardinality labels
		wrapped.ServeHTTP(w, r.WithContext(contextWithRoute(r.Context(), pattern)))
	}))
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// withAccessLog writes a single access log after the handler completes.
// It relies on the request-scoped logger already injected by ObservabilityMiddleware.
func (h *Handler) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(lrw, r)

		logctx.FromOr(r.Context(), h.log).Info("http_access",
			observability.F("method", r.Method),
			observability.F("route", routeFromContext(r.Context())),
			observability.F("path", r.URL.Path),
			observability.F("status", lrw.status),
			observability.F("latency_ms", time.Since(start).Milliseconds()),
		)
	})
}

// withTrace creates a server span for the request using OTel and W3C propagation.
func (h *Handler) withTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tracer := otel.Tracer("minishop.http")
		parentCtx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		template := routeFromContext(parentCtx)
		if template == "unknown" {
			template = r.URL.Path
		}

		ctxWithSpan, span := tracer.Start(parentCtx,
			r.Method+" "+template,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", template),
				attribute.String("http.target", r.URL.Path),
				attribute.String("http.user_agent", r.UserAgent()),
			),
		)
		defer span.End()

		lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(lrw, r.WithContext(ctxWithSpan))

		span.SetAttributes(attribute.Int("http.status_code", lrw.status))
		if lrw.status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(lrw.status))
		}
	})
}

// withHTTPMetrics records RED-ish HTTP metrics using injected vectors.
// DO NOT new metrics inside the middleware.
func (h *Handler) withHTTPMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(lrw, r)

		labels := []observability.Label{
			observability.L("method", r.Method),
			observability.L("route", routeFromContext(r.Context())),
			observability.L("status", strconv.Itoa(lrw.status)),
		}
		h.reqCounter.Add(1, labels...)
		h.durHistogram.Observe(time.Since(start).Seconds(), labels...)
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeDomainError maps service errors onto status codes. Validation messages are
// returned verbatim; unexpected errors are logged and hidden from the client.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message, Field: verr.Field})
	case errors.Is(err, domainOrder.ErrNotFound),
		errors.Is(err, domainOrder.ErrItemNotFound),
		errors.Is(err, domainCustomer.ErrNotFound),
		errors.Is(err, domainProduct.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domainOrder.ErrConflict),
		errors.Is(err, domainCustomer.ErrConflict),
		errors.Is(err, domainProduct.ErrConflict):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, domainOrder.ErrInvalidReference):
		writeError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, err)
	default:
		logctx.FromOr(r.Context(), h.log).Error("http_request_failed",
			observability.F("route", routeFromContext(r.Context())),
			observability.F("error", err),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

type routeKey struct{}

// contextWithRoute stores the stable route template in the context so downstream
// metrics/logging can rely on low-cardinality values.
func contextWithRoute(ctx context.Context, route string) context.Context {
	if route == "" {
		return ctx
	}
	return context.WithValue(ctx, routeKey{}, route)
}

func routeFromContext(ctx context.Context) string {
	if ctx == nil {
		return "unknown"
	}
	if route, ok := ctx.Value(routeKey{}).(string); ok && route != "" {
		return route
	}
	return "unknown"
}

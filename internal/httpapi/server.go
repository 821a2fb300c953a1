package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bookslib/internal/manager"
	"bookslib/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
// *manager.Manager implements it.
type Service interface {
	Status() types.StateResponse
	AvailableItems() []string
	UpdateField(form manager.FormID, name, value string) error
	Run(ctx context.Context, op manager.Op) (manager.Outcome, error)
	Trigger(op manager.Op) (string, error)
	DismissError()
	Ready() bool
}

// NewMux builds the JSON presentation surface over svc.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}

	// @Summary      Controller state
	// @Description  Forms, busy flags, error slot, available items and latest attempts.
	// @Produce      json
	// @Success      200  {object}  types.StateResponse
	// @Router       /state [get]
	r.Get("/state", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	})

	// @Summary      Available items
	// @Produce      json
	// @Success      200  {object}  types.ItemsResponse
	// @Router       /items [get]
	r.Get("/items", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.ItemsResponse{Items: svc.AvailableItems()})
	})

	limiter := newClientLimiter(rateLimitRPS, rateLimitBurst)
	r.Group(func(r chi.Router) {
		r.Use(limiter.middleware)

		// @Summary      Edit a form field
		// @Accept       json
		// @Produce      json
		// @Param        form   path  string                    true  "add, checkout or return"
		// @Param        field  path  string                    true  "author, title, copies or itemId"
		// @Param        body   body  types.FieldUpdateRequest  true  "new value"
		// @Success      200  {object}  types.StateResponse
		// @Failure      400  {object}  types.ErrorResponse
		// @Failure      404  {object}  types.ErrorResponse
		// @Router       /forms/{form}/fields/{field} [put]
		r.Put("/forms/{form}/fields/{field}", func(w http.ResponseWriter, r *http.Request) {
			ct := r.Header.Get("Content-Type")
			if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
				writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
				return
			}
			form, err := manager.ParseForm(chi.URLParam(r, "form"))
			if err != nil {
				writeJSONError(w, statusFor(err), err.Error())
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			var req types.FieldUpdateRequest
			if err := decodeJSON(r, &req); err != nil {
				writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
				return
			}
			if err := svc.UpdateField(form, chi.URLParam(r, "field"), req.Value); err != nil {
				writeJSONError(w, statusFor(err), err.Error())
				return
			}
			writeJSON(w, http.StatusOK, svc.Status())
		})

		// @Summary      Trigger an operation
		// @Description  Starts add, checkout, return or list. With wait=1 the response is sent once the attempt settles; a failed attempt is still a 200 carrying its reason.
		// @Produce      json
		// @Param        op    path   string  true   "add, checkout, return or list"
		// @Param        wait  query  string  false  "1 to wait for settlement"
		// @Success      200  {object}  types.OpResponse
		// @Success      202  {object}  types.OpResponse
		// @Failure      404  {object}  types.ErrorResponse
		// @Failure      409  {object}  types.ErrorResponse
		// @Failure      429  {object}  types.ErrorResponse
		// @Failure      503  {object}  types.ErrorResponse
		// @Router       /ops/{op} [post]
		r.Post("/ops/{op}", func(w http.ResponseWriter, r *http.Request) {
			name := chi.URLParam(r, "op")
			op, err := manager.ParseOp(name)
			if err != nil {
				writeJSONError(w, statusFor(err), err.Error())
				return
			}
			lvl := requestLogLevel(r)
			start := time.Now()
			if !wantsWait(r) {
				id, err := svc.Trigger(op)
				if err != nil {
					status := statusFor(err)
					writeJSONError(w, status, err.Error())
					logOpEnd(r, lvl, name, status, start, err)
					return
				}
				writeJSON(w, http.StatusAccepted, types.OpResponse{AttemptID: id, Op: name, State: string(manager.AttemptPending)})
				logOpEnd(r, lvl, name, http.StatusAccepted, start, nil)
				return
			}
			out, err := svc.Run(r.Context(), op)
			if err != nil {
				status := statusFor(err)
				writeJSONError(w, status, err.Error())
				logOpEnd(r, lvl, name, status, start, err)
				return
			}
			// the client may be gone or the server stopping; the attempt has settled regardless
			if r.Context().Err() != nil || shuttingDown() {
				return
			}
			writeJSON(w, http.StatusOK, manager.OutcomeResponse(out))
			if out.Err != nil {
				logOpEnd(r, lvl, name, http.StatusOK, start, out.Err)
				return
			}
			logOpEnd(r, lvl, name, http.StatusOK, start, nil)
		})

		// @Summary      Dismiss the error banner
		// @Success      204
		// @Router       /error [delete]
		r.Delete("/error", func(w http.ResponseWriter, r *http.Request) {
			svc.DismissError()
			w.WriteHeader(http.StatusNoContent)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("no identity"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

func wantsWait(r *http.Request) bool {
	switch strings.ToLower(r.URL.Query().Get("wait")) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// decodeJSON decodes a single JSON object, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

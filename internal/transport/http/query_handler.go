package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/light-bringer/pricecomp-service/internal/app/catalog/contracts"
	"github.com/light-bringer/pricecomp-service/internal/app/catalog/engine"
	"github.com/light-bringer/pricecomp-service/internal/observability"
)

// maxRequestBytes bounds a /getdata body.
const maxRequestBytes = 1 << 20

const banner = "pricecomp-service: POST a query to /getdata\n"

const feedUnavailableMessage = "product feed unavailable"

// QueryEngine runs decoded queries.
type QueryEngine interface {
	Execute(ctx context.Context, req *engine.Request) (any, error)
	Stats() contracts.TableStats
}

// QueryHandler serves the query API.
type QueryHandler struct {
	engine QueryEngine
	logger *observability.Logger
}

// NewQueryHandler creates a new HTTP query handler.
func NewQueryHandler(engine QueryEngine, logger *observability.Logger) *QueryHandler {
	return &QueryHandler{
		engine: engine,
		logger: logger,
	}
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ReadyResponse reports the table state.
type ReadyResponse struct {
	Status   string     `json:"status"`
	Table    string     `json:"table"`
	Rows     int        `json:"rows"`
	Skipped  int        `json:"skipped"`
	BuildID  string     `json:"build_id,omitempty"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}

// Home handles GET /.
func (h *QueryHandler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, banner)
}

// GetData handles POST /getdata.
func (h *QueryHandler) GetData(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	req, err := engine.DecodeRequest(body)
	if err != nil {
		h.writeError(w, mapDomainErrorToHTTP(err), err)
		return
	}

	result, err := h.engine.Execute(r.Context(), req)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("getdata rejected")
		h.writeError(w, mapDomainErrorToHTTP(err), err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// Health handles GET /health.
func (h *QueryHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Ready handles GET /ready. The service can answer queries before the table
// is loaded, so an unloaded table is still ready.
func (h *QueryHandler) Ready(w http.ResponseWriter, r *http.Request) {
	stats := h.engine.Stats()

	resp := ReadyResponse{
		Status:  "ready",
		Table:   stats.State,
		Rows:    stats.Rows,
		Skipped: stats.Skipped,
		BuildID: stats.BuildID,
	}
	if !stats.LoadedAt.IsZero() {
		loadedAt := stats.LoadedAt
		resp.LoadedAt = &loadedAt
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *QueryHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
		status = http.StatusInternalServerError
		data = []byte(`{"error":"failed to encode response"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (h *QueryHandler) writeError(w http.ResponseWriter, status int, err error) {
	msg := err.Error()
	switch status {
	case http.StatusServiceUnavailable:
		h.logger.Error().Err(err).Msg("Product feed unavailable")
		msg = feedUnavailableMessage
	case http.StatusInternalServerError:
		msg = http.StatusText(status)
	}
	h.writeJSON(w, status, ErrorResponse{Error: msg})
}

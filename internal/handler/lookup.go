package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vaultpass/toolbox/internal/client"
	"github.com/vaultpass/toolbox/internal/service"
)

// LookupHandler exposes the public API lookups over HTTP.
type LookupHandler struct {
	service *service.LookupService
}

// NewLookupHandler creates a new LookupHandler.
func NewLookupHandler(svc *service.LookupService) *LookupHandler {
	return &LookupHandler{service: svc}
}

// HandleCEP handles GET /api/v1/cep/{cep} requests.
func (h *LookupHandler) HandleCEP(w http.ResponseWriter, r *http.Request) {
	addr, err := h.service.Address(r.Context(), chi.URLParam(r, "cep"))
	if err != nil {
		writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, addr)
}

// HandleQuote handles GET /api/v1/quote/{code} requests.
func (h *LookupHandler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.Quote(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// HandleProfile handles GET /api/v1/profile requests.
func (h *LookupHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	offline := false
	if v := r.URL.Query().Get("offline"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse("offline must be a boolean"))
			return
		}
		offline = b
	}

	p, err := h.service.Profile(r.Context(), offline)
	if err != nil {
		writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, client.ErrInvalidCEP), errors.Is(err, client.ErrInvalidCurrency):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, client.ErrCEPNotFound), errors.Is(err, client.ErrCurrencyNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusGatewayTimeout, errorResponse("upstream timed out"))
	case errors.Is(err, client.ErrTransport), errors.Is(err, client.ErrUpstream), errors.Is(err, client.ErrDecode):
		slog.Warn("upstream lookup failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse("upstream service unavailable"))
	default:
		slog.Error("lookup failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}

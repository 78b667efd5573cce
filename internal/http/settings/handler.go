package settings

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/settings"
)

type Service interface {
	Load(ctx context.Context) settings.Configuration
	Save(ctx context.Context, cfg settings.Configuration) error
}

type Handler struct {
	svc       Service
	authorize func(http.Handler) http.Handler
}

// NewHandler wires the settings endpoints. authorize guards writes.
func NewHandler(svc Service, authorize func(http.Handler) http.Handler) *Handler {
	return &Handler{svc: svc, authorize: authorize}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Get("/defaults", h.defaults)
	r.With(h.authorize).Put("/", h.update)
}

type validationResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Load(r.Context()))
}

func (h *Handler) defaults(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, settings.Defaults())
}

// update applies the body on top of the current configuration, so partial
// documents only change the fields they name.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	cfg := h.svc.Load(r.Context())

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&cfg); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Save(r.Context(), cfg); err != nil {
		var verr *settings.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, validationResponse{
				Error:  settings.ErrInvalid.Error(),
				Fields: verr.Fields,
			})

			return
		}

		slog.Error("saving settings failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/document"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/generator"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/lineitems"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/records"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/render"
)

const (
	maxBody      = 1 << 20
	maxUpload    = 4 << 20
	maxBatchSize = 50
)

type Generator interface {
	Generate(ctx context.Context, req generator.Request) (*generator.Result, error)
	Batch(ctx context.Context, reqs []generator.Request, w io.Writer) error
}

type Handler struct {
	gen     Generator
	records records.Source
}

func NewHandler(gen Generator, src records.Source) *Handler {
	return &Handler{gen: gen, records: src}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/quotation", h.quotation)
	r.Post("/quotation/items", h.items)
	r.Get("/invoices/{rentalID}", h.invoice)
	r.Post("/batch", h.batch)
}

type quotationRequest struct {
	Quotation *document.Quotation `json:"quotation"`
	Settings  json.RawMessage     `json:"settings,omitempty"`
}

type batchDocument struct {
	Type      document.Kind       `json:"type"`
	Format    string              `json:"format,omitempty"`
	Quotation *document.Quotation `json:"quotation,omitempty"`
	Invoice   *document.Invoice   `json:"invoice,omitempty"`
	// RentalID fetches the invoice from the backend when Invoice is absent.
	RentalID int64 `json:"rental_id,omitempty"`
}

type batchRequest struct {
	Documents []batchDocument `json:"documents"`
	Settings  json.RawMessage `json:"settings,omitempty"`
}

type itemsResponse struct {
	Count int                 `json:"count"`
	Items []document.LineItem `json:"items"`
}

func (h *Handler) quotation(w http.ResponseWriter, r *http.Request) {
	format, ok := render.ParseFormat(r.URL.Query().Get("format"))
	if !ok {
		http.Error(w, "unsupported format", http.StatusBadRequest)
		return
	}

	var req quotationRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Quotation == nil {
		http.Error(w, "quotation is required", http.StatusBadRequest)
		return
	}

	res, err := h.gen.Generate(r.Context(), generator.Request{
		Record:   req.Quotation,
		Settings: req.Settings,
		Format:   format,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeArtifact(w, res)
}

func (h *Handler) invoice(w http.ResponseWriter, r *http.Request) {
	rentalID, err := strconv.ParseInt(chi.URLParam(r, "rentalID"), 10, 64)
	if err != nil || rentalID <= 0 {
		http.Error(w, "invalid rental id", http.StatusBadRequest)
		return
	}

	format, ok := render.ParseFormat(r.URL.Query().Get("format"))
	if !ok {
		http.Error(w, "unsupported format", http.StatusBadRequest)
		return
	}

	inv, err := h.records.Invoice(r.Context(), rentalID)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := h.gen.Generate(r.Context(), generator.Request{Record: inv, Format: format})
	if err != nil {
		writeError(w, err)
		return
	}

	writeArtifact(w, res)
}

func (h *Handler) batch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if len(req.Documents) == 0 || len(req.Documents) > maxBatchSize {
		http.Error(w, fmt.Sprintf("documents must contain between 1 and %d entries", maxBatchSize), http.StatusBadRequest)
		return
	}

	reqs := make([]generator.Request, 0, len(req.Documents))

	for i, d := range req.Documents {
		rec, err := h.record(r.Context(), d)
		if err != nil {
			writeError(w, fmt.Errorf("document %d: %w", i+1, err))
			return
		}

		format, ok := render.ParseFormat(d.Format)
		if !ok {
			http.Error(w, fmt.Sprintf("document %d: unsupported format", i+1), http.StatusBadRequest)
			return
		}

		reqs = append(reqs, generator.Request{Record: rec, Settings: req.Settings, Format: format})
	}

	var buf bytes.Buffer
	if err := h.gen.Batch(r.Context(), reqs, &buf); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"documents_%s.zip\"", time.Now().Format("20060102")))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write archive", "error", err)
	}
}

func (h *Handler) record(ctx context.Context, d batchDocument) (document.Record, error) {
	switch d.Type {
	case document.KindQuotation:
		if d.Quotation != nil {
			return d.Quotation, nil
		}
	case document.KindInvoice:
		if d.Invoice != nil {
			return d.Invoice, nil
		}

		if d.RentalID > 0 {
			return h.records.Invoice(ctx, d.RentalID)
		}
	}

	return nil, fmt.Errorf("%w: type %q without matching payload", document.ErrUnknownRecord, d.Type)
}

func (h *Handler) items(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	items, err := lineitems.ParseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(itemsResponse{Count: len(items), Items: items}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeArtifact(w http.ResponseWriter, res *generator.Result) {
	w.Header().Set("Content-Type", res.Artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Artifact.Data)))

	if res.Artifact.Pages > 0 {
		w.Header().Set("X-Page-Count", strconv.Itoa(res.Artifact.Pages))
	}

	if _, err := w.Write(res.Artifact.Data); err != nil {
		slog.Error("failed to write document", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, records.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, records.ErrNotCompleted):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, document.ErrUnknownRecord), errors.Is(err, generator.ErrUnsupportedFormat):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "request cancelled", http.StatusServiceUnavailable)
	case errors.Is(err, render.ErrRender):
		slog.Error("rendering failed", "error", err)
		http.Error(w, "failed to render document", http.StatusInternalServerError)
	default:
		slog.Error("document request failed", "error", err)
		http.Error(w, "upstream error", http.StatusBadGateway)
	}
}

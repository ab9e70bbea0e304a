package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/avsuite/av-cost-estimator/internal/domain/boq"
	"github.com/avsuite/av-cost-estimator/pkg/money"
)

// Handler exposes workbook upload and the invalid-entries report.
type Handler struct {
	service        *Service
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewHandler wires the handler.
func NewHandler(service *Service, maxUploadBytes int64, logger *slog.Logger) *Handler {
	return &Handler{service: service, maxUploadBytes: maxUploadBytes, logger: logger}
}

// RegisterRoutes mounts the import endpoints on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/imports", h.handleImport)
	r.Post("/imports/invalid-report", h.handleInvalidReport)
}

// parseUpload extracts the workbook file and parse options from a multipart
// form. Form fields: file (required), region, country, currency, plus
// subtype overrides as subtype[<room type>]=<tier>.
func (h *Handler) parseUpload(r *http.Request) (boq.ParseOptions, []byte, error) {
	var opts boq.ParseOptions

	r.Body = http.MaxBytesReader(nil, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		return opts, nil, fmt.Errorf("failed to parse upload: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return opts, nil, fmt.Errorf("missing file field: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return opts, nil, fmt.Errorf("failed to read upload: %w", err)
	}

	currency := r.FormValue("currency")
	if currency != "" && !money.ValidCurrency(currency) {
		return opts, nil, fmt.Errorf("unknown currency code %q", currency)
	}

	opts = boq.ParseOptions{
		FileName: header.Filename,
		Region:   r.FormValue("region"),
		Country:  r.FormValue("country"),
		Currency: currency,
	}

	for key, values := range r.MultipartForm.Value {
		if !strings.HasPrefix(key, "subtype[") || !strings.HasSuffix(key, "]") {
			continue
		}
		roomType := key[len("subtype[") : len(key)-1]
		if roomType == "" || len(values) == 0 || values[0] == "" {
			continue
		}
		if opts.SubTypeOverrides == nil {
			opts.SubTypeOverrides = make(map[string]boq.SubType)
		}
		opts.SubTypeOverrides[roomType] = boq.SubType(values[0])
	}

	return opts, data, nil
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	opts, data, err := h.parseUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Import(r.Context(), bytes.NewReader(data), opts)
	if err != nil {
		h.respondImportError(w, opts.FileName, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleInvalidReport re-parses the upload and streams the invalid entries
// as a CSV download. Stateless on purpose: the operator fixes the sheet and
// re-uploads, so there is nothing worth keeping server-side. Uses the
// preview path so a report download never writes to the catalog.
func (h *Handler) handleInvalidReport(w http.ResponseWriter, r *http.Request) {
	opts, data, err := h.parseUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Preview(bytes.NewReader(data), opts)
	if err != nil {
		h.respondImportError(w, opts.FileName, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="invalid-entries.csv"`)
	if err := boq.WriteInvalidEntriesCSV(w, result.Parse.InvalidEntries); err != nil {
		h.logger.Error("failed to stream invalid-entries report", slog.Any("error", err))
	}
}

func (h *Handler) respondImportError(w http.ResponseWriter, fileName string, err error) {
	switch {
	case errors.Is(err, boq.ErrNoValidSheet), errors.Is(err, boq.ErrNoRoomTypes):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error("import failed", slog.String("file", fileName), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "import failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

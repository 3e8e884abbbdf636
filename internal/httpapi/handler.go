package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/a3tai/mcp-field-reports/internal/compose"
	"github.com/a3tai/mcp-field-reports/internal/forms"
	"github.com/a3tai/mcp-field-reports/internal/signature"
	"github.com/a3tai/mcp-field-reports/internal/sink"
)

// Handler serves the document endpoints. Every composed document is sent
// back as a download; nothing is kept on the server.
type Handler struct {
	service    *compose.Service
	maxPayload int64
}

// NewHandler creates a Handler. Request bodies above maxPayload bytes are
// refused.
func NewHandler(service *compose.Service, maxPayload int64) *Handler {
	return &Handler{service: service, maxPayload: maxPayload}
}

// WorkOrder handles POST /api/v1/work-orders.
func (h *Handler) WorkOrder(w http.ResponseWriter, r *http.Request) {
	var record forms.WorkOrder
	if !h.readJSON(w, r, &record) {
		return
	}
	if err := record.CheckRequired(); err != nil {
		writeRequired(w, err)
		return
	}
	h.submit(w, r, compose.NewWorkOrder(record))
}

// DailyReport handles POST /api/v1/daily-reports.
func (h *Handler) DailyReport(w http.ResponseWriter, r *http.Request) {
	var record forms.DailyReport
	if !h.readJSON(w, r, &record) {
		return
	}
	if err := record.CheckRequired(); err != nil {
		writeRequired(w, err)
		return
	}
	h.submit(w, r, compose.NewDailyReport(record))
}

type signatureRequest struct {
	Events  []signature.InputEvent `json:"events"`
	Seed    string                 `json:"seed"`
	Display *struct {
		Left   float64 `json:"left"`
		Top    float64 `json:"top"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	} `json:"display"`
}

// Signature handles POST /api/v1/signatures: recorded input events in, the
// signature payload out. An empty payload means no signature.
func (h *Handler) Signature(w http.ResponseWriter, r *http.Request) {
	var req signatureRequest
	if !h.readJSON(w, r, &req) {
		return
	}

	var opts []signature.Option
	if d := req.Display; d != nil {
		opts = append(opts, signature.WithDisplayRect(signature.Rect{
			Left: d.Left, Top: d.Top, Width: d.Width, Height: d.Height,
		}))
	}

	payload, err := signature.Replay(signature.NewSurface(req.Seed, opts...), req.Events)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"payload": payload,
		"empty":   payload == "",
	})
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request, doc compose.Document) {
	download := sink.NewResponse(w)
	_, err := h.service.SubmitTo(r.Context(), doc, download)
	if err == nil {
		return
	}
	if download.Sent() {
		log.Printf("Warning: %s download aborted: %v", doc.Template(), err)
		return
	}

	var verr *compose.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, verr.Notification())
		return
	}
	log.Printf("Warning: %s failed: %v", doc.Template(), err)
	writeError(w, http.StatusInternalServerError, "document could not be created")
}

func (h *Handler) readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if h.maxPayload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxPayload)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeRequired(w http.ResponseWriter, err error) {
	var rerr *forms.RequiredFieldError
	if errors.As(err, &rerr) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  err.Error(),
			"fields": rerr.Fields,
		})
		return
	}
	writeError(w, http.StatusUnprocessableEntity, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

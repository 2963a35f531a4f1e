package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/neexbeast/travelviz/internal/booking"
	"github.com/neexbeast/travelviz/internal/datasource"
	"github.com/neexbeast/travelviz/internal/destination"
	"github.com/neexbeast/travelviz/internal/media"
	"github.com/neexbeast/travelviz/internal/page"
	"github.com/neexbeast/travelviz/internal/recommend"
)

// multipartOverhead is allowed on top of the file size limit for form framing.
const multipartOverhead = 1 << 20

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	pages     Pages
	maxUpload int64
	log       *slog.Logger
}

// NewHandlers constructs Handlers. maxUpload bounds the upload request body in bytes.
func NewHandlers(pages Pages, maxUpload int64, log *slog.Logger) *Handlers {
	if maxUpload <= 0 {
		maxUpload = media.MaxFileSize
	}
	return &Handlers{pages: pages, maxUpload: maxUpload, log: log}
}

type errorBody struct {
	Error string `json:"error"`
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps controller errors to status codes. Input errors carry
// their message verbatim; service failures carry the user-facing message.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		mediaErr   *media.ValidationError
		recErr     *recommend.ValidationError
		bookingErr *booking.ValidationError
		pageErr    *page.ValidationError
		notFound   *page.NotFoundError
		failure    *page.Failure
	)

	switch {
	case errors.Is(r.Context().Err(), context.DeadlineExceeded):
		h.log.Warn("request timed out", "method", r.Method, "path", r.URL.Path, "err", err)
		writeJSON(w, http.StatusGatewayTimeout, errorBody{Error: "request timed out"})
	case errors.As(err, &mediaErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: mediaErr.Message})
	case errors.As(err, &recErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: recErr.Message})
	case errors.As(err, &bookingErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: bookingErr.Message})
	case errors.As(err, &pageErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: pageErr.Message})
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: notFound.Message})
	case errors.As(err, &failure):
		status := http.StatusBadGateway
		if errors.Is(err, datasource.ErrUnavailable) {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, errorBody{Error: failure.Message})
	default:
		h.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &page.ValidationError{Message: "invalid request body"}
	}
	return nil
}

func boolParam(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}

// Upload handles POST /api/v1/upload with a multipart "file" field.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+multipartOverhead)

	f, err := readUpload(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "File size must be less than 10MB"})
			return
		}
		h.writeError(w, r, &page.ValidationError{Message: "invalid upload form"})
		return
	}

	res, err := h.pages.Upload.Upload(r.Context(), SessionID(r.Context()), ClientID(r.Context()), f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// readUpload returns nil when the form carries no file.
func readUpload(r *http.Request) (*media.File, error) {
	file, hdr, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading upload form: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading uploaded file: %w", err)
	}
	return &media.File{
		Name:        hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}

// UploadProgress handles GET /api/v1/upload/progress.
func (h *Handlers) UploadProgress(w http.ResponseWriter, r *http.Request) {
	p, ok := h.pages.Upload.Progress(SessionID(r.Context()))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "no upload in progress"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// RecentUpload handles GET /api/v1/upload/recent.
func (h *Handlers) RecentUpload(w http.ResponseWriter, r *http.Request) {
	res, err := h.pages.Upload.Recent(r.Context(), SessionID(r.Context()), ClientID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ClearUpload handles DELETE /api/v1/upload.
func (h *Handlers) ClearUpload(w http.ResponseWriter, r *http.Request) {
	notices, err := h.pages.Upload.Clear(r.Context(), SessionID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notices": notices})
}

// Destinations handles GET /api/v1/destinations?search=&continent=&refresh=.
func (h *Handlers) Destinations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := destination.Filter{Query: q.Get("search"), Continent: q.Get("continent")}

	view, err := h.pages.Destinations.Load(r.Context(), SessionID(r.Context()), f, boolParam(r, "refresh"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Visualize handles POST /api/v1/destinations/{id}/visualize.
func (h *Handlers) Visualize(w http.ResponseWriter, r *http.Request) {
	res, err := h.pages.Destinations.Visualize(r.Context(), SessionID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Visualizations handles GET /api/v1/visualizations?type=&refresh=.
func (h *Handlers) Visualizations(w http.ResponseWriter, r *http.Request) {
	view, err := h.pages.Visualizations.Load(r.Context(), SessionID(r.Context()), r.URL.Query().Get("type"), boolParam(r, "refresh"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Recommendations handles POST /api/v1/recommendations.
func (h *Handlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	var prefs recommend.Preferences
	if err := decodeJSON(r, &prefs); err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.pages.Recommendations.Generate(r.Context(), SessionID(r.Context()), prefs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ItineraryPDF handles GET /api/v1/recommendations/itinerary.pdf.
func (h *Handlers) ItineraryPDF(w http.ResponseWriter, r *http.Request) {
	doc, err := h.pages.Recommendations.ItineraryPDF(r.Context(), SessionID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="travel-itinerary.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

type imageRequest struct {
	Prompt string `json:"prompt"`
	Style  string `json:"style"`
}

// Images handles POST /api/v1/images.
func (h *Handlers) Images(w http.ResponseWriter, r *http.Request) {
	var req imageRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.pages.Imagine.Generate(r.Context(), req.Prompt, req.Style)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Suggestions handles GET /api/v1/suggestions?query=.
func (h *Handlers) Suggestions(w http.ResponseWriter, r *http.Request) {
	out := h.pages.Booking.Suggestions(r.Context(), r.URL.Query().Get("query"))
	writeJSON(w, http.StatusOK, map[string][]string{"suggestions": out})
}

// SearchBookings handles POST /api/v1/bookings/search.
func (h *Handlers) SearchBookings(w http.ResponseWriter, r *http.Request) {
	var req booking.SearchRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	view, err := h.pages.Booking.Search(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetPreferences handles GET /api/v1/preferences.
func (h *Handlers) GetPreferences(w http.ResponseWriter, r *http.Request) {
	d, err := h.pages.Preferences.Display(r.Context(), ClientID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// PutPreferences handles PUT /api/v1/preferences.
func (h *Handlers) PutPreferences(w http.ResponseWriter, r *http.Request) {
	var d page.Display
	if err := decodeJSON(r, &d); err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.pages.Preferences.UpdateDisplay(r.Context(), ClientID(r.Context()), d)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Analytics handles GET /api/v1/analytics.
func (h *Handlers) Analytics(w http.ResponseWriter, r *http.Request) {
	exp, err := h.pages.Preferences.Analytics(r.Context(), ClientID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if boolParam(r, "download") {
		w.Header().Set("Content-Disposition", `attachment; filename="travel_agent_analytics.json"`)
	}
	writeJSON(w, http.StatusOK, exp)
}

// ClearAnalytics handles DELETE /api/v1/analytics.
func (h *Handlers) ClearAnalytics(w http.ResponseWriter, r *http.Request) {
	notices, err := h.pages.Preferences.ClearAnalytics(r.Context(), ClientID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notices": notices})
}

type eventRequest struct {
	Event string            `json:"event"`
	Data  map[string]string `json:"data"`
}

// TrackEvent handles POST /api/v1/events.
func (h *Handlers) TrackEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.pages.Preferences.TrackEvent(r.Context(), ClientID(r.Context()), req.Event, req.Data); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

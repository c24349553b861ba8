package analysis

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/adapters"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/metrics"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/api"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/analyzer"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/delivery"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/history"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/report"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/reviews"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

var (
	// ErrEmailDisabled is returned when no report sender is configured.
	ErrEmailDisabled = errors.New("e-mail delivery is not configured")
	// ErrHistoryDisabled is returned when analysis history is not persisted.
	ErrHistoryDisabled = errors.New("analysis history is not configured")
)

type Handler struct {
	analyzer  analyzer.Service
	fetcher   reviews.Fetcher
	renderers report.Registry
	sender    delivery.ReportSender
	history   history.Service
	metrics   *metrics.Metrics
	defaults  analyzer.Defaults
}

// NewHandler wires the API handlers. sender and hist may be nil when their
// features are disabled.
func NewHandler(
	svc analyzer.Service,
	fetcher reviews.Fetcher,
	renderers report.Registry,
	sender delivery.ReportSender,
	hist history.Service,
	m *metrics.Metrics,
	defaults analyzer.Defaults,
) *Handler {
	return &Handler{
		analyzer:  svc,
		fetcher:   fetcher,
		renderers: renderers,
		sender:    sender,
		history:   hist,
		metrics:   m,
		defaults:  defaults,
	}
}

func (h *Handler) SearchApps(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		h.writeError(w, r, &domain.InvalidConfigurationError{Field: "q", Value: query, Reason: "search query is required"})
		return
	}

	apps, err := h.fetcher.Search(ctx, query, h.locale(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response := make([]api.AppSummary, 0, len(apps))
	for _, a := range apps {
		response = append(response, adapters.MapAppSummaryDomainToApi(a))
	}
	h.writeJSON(w, r, http.StatusOK, response)
}

func (h *Handler) GetApp(w http.ResponseWriter, r *http.Request) {
	ref, err := h.appRef(r, chi.URLParam(r, "app"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	details, err := h.fetcher.FetchDetails(r.Context(), ref)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, adapters.MapAppDomainToApi(details))
}

func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	result, err := h.analyze(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, adapters.MapAnalysisDomainToApi(result))
}

func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	renderer, err := h.renderers.Get(format)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.analyze(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	body, err := renderer.Render(result)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.countReport(format)
	h.writeFile(w, r, renderer.ContentType(), renderer.FileName(result), body)
}

func (h *Handler) EmailReport(w http.ResponseWriter, r *http.Request) {
	if h.sender == nil {
		h.writeError(w, r, ErrEmailDisabled)
		return
	}

	var req api.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, &domain.InvalidConfigurationError{Field: "body", Value: "", Reason: "invalid JSON body"})
		return
	}
	if !strings.Contains(req.To, "@") {
		h.writeError(w, r, &domain.InvalidConfigurationError{Field: "to", Value: req.To, Reason: "a valid e-mail address is required"})
		return
	}

	result, err := h.analyze(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.sender.Send(r.Context(), result, delivery.Recipient{Name: req.Name, Address: req.To}); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusAccepted, api.EmailResponse{Status: "sent", Recipient: req.To, Analysis: result.ID})
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		h.writeError(w, r, ErrHistoryDisabled)
		return
	}

	ref, err := h.appRef(r, chi.URLParam(r, "app"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	limit, err := intParam(r.URL.Query(), "limit", 0)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	records, err := h.history.List(r.Context(), ref.ID, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response := make([]api.AnalysisRecord, 0, len(records))
	for _, rec := range records {
		response = append(response, adapters.MapAnalysisRecordDomainToApi(rec))
	}
	h.writeJSON(w, r, http.StatusOK, response)
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	result, err := h.compare(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, adapters.MapComparisonDomainToApi(result))
}

func (h *Handler) CompareReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.compare(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	body, err := report.ComparisonPDF(result)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.countReport("comparison_pdf")
	h.writeFile(w, r, "application/pdf", report.ComparisonFileName(result), body)
}

func (h *Handler) analyze(r *http.Request) (*domain.Analysis, error) {
	req, err := h.request(r, chi.URLParam(r, "app"))
	if err != nil {
		return nil, err
	}
	return h.analyzer.Analyze(r.Context(), req)
}

func (h *Handler) compare(r *http.Request) (*domain.Comparison, error) {
	q := r.URL.Query()
	left, err := h.request(r, q.Get("left"))
	if err != nil {
		return nil, renameAppField(err, "left")
	}
	right, err := h.request(r, q.Get("right"))
	if err != nil {
		return nil, renameAppField(err, "right")
	}
	return h.analyzer.Compare(r.Context(), left, right)
}

func renameAppField(err error, field string) error {
	var cfgErr *domain.InvalidConfigurationError
	if errors.As(err, &cfgErr) && cfgErr.Field == "app" {
		cfgErr.Field = field
	}
	return err
}

func (h *Handler) countReport(format string) {
	if h.metrics != nil {
		h.metrics.Reports.WithLabelValues(format).Inc()
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func (h *Handler) writeFile(w http.ResponseWriter, r *http.Request, contentType, name string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("file", name).
			Msg("failed to write report")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	logger := zerolog.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		logger.Warn().Err(err).Int("status", status).Msg("request rejected")
	}
	h.writeJSON(w, r, status, api.Error{Error: err.Error()})
}

// StatusFor maps domain errors onto HTTP status codes.
func StatusFor(err error) int {
	var (
		cfgErr      *domain.InvalidConfigurationError
		notFoundErr *domain.AppNotFoundError
		timeoutErr  *domain.FetchTimeoutError
	)
	switch {
	case errors.As(err, &cfgErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &timeoutErr):
		return http.StatusGatewayTimeout
	case errors.Is(err, ErrEmailDisabled), errors.Is(err, ErrHistoryDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

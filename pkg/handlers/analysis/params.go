package analysis

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/analyzer"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/reviews"
)

const dateLayout = "2006-01-02"

func (h *Handler) locale(r *http.Request) domain.Locale {
	l := h.defaults.Locale
	if c := strings.TrimSpace(r.URL.Query().Get("country")); c != "" {
		l.Country = strings.ToLower(c)
	}
	if lang := strings.TrimSpace(r.URL.Query().Get("lang")); lang != "" {
		l.Language = strings.ToLower(lang)
	}
	return l
}

func (h *Handler) appRef(r *http.Request, raw string) (domain.AppRef, error) {
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	id, err := reviews.ResolveAppID(raw)
	if err != nil {
		return domain.AppRef{}, err
	}
	return domain.AppRef{ID: id, Locale: h.locale(r)}, nil
}

// request builds an analyzer request from the app id and query parameters.
func (h *Handler) request(r *http.Request, rawApp string) (analyzer.Request, error) {
	ref, err := h.appRef(r, rawApp)
	if err != nil {
		return analyzer.Request{}, err
	}

	q := r.URL.Query()
	req := analyzer.Request{
		App:        ref,
		MaxReviews: h.defaults.MaxReviews,
		Thresholds: h.defaults.Thresholds,
	}

	if req.MaxReviews, err = intParam(q, "max", req.MaxReviews); err != nil {
		return req, err
	}
	if req.MaxReviews < 1 {
		return req, &domain.InvalidConfigurationError{Field: "max", Value: req.MaxReviews, Reason: "must be at least 1"}
	}
	if req.Thresholds.PositiveCutoff, err = floatParam(q, "positive_cutoff", req.Thresholds.PositiveCutoff); err != nil {
		return req, err
	}
	if req.Thresholds.NegativeCutoff, err = floatParam(q, "negative_cutoff", req.Thresholds.NegativeCutoff); err != nil {
		return req, err
	}
	if req.Thresholds.RiskAlertPercentage, err = floatParam(q, "risk_alert", req.Thresholds.RiskAlertPercentage); err != nil {
		return req, err
	}
	if req.Filter, err = filterParams(q); err != nil {
		return req, err
	}
	return req, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &domain.InvalidConfigurationError{Field: name, Value: raw, Reason: "must be an integer"}
	}
	return v, nil
}

func floatParam(q url.Values, name string, def float64) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &domain.InvalidConfigurationError{Field: name, Value: raw, Reason: "must be a number"}
	}
	return v, nil
}

func filterParams(q url.Values) (domain.ReviewFilter, error) {
	var f domain.ReviewFilter
	if raw := q.Get("labels"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			l, err := domain.ParseLabel(part)
			if err != nil {
				return f, &domain.InvalidConfigurationError{Field: "labels", Value: part, Reason: err.Error()}
			}
			f.Labels = append(f.Labels, l)
		}
	}

	var err error
	if f.From, err = dateParam(q, "from"); err != nil {
		return f, err
	}
	if f.To, err = dateParam(q, "to"); err != nil {
		return f, err
	}
	return f, nil
}

func dateParam(q url.Values, name string) (time.Time, error) {
	raw := q.Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, &domain.InvalidConfigurationError{
			Field:  name,
			Value:  raw,
			Reason: fmt.Sprintf("invalid date format, expected %s", "YYYY-MM-DD"),
		}
	}
	return t, nil
}

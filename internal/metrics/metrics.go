// Package metrics holds the Prometheus instruments of the formcheck server.
// Collectors are registered with the global registry, so mounting
// promhttp.Handler() is enough to expose them.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-formcheck/components/formcheck"
	"github.com/goliatone/go-formcheck/pkg/orchestrator"
)

const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
	ResultError   = "error"

	// UnknownForm replaces form ids the validator does not know, keeping the
	// form label bounded by the configured forms.
	UnknownForm = "unknown"
)

var (
	ValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "formcheck_validations_total",
			Help: "Validate requests by form and outcome.",
		}, []string{"form", "result"})

	FieldErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "formcheck_field_errors_total",
			Help: "Field errors reported by validate requests.",
		}, []string{"form"})

	ValidationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "formcheck_validation_duration_seconds",
			Help:    "Time spent validating a snapshot.",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
		}, []string{"form"})
)

func init() {
	prometheus.MustRegister(
		ValidationsTotal,
		FieldErrorsTotal,
		ValidationDuration,
	)
}

// Observe records one validation event.
func Observe(e formcheck.Event) {
	result := ResultValid
	switch {
	case e.Err != nil:
		result = ResultError
	case !e.Result.Valid:
		result = ResultInvalid
	}
	form := e.FormID
	if errors.Is(e.Err, orchestrator.ErrFormNotFound) {
		form = UnknownForm
	}
	ValidationsTotal.WithLabelValues(form, result).Inc()
	if n := len(e.Result.Errors); n > 0 {
		FieldErrorsTotal.WithLabelValues(form).Add(float64(n))
	}
	ValidationDuration.WithLabelValues(form).Observe(e.Duration.Seconds())
}

// Observer adapts Observe to the HTTP component hook.
func Observer() formcheck.Observer {
	return Observe
}

package workout

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/briangreenhill/fittrack/internal/metrics"
	"go.uber.org/multierr"
)

type Service struct {
	logger  *slog.Logger
	metrics *metrics.Manager
}

func NewService(logger *slog.Logger, metricsManager *metrics.Manager) *Service {
	return &Service{
		logger:  logger,
		metrics: metricsManager,
	}
}

// Result is a successfully summarized package of a batch.
type Result struct {
	Index   int
	Package Package
	Report  Report
}

// Summarize builds the workout for tag and returns its report.
func (s *Service) Summarize(tag string, payload []float64) (Report, error) {
	w, err := Create(tag, payload)
	if err != nil {
		s.recordFailure(tag, err)
		return Report{}, err
	}

	report, err := Summarize(w)
	if err != nil {
		s.recordFailure(tag, err)
		return Report{}, err
	}

	if s.metrics != nil {
		s.metrics.CounterWorkouts.WithLabelValues(report.TrainingType).Inc()
		s.metrics.HistDistance.WithLabelValues(report.TrainingType).Observe(report.Distance)
		s.metrics.HistCalories.WithLabelValues(report.TrainingType).Observe(report.Calories)
	}
	s.logger.Debug("Summarized workout",
		slog.String("type", report.TrainingType),
		slog.Float64("distance", report.Distance),
		slog.Float64("calories", report.Calories))

	return report, nil
}

// SummarizeAll processes every package independently. Failed packages are
// skipped and their errors combined, unless strict is set, in which case the
// first failure stops the batch.
func (s *Service) SummarizeAll(packages []Package, strict bool) ([]Result, error) {
	var results []Result
	var errs error
	for i, p := range packages {
		report, err := s.Summarize(p.Tag, p.Payload)
		if err != nil {
			err = fmt.Errorf("package %d (%s): %w", i, p.Tag, err)
			if strict {
				return results, err
			}
			errs = multierr.Append(errs, err)
			continue
		}
		results = append(results, Result{Index: i, Package: p, Report: report})
	}

	return results, errs
}

func (s *Service) recordFailure(tag string, err error) {
	reason := FailureReason(err)
	if s.metrics != nil {
		s.metrics.CounterFailedWorkouts.WithLabelValues(reason).Inc()
	}
	s.logger.Warn("Error summarizing workout",
		slog.String("tag", tag),
		slog.String("reason", reason),
		slog.Any("error", err))
}

// FailureReason names the kind of err for logs and metric labels.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrUnknownModality):
		return "unknown_modality"
	case errors.Is(err, ErrMalformedPayload):
		return "malformed_payload"
	case errors.Is(err, ErrInvalidDuration):
		return "invalid_duration"
	case errors.Is(err, ErrUnimplementedOperation):
		return "unimplemented_operation"
	default:
		return "other"
	}
}

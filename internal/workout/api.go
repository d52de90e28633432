package workout

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/briangreenhill/fittrack/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type workoutResponse struct {
	Report
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewAPI(logger *slog.Logger, workoutService *Service, metricsManager *metrics.Manager, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("POST /workouts", countRequests(metricsManager, handleCreateWorkout(logger, workoutService)))
	mux.Handle("GET /workouts/reference", countRequests(metricsManager, handleReferenceWorkouts(logger, workoutService)))
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return mux
}

func handleCreateWorkout(logger *slog.Logger, workoutService *Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p Package
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			logger.Error("Error decoding workout package", slog.Any("error", err))
			writeJSON(logger, w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		report, err := workoutService.Summarize(p.Tag, p.Payload)
		if err != nil {
			writeJSON(logger, w, statusFor(err), errorResponse{Error: err.Error()})
			return
		}

		writeJSON(logger, w, http.StatusOK, workoutResponse{Report: report, Message: report.Message()})
	})
}

func handleReferenceWorkouts(logger *slog.Logger, workoutService *Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		results, err := workoutService.SummarizeAll(ReferencePackages(), true)
		if err != nil {
			logger.Error("Error summarizing reference workouts", slog.Any("error", err))
			writeJSON(logger, w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}

		resp := make([]workoutResponse, 0, len(results))
		for _, res := range results {
			resp = append(resp, workoutResponse{Report: res.Report, Message: res.Report.Message()})
		}
		writeJSON(logger, w, http.StatusOK, resp)
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnknownModality):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrMalformedPayload), errors.Is(err, ErrInvalidDuration):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(logger *slog.Logger, w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Error("Error encoding response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Error("Error writing response", slog.Any("error", err))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func countRequests(metricsManager *metrics.Manager, next http.Handler) http.Handler {
	if metricsManager == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		metricsManager.CounterRequests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
	})
}

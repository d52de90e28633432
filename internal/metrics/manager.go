package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterWorkouts       *prometheus.CounterVec
	CounterFailedWorkouts *prometheus.CounterVec
	CounterRequests       *prometheus.CounterVec

	// histograms
	HistDistance *prometheus.HistogramVec
	HistCalories *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("fittrack", "test", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("fittrack", "test", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterWorkouts := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts",
		Help:      "The total number of summarized workouts",
	}, []string{"modality"})
	counterFailedWorkouts := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "failed_workouts",
		Help:      "The total number of workouts that could not be summarized",
	}, []string{"reason"})
	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming API requests",
	}, []string{"method", "status"})

	histDistance := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "distance_km",
		Help:      "Distance of summarized workouts in km",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 21.1, 42.2},
	}, []string{"modality"})
	histCalories := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "calories_kcal",
		Help:      "Energy spent in summarized workouts in kcal",
		Buckets:   prometheus.LinearBuckets(100, 150, 8),
	}, []string{"modality"})

	return &Manager{
		CounterWorkouts:       counterWorkouts,
		CounterFailedWorkouts: counterFailedWorkouts,
		CounterRequests:       counterRequests,
		HistDistance:          histDistance,
		HistCalories:          histCalories,
	}
}

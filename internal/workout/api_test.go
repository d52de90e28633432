package workout_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/briangreenhill/fittrack/internal/metrics"
	"github.com/briangreenhill/fittrack/internal/workout"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestMain will run goleak after all tests have been run in the package
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type apiReport struct {
	TrainingType string  `json:"training_type"`
	Duration     float64 `json:"duration"`
	Distance     float64 `json:"distance"`
	Speed        float64 `json:"speed"`
	Calories     float64 `json:"calories"`
	Message      string  `json:"message"`
}

func newTestAPI() (http.Handler, *metrics.Manager) {
	m, reg := metrics.NewTestManagerAndRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return workout.NewAPI(logger, workout.NewService(logger, m), m, reg), m
}

func postWorkout(t *testing.T, api http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/workouts", strings.NewReader(body))
	rr := httptest.NewRecorder()
	api.ServeHTTP(rr, req)
	return rr
}

func TestAPI_CreateWorkout(t *testing.T) {
	api, m := newTestAPI()

	rr := postWorkout(t, api, `{"tag":"RUN","payload":[15000,1,75]}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp apiReport
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Running", resp.TrainingType)
	assert.InDelta(t, 9.75, resp.Distance, 1e-9)
	assert.InDelta(t, 797.805, resp.Calories, 1e-6)
	assert.Equal(t, "Тип тренировки: Running; Длительность: 1.000 ч.; Дистанция: 9.750 км; Ср. скорость: 9.750 км/ч; Потрачено ккал: 797.805.", resp.Message)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterRequests.WithLabelValues(http.MethodPost, "200")))
}

func TestAPI_CreateWorkout_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"invalid json", `{"tag":`, http.StatusBadRequest},
		{"unknown modality", `{"tag":"XYZ","payload":[1,1,1]}`, http.StatusUnprocessableEntity},
		{"malformed payload", `{"tag":"RUN","payload":[1,1]}`, http.StatusBadRequest},
		{"zero duration", `{"tag":"SWM","payload":[720,0,80,25,40]}`, http.StatusBadRequest},
		{"infinite speed", `{"tag":"RUN","payload":[15000,1e-320,75]}`, http.StatusBadRequest},
		{"infinite calories", `{"tag":"SWM","payload":[720,1,80,1e308,40]}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, _ := newTestAPI()
			rr := postWorkout(t, api, tt.body)
			require.Equal(t, tt.status, rr.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestAPI_ReferenceWorkouts(t *testing.T) {
	api, _ := newTestAPI()

	req := httptest.NewRequest(http.MethodGet, "/workouts/reference", nil)
	rr := httptest.NewRecorder()
	api.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp []apiReport
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp, 3)
	assert.Equal(t, "Swimming", resp[0].TrainingType)
	assert.Equal(t, "Running", resp[1].TrainingType)
	assert.Equal(t, "WalkingWithLoad", resp[2].TrainingType)
	assert.InDelta(t, 336.0, resp[0].Calories, 1e-9)
}

func TestAPI_Metrics(t *testing.T) {
	api, _ := newTestAPI()
	postWorkout(t, api, `{"tag":"WLK","payload":[9000,1,75,180]}`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	api.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `fittrack_test_workouts{modality="WalkingWithLoad"} 1`)
}

func TestAPI_MethodNotAllowed(t *testing.T) {
	api, _ := newTestAPI()

	req := httptest.NewRequest(http.MethodGet, "/workouts", nil)
	rr := httptest.NewRecorder()
	api.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestCLI_RunAPI_StopsOnCancel(t *testing.T) {
	m, reg := metrics.NewTestManagerAndRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cli := workout.NewCLI(workout.CLIParams{
		Writer:         io.Discard,
		Logger:         logger,
		WorkoutService: workout.NewService(logger, m),
		Addr:           "127.0.0.1:0",
		Metrics:        m,
		Gatherer:       reg,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- cli.RunAPI(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("api did not shut down")
	}
}

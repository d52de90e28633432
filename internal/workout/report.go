package workout

import (
	"fmt"
	"math"
)

// Report is the summary of one workout, ready for display.
type Report struct {
	TrainingType string  `json:"training_type"`
	Duration     float64 `json:"duration"`
	Distance     float64 `json:"distance"`
	Speed        float64 `json:"speed"`
	Calories     float64 `json:"calories"`
}

// Summarize computes distance, speed and calories of w.
func Summarize(w Workout) (Report, error) {
	calories, err := w.Calories()
	if err != nil {
		return Report{}, fmt.Errorf("summarizing %s: %w", w.Name(), err)
	}

	report := Report{
		TrainingType: w.Name(),
		Duration:     w.Duration(),
		Distance:     w.Distance(),
		Speed:        w.MeanSpeed(),
		Calories:     calories,
	}
	for _, v := range []struct {
		field string
		value float64
	}{
		{"distance", report.Distance},
		{"speed", report.Speed},
		{"calories", report.Calories},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return Report{}, fmt.Errorf("%w: %s %s is %v", ErrMalformedPayload, w.Name(), v.field, v.value)
		}
	}

	return report, nil
}

// Message renders the report as a single line with three decimal places.
func (r Report) Message() string {
	return fmt.Sprintf("Тип тренировки: %s; Длительность: %.3f ч.; Дистанция: %.3f км; Ср. скорость: %.3f км/ч; Потрачено ккал: %.3f.",
		r.TrainingType, r.Duration, r.Distance, r.Speed, r.Calories)
}

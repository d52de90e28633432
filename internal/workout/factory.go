package workout

import (
	"fmt"
	"math"
)

// Modality tags as sent by the tracker.
const (
	TagSwimming = "SWM"
	TagRunning  = "RUN"
	TagWalking  = "WLK"
)

// Create builds the workout for tag from the tracker payload. Payload values
// are bound by position:
//
//	SWM: action, duration, weight, pool length, pool laps
//	RUN: action, duration, weight
//	WLK: action, duration, weight, height
func Create(tag string, payload []float64) (Workout, error) {
	var arity int
	switch tag {
	case TagSwimming:
		arity = 5
	case TagRunning:
		arity = 3
	case TagWalking:
		arity = 4
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModality, tag)
	}

	if len(payload) != arity {
		return nil, fmt.Errorf("%w: %s expects %d values, got %d", ErrMalformedPayload, tag, arity, len(payload))
	}
	for i, v := range payload {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: value %d is not finite", ErrMalformedPayload, i)
		}
	}

	action, err := count(payload[0], "action")
	if err != nil {
		return nil, err
	}
	duration, weight := payload[1], payload[2]

	// Constructors return typed pointers; keep a failed build from leaking a
	// non-nil Workout holding a nil pointer.
	var w Workout
	switch tag {
	case TagSwimming:
		laps, err := count(payload[4], "pool laps")
		if err != nil {
			return nil, err
		}
		s, err := NewSwimming(action, duration, weight, payload[3], laps)
		if err != nil {
			return nil, err
		}
		w = s
	case TagWalking:
		wl, err := NewWalkingWithLoad(action, duration, weight, payload[3])
		if err != nil {
			return nil, err
		}
		w = wl
	default:
		r, err := NewRunning(action, duration, weight)
		if err != nil {
			return nil, err
		}
		w = r
	}
	return w, nil
}

// count converts a payload value that must hold a non-negative whole number.
func count(v float64, field string) (int, error) {
	if v < 0 || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s must be a non-negative whole number, got %v", ErrMalformedPayload, field, v)
	}
	return int(v), nil
}

package workout

import (
	"fmt"
	"math"

	"github.com/tkrajina/gpxgo/gpx"
)

// GPXOptions carries the body metrics a GPX track does not record.
type GPXOptions struct {
	WeightKg float64
	// HeightCm turns the track into a WLK package when set.
	HeightCm float64
}

// SampleFromGPX converts a recorded track into a tracker package. The step
// count is derived from the moving distance and the standard step length.
func SampleFromGPX(data []byte, opts GPXOptions) (Package, error) {
	if opts.WeightKg <= 0 {
		return Package{}, fmt.Errorf("%w: weight must be positive, got %v kg", ErrMalformedPayload, opts.WeightKg)
	}

	g, err := gpx.ParseBytes(data)
	if err != nil {
		return Package{}, fmt.Errorf("parsing gpx: %w", err)
	}

	moving := g.MovingData()
	steps := math.Round(moving.MovingDistance / LenStep)
	hours := moving.MovingTime / 3600

	if opts.HeightCm > 0 {
		return Package{Tag: TagWalking, Payload: []float64{steps, hours, opts.WeightKg, opts.HeightCm}}, nil
	}
	return Package{Tag: TagRunning, Payload: []float64{steps, hours, opts.WeightKg}}, nil
}

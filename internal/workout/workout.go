package workout

import "fmt"

const (
	// LenStep is the length of one step in metres.
	LenStep = 0.65
	// LenStroke is the distance covered by one swimming stroke in metres.
	LenStroke = 1.38

	// MInKm is the number of metres in a kilometre.
	MInKm = 1000
	// MinInH is the number of minutes in an hour.
	MinInH = 60
	// CmInM is the number of centimetres in a metre.
	CmInM = 100
)

const (
	runCaloriesSpeedMultiplier = 18
	runCaloriesSpeedShift      = 1.79

	walkCaloriesWeightMultiplier      = 0.035
	walkCaloriesSpeedHeightMultiplier = 0.029
	kmhInMsec                         = 0.278

	swimCaloriesSpeedShift = 1.1
	swimCaloriesMultiplier = 2
)

// Workout is a completed training session that can be summarized.
type Workout interface {
	Name() string
	Duration() float64
	Distance() float64
	MeanSpeed() float64
	Calories() (float64, error)
}

// Training holds the readings every modality shares. It has no calorie
// formula of its own. Fields are fixed once constructed.
type Training struct {
	action   int
	hours    float64
	weightKg float64
	lenStep  float64
}

// NewTraining builds the shared part of a workout.
func NewTraining(action int, hours, weightKg float64) (*Training, error) {
	if hours <= 0 {
		return nil, fmt.Errorf("%w: got %v h", ErrInvalidDuration, hours)
	}
	return &Training{
		action:   action,
		hours:    hours,
		weightKg: weightKg,
		lenStep:  LenStep,
	}, nil
}

func (t *Training) Name() string { return "Training" }

func (t *Training) Duration() float64 { return t.hours }

// Distance returns the distance in km.
func (t *Training) Distance() float64 {
	return float64(t.action) * t.lenStep / MInKm
}

// MeanSpeed returns the average speed in km/h.
func (t *Training) MeanSpeed() float64 {
	return t.Distance() / t.hours
}

func (t *Training) Calories() (float64, error) {
	return 0, ErrUnimplementedOperation
}

// Running is a run measured in steps.
type Running struct {
	Training
}

func NewRunning(action int, hours, weightKg float64) (*Running, error) {
	t, err := NewTraining(action, hours, weightKg)
	if err != nil {
		return nil, err
	}
	return &Running{Training: *t}, nil
}

func (r *Running) Name() string { return "Running" }

func (r *Running) Calories() (float64, error) {
	return (runCaloriesSpeedMultiplier*float64(r.action)*r.lenStep/MInKm/r.hours +
		runCaloriesSpeedShift) * r.weightKg / MInKm * r.hours * MinInH, nil
}

// WalkingWithLoad is a sports walk, where the walker's height affects the
// energy spent.
type WalkingWithLoad struct {
	Training
	heightM float64
}

func NewWalkingWithLoad(action int, hours, weightKg, heightCm float64) (*WalkingWithLoad, error) {
	if heightCm <= 0 {
		return nil, fmt.Errorf("%w: height must be positive, got %v cm", ErrMalformedPayload, heightCm)
	}
	t, err := NewTraining(action, hours, weightKg)
	if err != nil {
		return nil, err
	}
	return &WalkingWithLoad{Training: *t, heightM: heightCm / CmInM}, nil
}

func (w *WalkingWithLoad) Name() string { return "WalkingWithLoad" }

func (w *WalkingWithLoad) Calories() (float64, error) {
	speedMs := w.MeanSpeed() * kmhInMsec
	return (walkCaloriesWeightMultiplier*w.weightKg +
		speedMs*speedMs/w.heightM*walkCaloriesSpeedHeightMultiplier*w.weightKg) *
		w.hours * MinInH, nil
}

// Swimming is a pool session. Action counts strokes, and the speed comes from
// the pool geometry.
type Swimming struct {
	Training
	poolLength float64
	poolCount  int
}

func NewSwimming(action int, hours, weightKg, poolLength float64, poolCount int) (*Swimming, error) {
	if poolLength <= 0 {
		return nil, fmt.Errorf("%w: pool length must be positive, got %v m", ErrMalformedPayload, poolLength)
	}
	t, err := NewTraining(action, hours, weightKg)
	if err != nil {
		return nil, err
	}
	t.lenStep = LenStroke
	return &Swimming{Training: *t, poolLength: poolLength, poolCount: poolCount}, nil
}

func (s *Swimming) Name() string { return "Swimming" }

// MeanSpeed returns the average speed in km/h over the swum pool lengths.
func (s *Swimming) MeanSpeed() float64 {
	return s.poolLength * float64(s.poolCount) / MInKm / s.hours
}

func (s *Swimming) Calories() (float64, error) {
	return (s.MeanSpeed() + swimCaloriesSpeedShift) * swimCaloriesMultiplier * s.weightKg * s.hours, nil
}

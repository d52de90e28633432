package workout

import "errors"

var (
	// ErrUnknownModality is returned by Create for a tag outside SWM, RUN and WLK.
	ErrUnknownModality = errors.New("unknown workout modality")
	// ErrMalformedPayload is returned when a payload does not fit the modality's fields.
	ErrMalformedPayload = errors.New("malformed workout payload")
	// ErrUnimplementedOperation is returned by Training.Calories. Every modality overrides it.
	ErrUnimplementedOperation = errors.New("operation is not implemented for the base training")
	// ErrInvalidDuration is returned when a workout lasts zero or negative hours.
	ErrInvalidDuration = errors.New("workout duration must be positive")
)

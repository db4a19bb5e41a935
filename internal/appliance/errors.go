package appliance

import "errors"

// Errors for caller input. State problems are reported through Outcome instead.
var (
	ErrUnknownChannel  = errors.New("unknown scale channel")
	ErrUnknownRecipe   = errors.New("unknown recipe")
	ErrUnknownFood     = errors.New("unknown food")
	ErrInvalidDuration = errors.New("countdown minutes must be positive")
	ErrInvalidConfig   = errors.New("invalid appliance config")
)

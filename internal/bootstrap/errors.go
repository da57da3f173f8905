package bootstrap

import (
	"errors"
	"fmt"
)

const (
	StepCollections = "collections"
	StepIndexes     = "indexes"
	StepAppUser     = "app_user"
	StepSeedPlaces  = "seed_places"
	StepSeedWeek    = "seed_week"
)

var (
	// ErrInvalidSeed is returned when a seed fixture fails to parse or validate.
	ErrInvalidSeed = errors.New("invalid seed data")

	// ErrNotReady is returned when verification finds missing collections or indexes.
	ErrNotReady = errors.New("database is not bootstrapped")
)

// StepError identifies the bootstrap step that failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("bootstrap step %s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func stepErr(step string, err error) error {
	return &StepError{Step: step, Err: err}
}

// FailedStep returns the step name carried by err, or "" when err did not come from a step.
func FailedStep(err error) string {
	var se *StepError
	if errors.As(err, &se) {
		return se.Step
	}
	return ""
}

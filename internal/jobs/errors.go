package jobs

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/watchair/watchair/internal/store"
	"github.com/watchair/watchair/internal/store/model"
)

var (
	// ErrJobAlreadyEnded is returned when ending a job that is no longer running.
	ErrJobAlreadyEnded = errors.New("job already ended")
	// ErrInvalidJobStatus is returned when a job is ended with a non-terminal status.
	ErrInvalidJobStatus = errors.New("invalid terminal job status")
)

type ErrInvalidJobSubtype struct {
	error
}

func NewErrInvalidJobSubtype(jobType model.JobType, subtype model.JobSubtype) *ErrInvalidJobSubtype {
	return &ErrInvalidJobSubtype{fmt.Errorf("subtype %s is not allowed for %s jobs", subtype, jobType)}
}

type ErrJobNotFound struct {
	error
}

func NewErrJobNotFound(id uuid.UUID) *ErrJobNotFound {
	return &ErrJobNotFound{fmt.Errorf("job %s not found", id)}
}

const UnknownErrorMessage = "Unknown error"

// ErrUnknown stands for a recovered panic value that is not an error.
var ErrUnknown = errors.New(UnknownErrorMessage)

// FailureMessage is the message stored on a FAILED job.
// Constraint violations keep the driver message so operators can see which key was rejected.
func FailureMessage(err error) string {
	if err == nil {
		return UnknownErrorMessage
	}

	var constraintErr *store.ConstraintError
	if errors.As(err, &constraintErr) && constraintErr.Message != "" {
		return constraintErr.Message
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return UnknownErrorMessage
}

// Recovered converts a recovered panic value into an error.
func Recovered(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return ErrUnknown
}

package service

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id uuid.UUID, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrDomainNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "domain")
}

func NewErrJobNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "job")
}

type ErrInvalidRequest struct {
	error
}

func NewErrInvalidRequest(format string, args ...any) *ErrInvalidRequest {
	return &ErrInvalidRequest{fmt.Errorf(format, args...)}
}

type ErrFileAlreadyExists struct {
	error
}

func NewErrFileAlreadyExists(name string) *ErrFileAlreadyExists {
	return &ErrFileAlreadyExists{fmt.Errorf("file %q already exists", name)}
}

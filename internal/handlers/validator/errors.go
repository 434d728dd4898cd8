package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ErrInvalidField struct {
	error
}

func NewErrInvalidField(format string, args ...any) *ErrInvalidField {
	return &ErrInvalidField{fmt.Errorf(format, args...)}
}

// toFieldError flattens validator errors into one message naming each failing field and rule.
func toFieldError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		msgs = append(msgs, fmt.Sprintf("field %q failed on the %q rule", fe.Field(), fe.Tag()))
	}
	return NewErrInvalidField("%s", strings.Join(msgs, ", "))
}

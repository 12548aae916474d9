package validator

import (
	"fmt"
	"strings"

	playground "github.com/go-playground/validator/v10"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/errors"
)

// Validator adapts go-playground/validator to echo's Validator interface.
type Validator struct {
	validate *playground.Validate
}

func New() *Validator {
	return &Validator{validate: playground.New(playground.WithRequiredStructEnabled())}
}

func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	if invalid, ok := err.(*playground.InvalidValidationError); ok {
		return errors.NewAppError(errors.ErrInternalServer, "validation setup error", invalid)
	}

	var msgs []string
	for _, fe := range err.(playground.ValidationErrors) {
		msgs = append(msgs, fmt.Sprintf("%s failed on %q", fe.Field(), fe.Tag()))
	}
	return errors.NewAppError(errors.ErrInvalidRequestData, strings.Join(msgs, "; "), err)
}

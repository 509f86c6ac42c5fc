package services

import (
	"errors"
	"fmt"
	"strings"

	"halal-directory/models"
)

// ErrNotFound matches every NotFoundError via errors.Is.
var ErrNotFound = errors.New("not found")

// NotFoundError reports an id with no matching record.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// FieldError is one failed rule on one form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every failed rule of a submission. Nothing is
// written when a service returns it.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add records a message, ignoring exact duplicates.
func (e *ValidationError) Add(field, message string) {
	for _, fe := range e.Errors {
		if fe.Field == field && fe.Message == message {
			return
		}
	}
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

// Messages returns just the message text, in order.
func (e *ValidationError) Messages() []string {
	out := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		out[i] = fe.Message
	}
	return out
}

func (e *ValidationError) orNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

// ConflictError is returned when a delete is blocked by records that still
// reference the target. Exactly one of the dependent slices is populated.
type ConflictError struct {
	Entity      string
	ID          string
	Restaurants []models.Restaurant
	Instances   []models.RestaurantInstance
}

func (e *ConflictError) Error() string {
	n, kind := len(e.Restaurants), "restaurant(s)"
	if len(e.Instances) > 0 {
		n, kind = len(e.Instances), "restaurant instance(s)"
	}
	return fmt.Sprintf("%s %q is still referenced by %d %s", e.Entity, e.ID, n, kind)
}

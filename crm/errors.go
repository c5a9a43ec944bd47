// ABOUTME: Error kinds raised by CRM mutations
// ABOUTME: ValidationError for bad fields, ReferenceError for dangling foreign keys
package crm

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation matches any *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
	// ErrReference matches any *ReferenceError via errors.Is.
	ErrReference = errors.New("reference not found")
)

// ValidationError reports required fields that are missing or invalid.
// The mutation that produced it was not applied.
type ValidationError struct {
	Entity string
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s required or invalid", e.Entity, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ReferenceError reports a foreign key that names no existing parent.
// The mutation that produced it was not applied.
type ReferenceError struct {
	Entity string // entity being written
	Field  string // foreign key field
	Parent string // entity the key should name
	ID     any
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %s %v: no such %s", e.Entity, e.Field, e.ID, e.Parent)
}

func (e *ReferenceError) Is(target error) bool {
	return target == ErrReference
}

func validate(entity string, problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Entity: entity, Fields: problems}
}

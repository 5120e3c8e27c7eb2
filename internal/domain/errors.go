package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors. Every typed error below reports errors.Is against exactly one of these.
var (
	ErrNotFound               = errors.New("resource not found")
	ErrDuplicate              = errors.New("duplicate resource")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrInvalidArgument        = errors.New("invalid argument")
)

// Resource names used in error messages.
const (
	ResourceVenue = "venue"
	ResourceEvent = "event"
)

// NotFoundError reports a missing venue or event, including missing cross-references.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFound returns a NotFoundError for the given resource and id.
func NewNotFound(resource string, id int64) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// DuplicateError reports a uniqueness violation on a resource field.
type DuplicateError struct {
	Resource string
	Field    string
	Value    string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Resource, e.Field, e.Value)
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// StateTransitionError reports a status change the state machine forbids.
type StateTransitionError struct {
	Resource string
	ID       int64
	From     string
	To       string
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("%s %d cannot transition from %s to %s", e.Resource, e.ID, e.From, e.To)
}

func (e *StateTransitionError) Is(target error) bool { return target == ErrInvalidStateTransition }

// ValidationError carries every field problem found in a single call.
// Keys are the external (JSON) field names.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records msg for field. The first message recorded for a field wins.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = msg
}

// Merge copies the fields of other into e.
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for k, v := range other.Fields {
		e.Add(k, v)
	}
}

// Empty reports whether no field problems were recorded.
func (e *ValidationError) Empty() bool { return e == nil || len(e.Fields) == 0 }

// OrNil returns e as an error, or nil when nothing was recorded.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid argument: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidArgument }

// InvalidField is shorthand for a ValidationError with a single field.
func InvalidField(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

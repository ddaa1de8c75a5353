package data

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind string

const (
	ErrorKindUnknown             ErrorKind = "unknown"
	ErrorKindValidation          ErrorKind = "validation"
	ErrorKindDuplicateEmail      ErrorKind = "duplicate_email"
	ErrorKindNotFound            ErrorKind = "not_found"
	ErrorKindPersistence         ErrorKind = "persistence"
	ErrorKindUnsupportedLanguage ErrorKind = "unsupported_language"
	ErrorKindMutateDisabled      ErrorKind = "mutate_disabled"
)

var (
	ErrInvalidEmployee     = errors.New("employee is invalid")
	ErrMissingFields       = errors.New("please fill in all required fields")
	ErrEmailInUse          = errors.New("email address is already in use")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrPersistence         = errors.New("failed to save data")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrMutateDisabled      = errors.New("mutation disabled")
)

// validation rules, the names double as keys under "validation." in the
// translation tables
const (
	RuleRequired              string = "required"
	RuleInvalidEmail          string = "invalidEmail"
	RuleInvalidPhone          string = "invalidPhone"
	RuleInvalidDate           string = "invalidDate"
	RuleInvalidBirthDate      string = "invalidBirthDate"
	RuleInvalidEmploymentDate string = "invalidEmploymentDate"
	RuleInvalidYearLength     string = "invalidYearLength"
)

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError is returned when an employee can't be saved as given, it
// matches ErrInvalidEmployee and, if any field is missing, ErrMissingFields
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if missing := e.MissingFields(); len(missing) > 0 {
		return fmt.Sprintf("%s: %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	var rules []string
	for _, f := range e.Fields {
		rules = append(rules, f.Field+" ("+f.Rule+")")
	}
	return fmt.Sprintf("%s: %s", ErrInvalidEmployee, strings.Join(rules, ", "))
}

func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrInvalidEmployee:
		return true
	case ErrMissingFields:
		return len(e.MissingFields()) > 0
	}
	return false
}

func (e *ValidationError) MissingFields() []string {
	var fields []string
	for _, f := range e.Fields {
		if f.Rule == RuleRequired {
			fields = append(fields, f.Field)
		}
	}
	return fields
}

type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("%s: %s", ErrEmailInUse, e.Email)
}

func (e *DuplicateEmailError) Is(target error) bool {
	return target == ErrEmailInUse
}

// PersistenceError wraps any failure to read or write a slot; Op is "read"
// or "write"
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s (%s %s): %s", ErrPersistence, e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func KindOf(err error) ErrorKind {
	switch {
	default:
		return ErrorKindUnknown
	case errors.Is(err, ErrInvalidEmployee):
		return ErrorKindValidation
	case errors.Is(err, ErrEmailInUse):
		return ErrorKindDuplicateEmail
	case errors.Is(err, ErrEmployeeNotFound):
		return ErrorKindNotFound
	case errors.Is(err, ErrPersistence):
		return ErrorKindPersistence
	case errors.Is(err, ErrUnsupportedLanguage):
		return ErrorKindUnsupportedLanguage
	case errors.Is(err, ErrMutateDisabled):
		return ErrorKindMutateDisabled
	}
}

func ErrorToResponse(err error) *ErrorResponse {
	var validationErr *ValidationError
	var duplicateErr *DuplicateEmailError

	response := &ErrorResponse{
		Error: err.Error(),
		Kind:  KindOf(err),
	}
	if errors.As(err, &validationErr) {
		response.Fields = validationErr.Fields
	}
	if errors.As(err, &duplicateErr) {
		response.Email = duplicateErr.Email
	}
	return response
}

// ErrorFromResponse rebuilds the typed error described by an error response
// so errors.Is and errors.As work across the wire
func ErrorFromResponse(response *ErrorResponse) error {
	switch response.Kind {
	default:
		return errors.New(response.Error)
	case ErrorKindValidation:
		return &ValidationError{Fields: response.Fields}
	case ErrorKindDuplicateEmail:
		return &DuplicateEmailError{Email: response.Email}
	case ErrorKindNotFound:
		return fmt.Errorf("%w: %s", ErrEmployeeNotFound, response.Error)
	case ErrorKindPersistence:
		return &PersistenceError{Op: "remote", Err: errors.New(response.Error)}
	case ErrorKindUnsupportedLanguage:
		return fmt.Errorf("%w: %s", ErrUnsupportedLanguage, response.Error)
	case ErrorKindMutateDisabled:
		return fmt.Errorf("%w: %s", ErrMutateDisabled, response.Error)
	}
}

package data_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/antonio-alexander/go-employee-store/internal/data"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cases := map[string]struct {
		err  error
		kind data.ErrorKind
	}{
		"validation":   {&data.ValidationError{Fields: []data.FieldError{{Field: data.FieldEmail, Rule: data.RuleInvalidEmail}}}, data.ErrorKindValidation},
		"duplicate":    {&data.DuplicateEmailError{Email: "ada@example.com"}, data.ErrorKindDuplicateEmail},
		"not_found":    {data.ErrEmployeeNotFound, data.ErrorKindNotFound},
		"persistence":  {&data.PersistenceError{Op: "write", Key: "employees", Err: errors.New("quota")}, data.ErrorKindPersistence},
		"language":     {data.ErrUnsupportedLanguage, data.ErrorKindUnsupportedLanguage},
		"mutate":       {data.ErrMutateDisabled, data.ErrorKindMutateDisabled},
		"unknown":      {errors.New("boom"), data.ErrorKindUnknown},
		"missing_only": {&data.ValidationError{Fields: []data.FieldError{{Field: data.FieldPhone, Rule: data.RuleRequired}}}, data.ErrorKindValidation},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c.kind, data.KindOf(c.err))
		})
	}
}

func TestValidationError(t *testing.T) {
	err := &data.ValidationError{Fields: []data.FieldError{
		{Field: data.FieldFirstName, Rule: data.RuleRequired},
		{Field: data.FieldPhone, Rule: data.RuleInvalidPhone},
	}}
	assert.ErrorIs(t, err, data.ErrInvalidEmployee)
	assert.ErrorIs(t, err, data.ErrMissingFields)
	assert.Equal(t, []string{data.FieldFirstName}, err.MissingFields())

	err = &data.ValidationError{Fields: []data.FieldError{
		{Field: data.FieldPhone, Rule: data.RuleInvalidPhone},
	}}
	assert.ErrorIs(t, err, data.ErrInvalidEmployee)
	assert.NotErrorIs(t, err, data.ErrMissingFields)
}

func TestPersistenceError(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := &data.PersistenceError{Op: "write", Key: "employees", Err: cause}
	assert.ErrorIs(t, err, data.ErrPersistence)
	assert.ErrorIs(t, err, cause)
}

func TestErrorResponse(t *testing.T) {
	validationErr := &data.ValidationError{Fields: []data.FieldError{
		{Field: data.FieldEmail, Rule: data.RuleRequired},
	}}
	response := data.ErrorToResponse(validationErr)
	assert.Equal(t, data.ErrorKindValidation, response.Kind)
	err := data.ErrorFromResponse(response)
	assert.ErrorIs(t, err, data.ErrMissingFields)
	var decoded *data.ValidationError
	if assert.True(t, errors.As(err, &decoded)) {
		assert.Equal(t, validationErr.Fields, decoded.Fields)
	}

	response = data.ErrorToResponse(&data.DuplicateEmailError{Email: "ada@example.com"})
	assert.Equal(t, "ada@example.com", response.Email)
	err = data.ErrorFromResponse(response)
	var duplicateErr *data.DuplicateEmailError
	if assert.True(t, errors.As(err, &duplicateErr)) {
		assert.Equal(t, "ada@example.com", duplicateErr.Email)
	}

	for _, sentinel := range []error{data.ErrEmployeeNotFound, data.ErrPersistence,
		data.ErrUnsupportedLanguage, data.ErrMutateDisabled} {
		err = data.ErrorFromResponse(data.ErrorToResponse(sentinel))
		assert.ErrorIs(t, err, sentinel)
	}

	err = data.ErrorFromResponse(data.ErrorToResponse(errors.New("boom")))
	assert.EqualError(t, err, "boom")
}

func TestEmployeeSearchParams(t *testing.T) {
	search := data.EmployeeSearch{Query: "ada", Page: 2, PageSize: 10, ViewMode: data.ViewModeList}
	params := search.ToParams()
	assert.Equal(t, "ada", params.Get(data.ParameterQuery))

	decoded := data.EmployeeSearch{}
	decoded.FromParams(params)
	assert.Equal(t, search, decoded)

	//empty and zero values aren't encoded
	search = data.EmployeeSearch{}
	assert.Empty(t, search.ToParams())

	decoded = data.EmployeeSearch{}
	decoded.FromParams(url.Values{"VIEW_MODE": {"TABLE"}, "page": {"x"}})
	assert.Equal(t, data.ViewModeTable, decoded.ViewMode)
	assert.Zero(t, decoded.Page)
}

func TestEmployee(t *testing.T) {
	employee := &data.Employee{FirstName: "Ayşe", LastName: "Yılmaz", Email: "ayse@example.com"}
	assert.Equal(t, "Ayşe Yılmaz", employee.FullName())

	employeeCopy := employee.Copy()
	employeeCopy.FirstName = "Can"
	assert.Equal(t, "Ayşe", employee.FirstName)

	bytes, err := employee.MarshalBinary()
	assert.Nil(t, err)
	decoded := &data.Employee{}
	err = decoded.UnmarshalBinary(bytes)
	assert.Nil(t, err)
	assert.Equal(t, employee, decoded)
}

func TestSeedEmployees(t *testing.T) {
	emails := make(map[string]struct{})
	ids := make(map[string]struct{})
	for _, employee := range data.SeedEmployees() {
		for _, field := range employee.RequiredFields() {
			assert.NotEmpty(t, field.Value, "seed %s missing %s", employee.Id, field.Name)
		}
		assert.NotContains(t, emails, employee.Email)
		assert.NotContains(t, ids, employee.Id)
		emails[employee.Email], ids[employee.Id] = struct{}{}, struct{}{}
	}
	assert.Len(t, emails, 6)
}

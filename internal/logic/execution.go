package logic

import (
	"regexp"
	"strings"
	"time"

	"github.com/antonio-alexander/go-employee-store/internal/data"
	"github.com/antonio-alexander/go-employee-store/internal/store"
)

var (
	reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	rePhone = regexp.MustCompile(`^[0-9]{10,}$`)
)

// Paginate returns the page-th page (1 based, clamped to the pages that
// exist) of employees; there's always at least one page
func Paginate(employees []*data.Employee, page, pageSize int) *data.EmployeePage {
	if pageSize <= 0 {
		pageSize = defaultPageSizeTable
	}
	total := len(employees)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	page = min(max(page, 1), totalPages)
	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	startPage := max(1, page-2)
	endPage := min(totalPages, startPage+4)
	pageNumbers := make([]int, 0, endPage-startPage+1)
	for i := startPage; i <= endPage; i++ {
		pageNumbers = append(pageNumbers, i)
	}
	return &data.EmployeePage{
		Employees:   append([]*data.Employee{}, employees[start:end]...),
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		Total:       total,
		PageNumbers: pageNumbers,
	}
}

func parseDate(value string) (time.Time, string) {
	if year, _, found := strings.Cut(strings.TrimPrefix(value, "+"), "-"); found && len(year) > 4 {
		return time.Time{}, data.RuleInvalidYearLength
	}
	t, err := time.Parse(data.DateLayout, value)
	if err != nil {
		return time.Time{}, data.RuleInvalidDate
	}
	return t, ""
}

// ValidateForm applies every rule the employee form enforces before a
// save: required fields, date sanity and email/phone formats
func ValidateForm(employee *data.Employee, now time.Time) error {
	var fields []data.FieldError
	var birthDate, employmentDate time.Time
	var birthRule, employmentRule string

	if err := store.ValidateRequired(employee); err != nil {
		fields = append(fields, err.(*data.ValidationError).Fields...)
	}
	if employee.DateOfBirth != "" {
		if birthDate, birthRule = parseDate(employee.DateOfBirth); birthRule != "" {
			fields = append(fields, data.FieldError{Field: data.FieldDateOfBirth, Rule: birthRule})
		}
	}
	if employee.DateOfEmployment != "" {
		if employmentDate, employmentRule = parseDate(employee.DateOfEmployment); employmentRule != "" {
			fields = append(fields, data.FieldError{Field: data.FieldDateOfEmployment, Rule: employmentRule})
		}
	}
	if !birthDate.IsZero() && birthDate.After(now) {
		fields = append(fields, data.FieldError{Field: data.FieldDateOfBirth, Rule: data.RuleInvalidBirthDate})
	}
	if !birthDate.IsZero() && !employmentDate.IsZero() && employmentDate.Before(birthDate) {
		fields = append(fields, data.FieldError{Field: data.FieldDateOfEmployment, Rule: data.RuleInvalidEmploymentDate})
	}
	if employee.Email != "" && !reEmail.MatchString(employee.Email) {
		fields = append(fields, data.FieldError{Field: data.FieldEmail, Rule: data.RuleInvalidEmail})
	}
	if employee.Phone != "" && !rePhone.MatchString(employee.Phone) {
		fields = append(fields, data.FieldError{Field: data.FieldPhone, Rule: data.RuleInvalidPhone})
	}
	if len(fields) > 0 {
		return &data.ValidationError{Fields: fields}
	}
	return nil
}

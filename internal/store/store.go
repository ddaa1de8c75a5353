package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/antonio-alexander/go-employee-store/internal"
	"github.com/antonio-alexander/go-employee-store/internal/data"
	"github.com/antonio-alexander/go-employee-store/internal/storage"
	"github.com/antonio-alexander/go-employee-store/internal/utilities"
)

// Store is the sole authority over the employees slot; employees returned
// are copies and can't be used to mutate the store
type Store interface {
	GetEmployees(ctx context.Context) ([]*data.Employee, error)
	GetEmployeeById(ctx context.Context, id string) (*data.Employee, error)
	SearchEmployees(ctx context.Context, query string) ([]*data.Employee, error)
	SaveEmployee(ctx context.Context, employee data.Employee) (*data.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
}

// IdGenerator creates the id assigned to an employee on its first save
type IdGenerator func() string

type employeeStore struct {
	sync.RWMutex
	storage   storage.Storage
	logger    utilities.Logger
	generate  IdGenerator
	employees []*data.Employee
	config    struct {
		seedDisabled bool
	}
}

// NewStore requires a storage.Storage parameter, a utilities.Logger and an
// IdGenerator are optional
func NewStore(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	Store
} {
	s := &employeeStore{
		logger:   utilities.NewNullLogger(),
		generate: internal.GenerateId,
	}
	for _, parameter := range parameters {
		switch p := parameter.(type) {
		case storage.Storage:
			s.storage = p
		case utilities.Logger:
			s.logger = p
		case IdGenerator:
			s.generate = p
		}
	}
	return s
}

func (s *employeeStore) Configure(envs map[string]string) error {
	if seedDisabled, ok := envs["STORE_SEED_DISABLED"]; ok {
		s.config.seedDisabled, _ = strconv.ParseBool(seedDisabled)
	}
	return nil
}

// Open loads the employees slot verbatim, if the slot is empty the seed
// employees are installed and persisted
func (s *employeeStore) Open(ctx context.Context) error {
	s.Lock()
	defer s.Unlock()

	value, err := s.storage.Read(ctx, storage.KeyEmployees)
	switch {
	default:
		return &data.PersistenceError{Op: "read", Key: storage.KeyEmployees, Err: err}
	case err == nil:
		var employees []*data.Employee

		if err := json.Unmarshal([]byte(value), &employees); err != nil {
			return &data.PersistenceError{Op: "read", Key: storage.KeyEmployees, Err: err}
		}
		s.employees = employees
		s.logger.Debug(ctx, "loaded %d employees", len(employees))
		return nil
	case errors.Is(err, storage.ErrKeyNotFound):
		employees := data.SeedEmployees()
		if s.config.seedDisabled {
			employees = []*data.Employee{}
		}
		if err := s.persist(ctx, employees); err != nil {
			return err
		}
		s.employees = employees
		s.logger.Debug(ctx, "installed %d seed employees", len(employees))
		return nil
	}
}

func (s *employeeStore) Close(ctx context.Context) error {
	return nil
}

// persist serializes employees into the employees slot, the in-memory
// collection must only be replaced once this succeeds
func (s *employeeStore) persist(ctx context.Context, employees []*data.Employee) error {
	bytes, err := json.Marshal(employees)
	if err != nil {
		return &data.PersistenceError{Op: "write", Key: storage.KeyEmployees, Err: err}
	}
	if err := s.storage.Write(ctx, storage.KeyEmployees, string(bytes)); err != nil {
		return &data.PersistenceError{Op: "write", Key: storage.KeyEmployees, Err: err}
	}
	return nil
}

func (s *employeeStore) indexOf(id string) int {
	for i, e := range s.employees {
		if e.Id == id {
			return i
		}
	}
	return -1
}

func (s *employeeStore) GetEmployees(ctx context.Context) ([]*data.Employee, error) {
	s.RLock()
	defer s.RUnlock()

	employees := make([]*data.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		employees = append(employees, e.Copy())
	}
	return employees, nil
}

// GetEmployeeById returns nil (and no error) when no employee has id
func (s *employeeStore) GetEmployeeById(ctx context.Context, id string) (*data.Employee, error) {
	s.RLock()
	defer s.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.employees[i].Copy(), nil
	}
	return nil, nil
}

func (s *employeeStore) SearchEmployees(ctx context.Context, query string) ([]*data.Employee, error) {
	s.RLock()
	defer s.RUnlock()

	employees := make([]*data.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if Matches(e, query) {
			employees = append(employees, e.Copy())
		}
	}
	return employees, nil
}

// SaveEmployee creates the employee if it has no id and replaces the
// employee with the same id otherwise; validate, mutate and persist happen
// under a single lock
func (s *employeeStore) SaveEmployee(ctx context.Context, employee data.Employee) (*data.Employee, error) {
	s.Lock()
	defer s.Unlock()

	if err := ValidateRequired(&employee); err != nil {
		return nil, err
	}
	if s.emailTaken(&employee) {
		return nil, &data.DuplicateEmailError{Email: employee.Email}
	}
	employees := make([]*data.Employee, len(s.employees), len(s.employees)+1)
	copy(employees, s.employees)
	switch employee.Id {
	case "":
		employee.Id = s.generate()
		for s.indexOf(employee.Id) >= 0 {
			employee.Id = s.generate()
		}
		employees = append(employees, &employee)
	default:
		i := s.indexOf(employee.Id)
		if i < 0 {
			return nil, data.ErrEmployeeNotFound
		}
		employees[i] = &employee
	}
	if err := s.persist(ctx, employees); err != nil {
		return nil, err
	}
	s.employees = employees
	return employee.Copy(), nil
}

// DeleteEmployee is a no-op (but still persists) if no employee has id
func (s *employeeStore) DeleteEmployee(ctx context.Context, id string) error {
	s.Lock()
	defer s.Unlock()

	employees := make([]*data.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if e.Id != id {
			employees = append(employees, e)
		}
	}
	if err := s.persist(ctx, employees); err != nil {
		return err
	}
	s.employees = employees
	return nil
}

func (s *employeeStore) emailTaken(employee *data.Employee) bool {
	for _, e := range s.employees {
		if e.Email == employee.Email && e.Id != employee.Id {
			return true
		}
	}
	return false
}

// Matches reports whether query is a case-insensitive substring of the
// employee's full name, email or department; an empty query matches all
func Matches(employee *data.Employee, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(employee.FullName()), q) ||
		strings.Contains(strings.ToLower(employee.Email), q) ||
		strings.Contains(strings.ToLower(employee.Department), q)
}

// ValidateRequired fails with a *data.ValidationError listing every
// required field that's empty
func ValidateRequired(employee *data.Employee) error {
	var fields []data.FieldError

	for _, f := range employee.RequiredFields() {
		if f.Value == "" {
			fields = append(fields, data.FieldError{Field: f.Name, Rule: data.RuleRequired})
		}
	}
	if len(fields) > 0 {
		return &data.ValidationError{Fields: fields}
	}
	return nil
}

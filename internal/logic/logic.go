package logic

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/antonio-alexander/go-employee-store/internal"
	"github.com/antonio-alexander/go-employee-store/internal/data"
	"github.com/antonio-alexander/go-employee-store/internal/i18n"
	"github.com/antonio-alexander/go-employee-store/internal/storage"
	"github.com/antonio-alexander/go-employee-store/internal/store"
	"github.com/antonio-alexander/go-employee-store/internal/utilities"
)

const (
	defaultPageSizeTable int = 12
	defaultPageSizeList  int = 8
	maxPageSize          int = 100
)

// Clock provides the current time for date validation
type Clock func() time.Time

type Logic interface {
	EmployeesList(ctx context.Context, search data.EmployeeSearch) (*data.EmployeePage, error)
	EmployeeRead(ctx context.Context, id string) (*data.Employee, error)
	EmployeeCreate(ctx context.Context, employee data.Employee) (*data.Employee, error)
	EmployeeUpdate(ctx context.Context, id string, employee data.Employee) (*data.Employee, error)
	EmployeeDelete(ctx context.Context, id string) error
	LanguageRead(ctx context.Context) (string, error)
	LanguageWrite(ctx context.Context, language string) (string, error)
}

type logic struct {
	sync.RWMutex
	store   store.Store
	storage storage.Storage
	logger  utilities.Logger
	clock   Clock
	config  struct {
		strictValidation bool
		mutateDisabled   bool
		pageSizeTable    int
		pageSizeList     int
	}
}

// NewLogic requires a store.Store and the storage.Storage holding the
// language preference
func NewLogic(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	Logic
} {
	l := &logic{
		logger: utilities.NewNullLogger(),
		clock:  time.Now,
	}
	l.config.strictValidation = true
	l.config.pageSizeTable = defaultPageSizeTable
	l.config.pageSizeList = defaultPageSizeList
	for _, parameter := range parameters {
		switch p := parameter.(type) {
		case store.Store:
			l.store = p
		case storage.Storage:
			l.storage = p
		case utilities.Logger:
			l.logger = p
		case Clock:
			l.clock = p
		}
	}
	return l
}

func (l *logic) Configure(envs map[string]string) error {
	l.Lock()
	defer l.Unlock()

	if strictValidation, ok := envs["LOGIC_STRICT_VALIDATION"]; ok {
		if b, err := strconv.ParseBool(strictValidation); err == nil {
			l.config.strictValidation = b
		}
	}
	if mutateDisabled, ok := envs["MUTATE_DISABLED"]; ok {
		l.config.mutateDisabled, _ = strconv.ParseBool(mutateDisabled)
	}
	if s, ok := envs["LOGIC_PAGE_SIZE_TABLE"]; ok {
		if i, err := strconv.Atoi(s); err == nil && i > 0 {
			l.config.pageSizeTable = i
		}
	}
	if s, ok := envs["LOGIC_PAGE_SIZE_LIST"]; ok {
		if i, err := strconv.Atoi(s); err == nil && i > 0 {
			l.config.pageSizeList = i
		}
	}
	return nil
}

func (l *logic) Open(ctx context.Context) error {
	l.RLock()
	defer l.RUnlock()

	if l.store == nil {
		return errors.New("logic: no store provided")
	}
	if l.storage == nil {
		return errors.New("logic: no storage provided")
	}
	if l.config.mutateDisabled {
		l.logger.Info(ctx, "mutation disabled")
	}
	return nil
}

func (l *logic) Close(ctx context.Context) error {
	return nil
}

func (l *logic) pageSize(search data.EmployeeSearch) int {
	l.RLock()
	defer l.RUnlock()

	switch {
	case search.PageSize > maxPageSize:
		return maxPageSize
	case search.PageSize > 0:
		return search.PageSize
	case search.ViewMode == data.ViewModeList:
		return l.config.pageSizeList
	default:
		return l.config.pageSizeTable
	}
}

func (l *logic) EmployeesList(ctx context.Context, search data.EmployeeSearch) (*data.EmployeePage, error) {
	employees, err := l.store.SearchEmployees(ctx, search.Query)
	if err != nil {
		return nil, err
	}
	page := Paginate(employees, search.Page, l.pageSize(search))
	l.logger.Trace(ctx, "listed page %d/%d for query %q", page.Page, page.TotalPages, search.Query)
	return page, nil
}

func (l *logic) EmployeeRead(ctx context.Context, id string) (*data.Employee, error) {
	employee, err := l.store.GetEmployeeById(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, data.ErrEmployeeNotFound
	}
	return employee, nil
}

func (l *logic) validate(employee *data.Employee) error {
	l.RLock()
	defer l.RUnlock()

	if !l.config.strictValidation {
		return nil
	}
	return ValidateForm(employee, l.clock())
}

func (l *logic) mutable() error {
	l.RLock()
	defer l.RUnlock()

	if l.config.mutateDisabled {
		return data.ErrMutateDisabled
	}
	return nil
}

func (l *logic) EmployeeCreate(ctx context.Context, employee data.Employee) (*data.Employee, error) {
	if err := l.mutable(); err != nil {
		return nil, err
	}
	employee.Id = ""
	if err := l.validate(&employee); err != nil {
		return nil, err
	}
	created, err := l.store.SaveEmployee(ctx, employee)
	if err != nil {
		return nil, err
	}
	l.logger.Debug(ctx, "created employee: %s", created.Id)
	return created, nil
}

func (l *logic) EmployeeUpdate(ctx context.Context, id string, employee data.Employee) (*data.Employee, error) {
	if err := l.mutable(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, data.ErrEmployeeNotFound
	}
	employee.Id = id
	if err := l.validate(&employee); err != nil {
		return nil, err
	}
	updated, err := l.store.SaveEmployee(ctx, employee)
	if err != nil {
		return nil, err
	}
	l.logger.Debug(ctx, "updated employee: %s", updated.Id)
	return updated, nil
}

func (l *logic) EmployeeDelete(ctx context.Context, id string) error {
	if err := l.mutable(); err != nil {
		return err
	}
	if err := l.store.DeleteEmployee(ctx, id); err != nil {
		return err
	}
	l.logger.Debug(ctx, "deleted employee: %s", id)
	return nil
}

// LanguageRead returns the preferred language, english if none has been
// stored (or the stored value isn't supported)
func (l *logic) LanguageRead(ctx context.Context) (string, error) {
	value, err := l.storage.Read(ctx, storage.KeyPreferredLanguage)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return i18n.DefaultLanguage, nil
		}
		return "", &data.PersistenceError{Op: "read", Key: storage.KeyPreferredLanguage, Err: err}
	}
	language, err := i18n.Normalize(value)
	if err != nil {
		l.logger.Debug(ctx, "ignoring unsupported preferred language: %q", value)
		return i18n.DefaultLanguage, nil
	}
	return language, nil
}

func (l *logic) LanguageWrite(ctx context.Context, language string) (string, error) {
	language, err := i18n.Normalize(language)
	if err != nil {
		return "", err
	}
	if err := l.storage.Write(ctx, storage.KeyPreferredLanguage, language); err != nil {
		return "", &data.PersistenceError{Op: "write", Key: storage.KeyPreferredLanguage, Err: err}
	}
	return language, nil
}

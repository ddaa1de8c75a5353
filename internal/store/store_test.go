package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/antonio-alexander/go-employee-store/internal"
	"github.com/antonio-alexander/go-employee-store/internal/data"
	"github.com/antonio-alexander/go-employee-store/internal/storage"
	"github.com/antonio-alexander/go-employee-store/internal/store"

	"github.com/stretchr/testify/assert"
)

var errWriteFailed = errors.New("quota exceeded")

// flakyStorage wraps a storage and fails writes while failWrites is set
type flakyStorage struct {
	storage.Storage
	failWrites atomic.Bool
}

func (f *flakyStorage) Write(ctx context.Context, key, value string) error {
	if f.failWrites.Load() {
		return errWriteFailed
	}
	return f.Storage.Write(ctx, key, value)
}

func newStore(t *testing.T, s storage.Storage, envs map[string]string) interface {
	internal.Configurer
	internal.Opener
	store.Store
} {
	st := store.NewStore(s)
	err := st.Configure(envs)
	if !assert.Nil(t, err) {
		assert.FailNow(t, "unable to configure store")
	}
	err = st.Open(context.TODO())
	if !assert.Nil(t, err) {
		assert.FailNow(t, "unable to open store")
	}
	return st
}

func newEmployee(email string) data.Employee {
	return data.Employee{
		FirstName:        "Ada",
		LastName:         "Lovelace",
		DateOfEmployment: "2020-01-01",
		DateOfBirth:      "1990-01-01",
		Phone:            "5551234567",
		Email:            email,
		Department:       data.DepartmentTech,
		Position:         data.PositionSenior,
	}
}

func readSlot(t *testing.T, s storage.Storage) []*data.Employee {
	var employees []*data.Employee

	value, err := s.Read(context.TODO(), storage.KeyEmployees)
	if !assert.Nil(t, err) {
		assert.FailNow(t, "unable to read employees slot")
	}
	err = json.Unmarshal([]byte(value), &employees)
	assert.Nil(t, err)
	return employees
}

func TestStoreScenario(t *testing.T) {
	ctx := context.TODO()
	slot := storage.NewMemory()
	s := newStore(t, slot, nil)

	// empty slot is seeded and persisted
	employees, err := s.GetEmployees(ctx)
	assert.Nil(t, err)
	n := len(employees)
	assert.GreaterOrEqual(t, n, 1)
	assert.Equal(t, employees, readSlot(t, slot))

	// save ada
	ada, err := s.SaveEmployee(ctx, newEmployee("ada@x.com"))
	assert.Nil(t, err)
	assert.NotEmpty(t, ada.Id)
	employees, err = s.GetEmployees(ctx)
	assert.Nil(t, err)
	assert.Len(t, employees, n+1)
	assert.Contains(t, employees, ada)

	// duplicate email
	duplicate := newEmployee("ada@x.com")
	duplicate.FirstName = "Grace"
	_, err = s.SaveEmployee(ctx, duplicate)
	assert.ErrorIs(t, err, data.ErrEmailInUse)
	var duplicateErr *data.DuplicateEmailError
	assert.True(t, errors.As(err, &duplicateErr))
	assert.Equal(t, data.ErrorKindDuplicateEmail, data.KindOf(err))
	employees, err = s.GetEmployees(ctx)
	assert.Nil(t, err)
	assert.Len(t, employees, n+1)

	// delete ada
	err = s.DeleteEmployee(ctx, ada.Id)
	assert.Nil(t, err)
	employees, err = s.GetEmployees(ctx)
	assert.Nil(t, err)
	assert.Len(t, employees, n)
	employee, err := s.GetEmployeeById(ctx, ada.Id)
	assert.Nil(t, err)
	assert.Nil(t, employee)
}

func TestStoreLoadsVerbatim(t *testing.T) {
	ctx := context.TODO()
	slot := storage.NewMemory()

	// legacy data isn't re-validated
	legacy := []*data.Employee{{Id: "1", FirstName: "John"}}
	bytes, _ := json.Marshal(legacy)
	err := slot.Write(ctx, storage.KeyEmployees, string(bytes))
	assert.Nil(t, err)
	s := newStore(t, slot, nil)
	employees, err := s.GetEmployees(ctx)
	assert.Nil(t, err)
	assert.Equal(t, legacy, employees)
}

func TestStoreOpenCorruptSlot(t *testing.T) {
	ctx := context.TODO()
	slot := storage.NewMemory()
	err := slot.Write(ctx, storage.KeyEmployees, "{not json")
	assert.Nil(t, err)
	s := store.NewStore(slot)
	err = s.Open(ctx)
	assert.ErrorIs(t, err, data.ErrPersistence)
}

func TestStoreOpenWriteFails(t *testing.T) {
	slot := &flakyStorage{Storage: storage.NewMemory()}
	slot.failWrites.Store(true)
	s := store.NewStore(slot)
	err := s.Open(context.TODO())
	assert.ErrorIs(t, err, data.ErrPersistence)
	assert.ErrorIs(t, err, errWriteFailed)
}

func TestStoreSeedDisabled(t *testing.T) {
	s := newStore(t, storage.NewMemory(), map[string]string{
		"STORE_SEED_DISABLED": "true",
	})
	employees, err := s.GetEmployees(context.TODO())
	assert.Nil(t, err)
	assert.Empty(t, employees)
}

func TestStoreMissingFields(t *testing.T) {
	ctx := context.TODO()
	s := newStore(t, storage.NewMemory(), nil)
	before, _ := s.GetEmployees(ctx)

	_, err := s.SaveEmployee(ctx, data.Employee{FirstName: "Test"})
	assert.ErrorIs(t, err, data.ErrMissingFields)
	assert.Equal(t, data.ErrorKindValidation, data.KindOf(err))
	var validationErr *data.ValidationError
	if assert.True(t, errors.As(err, &validationErr)) {
		assert.Equal(t, []string{
			data.FieldLastName, data.FieldDateOfEmployment, data.FieldDateOfBirth,
			data.FieldPhone, data.FieldEmail, data.FieldDepartment, data.FieldPosition,
		}, validationErr.MissingFields())
	}
	after, _ := s.GetEmployees(ctx)
	assert.Equal(t, before, after)
}

func TestStoreUpdateInPlace(t *testing.T) {
	ctx := context.TODO()
	slot := storage.NewMemory()
	s := newStore(t, slot, nil)
	before, _ := s.GetEmployees(ctx)
	target := before[1]

	updated := *target
	updated.FirstName = "Updated"
	saved, err := s.SaveEmployee(ctx, updated)
	assert.Nil(t, err)
	assert.Equal(t, target.Id, saved.Id)
	after, _ := s.GetEmployees(ctx)
	assert.Len(t, after, len(before))
	for i := range before {
		if i == 1 {
			assert.Equal(t, "Updated", after[i].FirstName)
			continue
		}
		assert.Equal(t, before[i], after[i])
	}
	assert.Equal(t, after, readSlot(t, slot))

	// keeping your own email isn't a duplicate
	updated.LastName = "Again"
	_, err = s.SaveEmployee(ctx, updated)
	assert.Nil(t, err)
}

func TestStoreUpdateUnknownId(t *testing.T) {
	ctx := context.TODO()
	s := newStore(t, storage.NewMemory(), nil)
	before, _ := s.GetEmployees(ctx)

	employee := newEmployee("ghost@x.com")
	employee.Id = "does-not-exist"
	_, err := s.SaveEmployee(ctx, employee)
	assert.ErrorIs(t, err, data.ErrEmployeeNotFound)
	after, _ := s.GetEmployees(ctx)
	assert.Equal(t, before, after)
}

func TestStoreDeleteAbsent(t *testing.T) {
	ctx := context.TODO()
	s := newStore(t, storage.NewMemory(), nil)
	before, _ := s.GetEmployees(ctx)
	err := s.DeleteEmployee(ctx, "does-not-exist")
	assert.Nil(t, err)
	after, _ := s.GetEmployees(ctx)
	assert.Equal(t, before, after)
}

func TestStoreReturnsCopies(t *testing.T) {
	ctx := context.TODO()
	s := newStore(t, storage.NewMemory(), nil)
	employees, _ := s.GetEmployees(ctx)
	id := employees[0].Id
	employees[0].FirstName = "Mutated"
	employee, _ := s.GetEmployeeById(ctx, id)
	assert.NotEqual(t, "Mutated", employee.FirstName)
}

func TestStoreRollbackOnWriteFailure(t *testing.T) {
	ctx := context.TODO()
	slot := &flakyStorage{Storage: storage.NewMemory()}
	s := newStore(t, slot, nil)
	before, _ := s.GetEmployees(ctx)

	slot.failWrites.Store(true)
	_, err := s.SaveEmployee(ctx, newEmployee("ada@x.com"))
	assert.ErrorIs(t, err, data.ErrPersistence)
	assert.Equal(t, data.ErrorKindPersistence, data.KindOf(err))
	err = s.DeleteEmployee(ctx, before[0].Id)
	assert.ErrorIs(t, err, data.ErrPersistence)
	after, _ := s.GetEmployees(ctx)
	assert.Equal(t, before, after)

	// once storage recovers, the email is still available
	slot.failWrites.Store(false)
	_, err = s.SaveEmployee(ctx, newEmployee("ada@x.com"))
	assert.Nil(t, err)
}

func TestStoreSearch(t *testing.T) {
	ctx := context.TODO()
	s := newStore(t, storage.NewMemory(), map[string]string{
		"STORE_SEED_DISABLED": "true",
	})
	john := data.Employee{Id: "", FirstName: "John", LastName: "Doe",
		DateOfEmployment: "2023-01-15", DateOfBirth: "1990-05-20",
		Phone: "5321234567", Email: "john@company.com",
		Department: data.DepartmentAnalytics, Position: data.PositionSenior}
	jane := data.Employee{FirstName: "Jane", LastName: "Smith",
		DateOfEmployment: "2023-02-01", DateOfBirth: "1992-08-15",
		Phone: "5332345678", Email: "jane@company.com",
		Department: data.DepartmentTech, Position: data.PositionMedior}
	savedJohn, err := s.SaveEmployee(ctx, john)
	assert.Nil(t, err)
	savedJane, err := s.SaveEmployee(ctx, jane)
	assert.Nil(t, err)

	cases := map[string][]*data.Employee{
		"":            {savedJohn, savedJane},
		"JOHN":        {savedJohn},
		"john doe":    {savedJohn},
		"n d":         {savedJohn},
		"company.com": {savedJohn, savedJane},
		"tech":        {savedJane},
		"analy":       {savedJohn},
		"nobody":      {},
	}
	for query, expected := range cases {
		employees, err := s.SearchEmployees(ctx, query)
		assert.Nil(t, err)
		assert.Equal(t, expected, employees, "query: %q", query)
	}
}

func openStorage(t *testing.T, storageType string, envs map[string]string) storage.Storage {
	s, err := storage.New(storageType)
	if !assert.Nil(t, err) {
		assert.FailNow(t, "unable to create storage")
	}
	err = s.Configure(envs)
	assert.Nil(t, err)
	err = s.Open(context.TODO())
	if !assert.Nil(t, err) {
		assert.FailNow(t, "unable to open storage")
	}
	return s
}

func TestStoreRestart(t *testing.T) {
	cases := map[string]func(t *testing.T) (first, second storage.Storage){
		storage.TypeMemory: func(t *testing.T) (storage.Storage, storage.Storage) {
			s := openStorage(t, storage.TypeMemory, nil)
			return s, s
		},
		storage.TypeStashMemory: func(t *testing.T) (storage.Storage, storage.Storage) {
			s := openStorage(t, storage.TypeStashMemory, nil)
			return s, s
		},
		storage.TypeFile: func(t *testing.T) (storage.Storage, storage.Storage) {
			envs := map[string]string{"STORAGE_FILE": filepath.Join(t.TempDir(), "store.json")}
			return openStorage(t, storage.TypeFile, envs), openStorage(t, storage.TypeFile, envs)
		},
	}
	for name, slots := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.TODO()
			first, second := slots(t)
			s := newStore(t, first, nil)
			ada, err := s.SaveEmployee(ctx, newEmployee("ada@x.com"))
			assert.Nil(t, err)
			_, err = s.SaveEmployee(ctx, newEmployee("grace@x.com"))
			assert.Nil(t, err)
			seeds, _ := s.GetEmployees(ctx)
			err = s.DeleteEmployee(ctx, seeds[0].Id)
			assert.Nil(t, err)
			err = s.DeleteEmployee(ctx, ada.Id)
			assert.Nil(t, err)
			before, _ := s.GetEmployees(ctx)

			// the second storage is opened before any writes; the file
			// backend has to be reopened to see them
			if o, ok := second.(internal.Opener); ok && second != first {
				err = o.Open(ctx)
				assert.Nil(t, err)
			}
			restarted := newStore(t, second, nil)
			after, err := restarted.GetEmployees(ctx)
			assert.Nil(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestStoreIdGenerator(t *testing.T) {
	var i int

	ctx := context.TODO()
	ids := []string{"1", "1", "1", "7"}
	s := store.NewStore(storage.NewMemory(), store.IdGenerator(func() string {
		id := ids[i]
		i++
		return id
	}))
	err := s.Open(ctx)
	assert.Nil(t, err)

	// the first generated ids collide with a seed employee
	saved, err := s.SaveEmployee(ctx, newEmployee("ada@x.com"))
	assert.Nil(t, err)
	assert.Equal(t, "7", saved.Id)
}

func TestStoreConcurrentDuplicateEmail(t *testing.T) {
	const nGoRoutines int = 16

	var wg sync.WaitGroup
	var successes atomic.Int32

	ctx := context.TODO()
	s := newStore(t, storage.NewMemory(), nil)
	before, _ := s.GetEmployees(ctx)
	start := make(chan struct{})
	for i := 0; i < nGoRoutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			<-start
			employee := newEmployee("same@x.com")
			employee.FirstName = fmt.Sprintf("Ada %d", i)
			if _, err := s.SaveEmployee(ctx, employee); err == nil {
				successes.Add(1)
			}
		}(i)
	}
	close(start)
	wg.Wait()
	assert.Equal(t, int32(1), successes.Load())
	after, _ := s.GetEmployees(ctx)
	assert.Len(t, after, len(before)+1)
}

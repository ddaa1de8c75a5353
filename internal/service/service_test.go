package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/antonio-alexander/go-employee-store/internal"
	"github.com/antonio-alexander/go-employee-store/internal/data"
	"github.com/antonio-alexander/go-employee-store/internal/logic"
	"github.com/antonio-alexander/go-employee-store/internal/service"
	"github.com/antonio-alexander/go-employee-store/internal/storage"
	"github.com/antonio-alexander/go-employee-store/internal/store"
	"github.com/antonio-alexander/go-employee-store/internal/utilities"

	"github.com/stretchr/testify/assert"
)

type serviceTest struct {
	server  *httptest.Server
	counter utilities.Counter
}

func newServiceTest(t *testing.T, envs map[string]string) *serviceTest {
	ctx := context.TODO()
	s := storage.NewMemory()
	st := store.NewStore(s)
	l := logic.NewLogic(st, s, logic.Clock(func() time.Time {
		return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	}))
	counter := utilities.NewCounter()
	svc := service.NewService(l, counter, utilities.NewTimers())
	for _, c := range []internal.Configurer{s, st, l, svc} {
		if err := c.Configure(envs); !assert.Nil(t, err) {
			assert.FailNow(t, "unable to configure")
		}
	}
	for _, o := range []internal.Opener{s, st, l} {
		if err := o.Open(ctx); !assert.Nil(t, err) {
			assert.FailNow(t, "unable to open")
		}
	}
	server := httptest.NewServer(svc)
	t.Cleanup(server.Close)
	return &serviceTest{server: server, counter: counter}
}

func (s *serviceTest) do(t *testing.T, method, route, language string, body any) (int, []byte) {
	var buffer bytes.Buffer

	if body != nil {
		if err := json.NewEncoder(&buffer).Encode(body); !assert.Nil(t, err) {
			assert.FailNow(t, "unable to encode body")
		}
	}
	request, err := http.NewRequest(method, s.server.URL+route, &buffer)
	if !assert.Nil(t, err) {
		assert.FailNow(t, "unable to create request")
	}
	if language != "" {
		request.Header.Set(data.HeaderAcceptLanguage, language)
	}
	request.Header.Set(data.HeaderCorrelationId, t.Name())
	response, err := http.DefaultClient.Do(request)
	if !assert.Nil(t, err) {
		assert.FailNow(t, "unable to execute request")
	}
	defer response.Body.Close()
	var out bytes.Buffer
	_, _ = out.ReadFrom(response.Body)
	return response.StatusCode, out.Bytes()
}

func newEmployee(email string) *data.Employee {
	return &data.Employee{
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

func decodeResponse(t *testing.T, body []byte) *data.Response {
	response := &data.Response{}
	err := json.Unmarshal(body, response)
	assert.Nil(t, err)
	return response
}

func decodeError(t *testing.T, body []byte) *data.ErrorResponse {
	response := &data.ErrorResponse{}
	err := json.Unmarshal(body, response)
	assert.Nil(t, err)
	return response
}

func TestEmployees(t *testing.T) {
	s := newServiceTest(t, map[string]string{})

	status, body := s.do(t, http.MethodGet, data.RouteEmployees, "", nil)
	assert.Equal(t, http.StatusOK, status)
	page := decodeResponse(t, body).Page
	if assert.NotNil(t, page) {
		assert.Equal(t, 6, page.Total)
		assert.Equal(t, 1, page.TotalPages)
	}

	status, body = s.do(t, http.MethodPut, data.RouteEmployees, "",
		&data.Request{Employee: newEmployee("ada@example.com")})
	assert.Equal(t, http.StatusOK, status)
	created := decodeResponse(t, body).Employee
	if !assert.NotNil(t, created) {
		assert.FailNow(t, "employee not created")
	}
	route := fmt.Sprintf(data.RouteEmployeesIdf, created.Id)

	status, body = s.do(t, http.MethodGet, route, "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, created, decodeResponse(t, body).Employee)

	created.Department = data.DepartmentAnalytics
	status, body = s.do(t, http.MethodPost, route, "", &data.Request{Employee: created})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, data.DepartmentAnalytics, decodeResponse(t, body).Employee.Department)

	status, body = s.do(t, http.MethodGet, data.RouteEmployees+"?query=lovelace&view_mode=list", "", nil)
	assert.Equal(t, http.StatusOK, status)
	page = decodeResponse(t, body).Page
	if assert.NotNil(t, page) {
		assert.Equal(t, 1, page.Total)
		assert.Equal(t, 8, page.PageSize)
	}

	status, _ = s.do(t, http.MethodDelete, route, "", nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = s.do(t, http.MethodGet, route, "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(t, http.MethodPatch, route, "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestErrors(t *testing.T) {
	s := newServiceTest(t, map[string]string{})

	missing := newEmployee("ada@example.com")
	missing.FirstName = ""
	duplicate := newEmployee("ahmet@sourtimes.org")

	cases := map[string]struct {
		method   string
		route    string
		language string
		body     any
		status   int
		kind     data.ErrorKind
		message  string
	}{
		"missing_field": {
			method: http.MethodPut, route: data.RouteEmployees,
			body:   &data.Request{Employee: missing},
			status: http.StatusBadRequest, kind: data.ErrorKindValidation,
			message: "First Name This field is required",
		},
		"missing_field_turkish": {
			method: http.MethodPut, route: data.RouteEmployees, language: "tr-TR,tr;q=0.9",
			body:   &data.Request{Employee: missing},
			status: http.StatusBadRequest, kind: data.ErrorKindValidation,
			message: "Ad Bu alan zorunludur",
		},
		"duplicate_email": {
			method: http.MethodPut, route: data.RouteEmployees,
			body:   &data.Request{Employee: duplicate},
			status: http.StatusConflict, kind: data.ErrorKindDuplicateEmail,
			message: "Email address is already in use",
		},
		"not_found": {
			method: http.MethodGet, route: fmt.Sprintf(data.RouteEmployeesIdf, "missing"),
			status: http.StatusNotFound, kind: data.ErrorKindNotFound,
			message: "Employee not found",
		},
		"update_not_found": {
			method: http.MethodPost, route: fmt.Sprintf(data.RouteEmployeesIdf, "missing"),
			body:   &data.Request{Employee: newEmployee("other@example.com")},
			status: http.StatusNotFound, kind: data.ErrorKindNotFound,
			message: "Employee not found",
		},
		"no_employee": {
			method: http.MethodPut, route: data.RouteEmployees,
			body:   &data.Request{},
			status: http.StatusBadRequest, kind: data.ErrorKindUnknown,
		},
		"unsupported_language": {
			method: http.MethodPut, route: data.RoutePreferencesLanguage,
			body:   &data.Request{Language: "de"},
			status: http.StatusBadRequest, kind: data.ErrorKindUnsupportedLanguage,
			message: "Unsupported language",
		},
		"unsupported_translations": {
			method: http.MethodGet, route: fmt.Sprintf(data.RouteTranslationsLangf, "de"),
			status: http.StatusBadRequest, kind: data.ErrorKindUnsupportedLanguage,
			message: "Unsupported language",
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			status, body := s.do(t, c.method, c.route, c.language, c.body)
			assert.Equal(t, c.status, status)
			response := decodeError(t, body)
			assert.Equal(t, c.kind, response.Kind)
			if c.message != "" {
				assert.Equal(t, c.message, response.Error)
			}
		})
	}

	status, _ := s.do(t, http.MethodGet, data.RouteEmployees, "", nil)
	assert.Equal(t, http.StatusOK, status)
	_, failures := s.counter.Read("employee_create")
	assert.Equal(t, 4, failures)
}

func TestMutateDisabled(t *testing.T) {
	s := newServiceTest(t, map[string]string{"MUTATE_DISABLED": "true"})

	status, body := s.do(t, http.MethodPut, data.RouteEmployees, "",
		&data.Request{Employee: newEmployee("ada@example.com")})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, data.ErrorKindMutateDisabled, decodeError(t, body).Kind)

	status, _ = s.do(t, http.MethodDelete, fmt.Sprintf(data.RouteEmployeesIdf, "1"), "", nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestLanguagePreference(t *testing.T) {
	s := newServiceTest(t, map[string]string{})

	status, body := s.do(t, http.MethodGet, data.RoutePreferencesLanguage, "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "en", decodeResponse(t, body).Language)

	status, body = s.do(t, http.MethodPut, data.RoutePreferencesLanguage, "",
		&data.Request{Language: "TR"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "tr", decodeResponse(t, body).Language)

	//without an Accept-Language header the stored preference is used
	status, body = s.do(t, http.MethodGet, fmt.Sprintf(data.RouteEmployeesIdf, "missing"), "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Çalışan bulunamadı", decodeError(t, body).Error)

	//the header wins over the preference
	_, body = s.do(t, http.MethodGet, fmt.Sprintf(data.RouteEmployeesIdf, "missing"), "en-US", nil)
	assert.Equal(t, "Employee not found", decodeError(t, body).Error)

	status, body = s.do(t, http.MethodGet, data.RouteTranslations, "", nil)
	assert.Equal(t, http.StatusOK, status)
	translations := make(map[string]string)
	assert.Nil(t, json.Unmarshal(body, &translations))
	assert.Equal(t, "Çalışan Listesi", translations["employeeList.title"])

	status, body = s.do(t, http.MethodGet, fmt.Sprintf(data.RouteTranslationsLangf, "en"), "", nil)
	assert.Equal(t, http.StatusOK, status)
	translations = make(map[string]string)
	assert.Nil(t, json.Unmarshal(body, &translations))
	assert.Equal(t, "Employee List", translations["employeeList.title"])
}

func TestCounters(t *testing.T) {
	s := newServiceTest(t, map[string]string{"SERVICE_TIMERS_ENABLED": "true"})

	for i := 0; i < 3; i++ {
		status, _ := s.do(t, http.MethodGet, fmt.Sprintf(data.RouteEmployeesIdf, "1"), "", nil)
		assert.Equal(t, http.StatusOK, status)
	}
	status, body := s.do(t, http.MethodGet, data.RouteCounters, "", nil)
	assert.Equal(t, http.StatusOK, status)
	counters := &data.Counters{}
	assert.Nil(t, json.Unmarshal(body, counters))
	assert.Equal(t, 3, counters.Successes["employee_read"])

	status, body = s.do(t, http.MethodGet, data.RouteTimers, "", nil)
	assert.Equal(t, http.StatusOK, status)
	timers := &data.Timers{}
	assert.Nil(t, json.Unmarshal(body, timers))
	assert.Contains(t, timers.Totals, "employee_read")

	status, _ = s.do(t, http.MethodDelete, data.RouteCounters, "", nil)
	assert.Equal(t, http.StatusNoContent, status)
	successes, _ := s.counter.Read("employee_read")
	assert.Equal(t, 0, successes)
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/antonio-alexander/go-employee-store/internal"
	"github.com/antonio-alexander/go-employee-store/internal/data"
	"github.com/antonio-alexander/go-employee-store/internal/i18n"
	"github.com/antonio-alexander/go-employee-store/internal/logic"
	"github.com/antonio-alexander/go-employee-store/internal/utilities"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

var (
	Version   string
	GitCommit string
	GitBranch string
)

func init() {
	if Version = data.Version; Version == "" {
		Version = "<no_version_provided>"
	}
	if GitCommit = data.GitCommit; GitCommit == "" {
		GitCommit = "<no_git_commit>"
	}
	if GitBranch = data.GitBranch; GitBranch == "" {
		GitBranch = "<no_git_branch>"
	}
}

type service struct {
	sync.RWMutex
	sync.WaitGroup
	config struct {
		address          string
		port             string
		shutdownTimeout  time.Duration
		allowedOrigins   []string
		allowedMethods   []string
		allowedHeaders   []string
		allowCredentials bool
		corsDisabled     bool
		corsDebug        bool
		timersEnabled    bool
	}
	ctx     context.Context
	cancel  context.CancelFunc
	router  *mux.Router
	handler http.Handler
	server  *http.Server
	logic   logic.Logic
	logger  utilities.Logger
	counter utilities.Counter
	timers  utilities.Timers
}

// NewService requires a logic.Logic; a utilities.Logger, utilities.Counter
// and utilities.Timers are optional
func NewService(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	http.Handler
} {
	router := mux.NewRouter()
	s := &service{
		router:  router,
		handler: router,
		server:  &http.Server{},
		logger:  utilities.NewNullLogger(),
	}
	s.config.port = "8080"
	s.config.shutdownTimeout = 10 * time.Second
	s.config.allowedMethods = []string{http.MethodGet, http.MethodPut,
		http.MethodPost, http.MethodDelete, http.MethodOptions}
	s.config.allowedHeaders = []string{"Content-Type",
		data.HeaderCorrelationId, data.HeaderAcceptLanguage}
	for _, parameter := range parameters {
		switch p := parameter.(type) {
		case logic.Logic:
			s.logic = p
		case utilities.Counter:
			s.counter = p
		case utilities.Timers:
			s.timers = p
		case utilities.Logger:
			s.logger = p
		}
	}
	s.buildRoutes()
	return s
}

func (s *service) launchServer() error {
	started := make(chan struct{})
	chErr := make(chan error, 1)
	s.Add(1)
	go func() {
		defer s.WaitGroup.Done()
		defer close(chErr)

		close(started)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			chErr <- err
		}
	}()
	<-started
	select {
	case err := <-chErr:
		//KIM: here we're accounting for a situation where the server closes unexexpectedly
		// but quickly (within a second of starting); this allows us to respond to errors such as
		// the port being already used
		return err
	case <-time.After(time.Second):
		s.logger.Info(s.ctx, "started server: %s", s.server.Addr)
		return nil
	}
}

// begin attaches the correlation id and request language to the request's
// context and starts the endpoint's timer; the returned func must be called
// once the endpoint completes
func (s *service) begin(request *http.Request, name string) (context.Context, func()) {
	ctx := internal.CtxWithCorrelationId(request.Context(),
		getCorrelationId(request))
	ctx = internal.CtxWithLanguage(ctx, s.requestLanguage(ctx, request))
	timerIndex := s.start(name)
	return ctx, func() {
		if timerIndex < 0 {
			return
		}
		elapsedtime := s.stop(name, timerIndex)
		s.logger.Trace(ctx, "%s took %v", name,
			time.Duration(elapsedtime)*time.Nanosecond)
	}
}

// requestLanguage prefers the Accept-Language header, then the stored
// preference
func (s *service) requestLanguage(ctx context.Context, request *http.Request) string {
	if language, ok := i18n.Match(request.Header.Get(data.HeaderAcceptLanguage)); ok {
		return language
	}
	if s.logic != nil {
		if language, err := s.logic.LanguageRead(ctx); err == nil {
			return language
		}
	}
	return i18n.DefaultLanguage
}

func (s *service) respond(ctx context.Context, writer http.ResponseWriter, name string, err error, items ...any) {
	if err != nil {
		if s.counter != nil {
			s.counter.IncrementFailure(name)
		}
		switch status := errorStatus(err); {
		case status >= http.StatusInternalServerError:
			s.logger.Error(ctx, "%s failed: %s", name, err)
		default:
			s.logger.Trace(ctx, "%s rejected: %s", name, err)
		}
		handleError(writer, internal.LanguageFromCtx(ctx), err)
		return
	}
	if s.counter != nil {
		s.counter.IncrementSuccess(name)
	}
	handleResponse(writer, items...)
	s.logger.Trace(ctx, "executed %s", name)
}

func (s *service) endpointDefault() func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		fmt.Fprintf(writer,
			"go-employee-store\n"+
				"Version: \"%s\"\n"+
				"Git Commit: \"%s\"\n"+
				"Git Branch: \"%s\"\n",
			Version, GitCommit, GitBranch)
	}
}

func (s *service) endpointEmployeesList(writer http.ResponseWriter, request *http.Request) {
	var search data.EmployeeSearch

	ctx, done := s.begin(request, "employees_list")
	defer done()
	if err := request.ParseForm(); err != nil {
		s.respond(ctx, writer, "employees_list", invalidBody(err))
		return
	}
	search.FromParams(request.Form)
	page, err := s.logic.EmployeesList(ctx, search)
	if err != nil {
		s.respond(ctx, writer, "employees_list", err)
		return
	}
	s.respond(ctx, writer, "employees_list", nil, &data.Response{
		Page: page,
	})
}

func (s *service) endpointEmployeeCreate(writer http.ResponseWriter, request *http.Request) {
	ctx, done := s.begin(request, "employee_create")
	defer done()
	employeeRequest, err := readRequest(request)
	if err == nil && employeeRequest.Employee == nil {
		err = invalidBody(fmt.Errorf("no employee provided"))
	}
	if err != nil {
		s.respond(ctx, writer, "employee_create", err)
		return
	}
	employee, err := s.logic.EmployeeCreate(ctx, *employeeRequest.Employee)
	if err != nil {
		s.respond(ctx, writer, "employee_create", err)
		return
	}
	s.respond(ctx, writer, "employee_create", nil, &data.Response{
		Employee: employee,
	})
}

func (s *service) endpointEmployeeRead(writer http.ResponseWriter, request *http.Request) {
	ctx, done := s.begin(request, "employee_read")
	defer done()
	employee, err := s.logic.EmployeeRead(ctx, mux.Vars(request)[data.PathId])
	if err != nil {
		s.respond(ctx, writer, "employee_read", err)
		return
	}
	s.respond(ctx, writer, "employee_read", nil, &data.Response{
		Employee: employee,
	})
}

func (s *service) endpointEmployeeUpdate(writer http.ResponseWriter, request *http.Request) {
	ctx, done := s.begin(request, "employee_update")
	defer done()
	employeeRequest, err := readRequest(request)
	if err == nil && employeeRequest.Employee == nil {
		err = invalidBody(fmt.Errorf("no employee provided"))
	}
	if err != nil {
		s.respond(ctx, writer, "employee_update", err)
		return
	}
	employee, err := s.logic.EmployeeUpdate(ctx, mux.Vars(request)[data.PathId],
		*employeeRequest.Employee)
	if err != nil {
		s.respond(ctx, writer, "employee_update", err)
		return
	}
	s.respond(ctx, writer, "employee_update", nil, &data.Response{
		Employee: employee,
	})
}

func (s *service) endpointEmployeeDelete(writer http.ResponseWriter, request *http.Request) {
	ctx, done := s.begin(request, "employee_delete")
	defer done()
	if err := s.logic.EmployeeDelete(ctx, mux.Vars(request)[data.PathId]); err != nil {
		s.respond(ctx, writer, "employee_delete", err)
		return
	}
	s.respond(ctx, writer, "employee_delete", nil)
}

func (s *service) endpointLanguageRead(writer http.ResponseWriter, request *http.Request) {
	ctx, done := s.begin(request, "language_read")
	defer done()
	language, err := s.logic.LanguageRead(ctx)
	if err != nil {
		s.respond(ctx, writer, "language_read", err)
		return
	}
	s.respond(ctx, writer, "language_read", nil, &data.Response{
		Language: language,
	})
}

func (s *service) endpointLanguageWrite(writer http.ResponseWriter, request *http.Request) {
	ctx, done := s.begin(request, "language_write")
	defer done()
	languageRequest, err := readRequest(request)
	if err != nil {
		s.respond(ctx, writer, "language_write", err)
		return
	}
	language, err := s.logic.LanguageWrite(ctx, languageRequest.Language)
	if err != nil {
		s.respond(ctx, writer, "language_write", err)
		return
	}
	s.respond(ctx, writer, "language_write", nil, &data.Response{
		Language: language,
	})
}

func (s *service) endpointTranslationsRead(writer http.ResponseWriter, request *http.Request) {
	ctx, done := s.begin(request, "translations_read")
	defer done()
	language := internal.LanguageFromCtx(ctx)
	if l, ok := mux.Vars(request)[data.PathLanguage]; ok {
		normalized, err := i18n.Normalize(l)
		if err != nil {
			s.respond(ctx, writer, "translations_read", err)
			return
		}
		language = normalized
	}
	s.respond(ctx, writer, "translations_read", nil, i18n.Translations(language))
}

func (s *service) endpointTimersRead(writer http.ResponseWriter, _ *http.Request) {
	if s.timers == nil {
		handleResponse(writer, &data.Timers{})
		return
	}
	handleResponse(writer, s.timers.ReadAll())
}

func (s *service) endpointTimersClear(writer http.ResponseWriter, request *http.Request) {
	ctx := internal.CtxWithCorrelationId(request.Context(),
		getCorrelationId(request))
	if s.timers != nil {
		s.timers.Clear()
	}
	handleResponse(writer)
	s.logger.Trace(ctx, "executed timers_clear")
}

func (s *service) endpointCountersRead(writer http.ResponseWriter, _ *http.Request) {
	if s.counter == nil {
		handleResponse(writer, &data.Counters{})
		return
	}
	handleResponse(writer, s.counter.ReadAll())
}

func (s *service) endpointCountersClear(writer http.ResponseWriter, request *http.Request) {
	ctx := internal.CtxWithCorrelationId(request.Context(),
		getCorrelationId(request))
	if s.counter != nil {
		s.counter.Reset()
	}
	handleResponse(writer)
	s.logger.Trace(ctx, "executed counters_clear")
}

func (s *service) buildRoutes() {
	s.router.HandleFunc("/", s.endpointDefault())
	s.router.HandleFunc(data.RouteEmployees, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		case http.MethodGet:
			s.endpointEmployeesList(w, r)
		case http.MethodPut:
			s.endpointEmployeeCreate(w, r)
		}
	})
	s.router.HandleFunc(data.RouteEmployeesId, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		case http.MethodGet:
			s.endpointEmployeeRead(w, r)
		case http.MethodPost:
			s.endpointEmployeeUpdate(w, r)
		case http.MethodDelete:
			s.endpointEmployeeDelete(w, r)
		}
	})
	s.router.HandleFunc(data.RoutePreferencesLanguage, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		case http.MethodGet:
			s.endpointLanguageRead(w, r)
		case http.MethodPut:
			s.endpointLanguageWrite(w, r)
		}
	})
	for _, route := range []string{data.RouteTranslations, data.RouteTranslationsLang} {
		s.router.HandleFunc(route, func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			default:
				w.WriteHeader(http.StatusMethodNotAllowed)
			case http.MethodGet:
				s.endpointTranslationsRead(w, r)
			}
		})
	}
	s.router.HandleFunc(data.RouteTimers, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		case http.MethodGet:
			s.endpointTimersRead(w, r)
		case http.MethodDelete:
			s.endpointTimersClear(w, r)
		}
	})
	s.router.HandleFunc(data.RouteCounters, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		case http.MethodGet:
			s.endpointCountersRead(w, r)
		case http.MethodDelete:
			s.endpointCountersClear(w, r)
		}
	})
}

func (s *service) start(group string) int {
	if s.timers == nil || !s.config.timersEnabled {
		return -1
	}
	return s.timers.Start(group)
}

func (s *service) stop(group string, index int) int64 {
	if s.timers == nil {
		return -1
	}
	return s.timers.Stop(group, index)
}

func (s *service) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	s.RLock()
	handler := s.handler
	s.RUnlock()
	handler.ServeHTTP(writer, request)
}

func (s *service) Configure(envs map[string]string) error {
	s.Lock()
	defer s.Unlock()

	if address, ok := envs["SERVICE_ADDRESS"]; ok {
		s.config.address = address
	}
	if port, ok := envs["SERVICE_PORT"]; ok && port != "" {
		s.config.port = port
	}
	if shutdownTimeoutString, ok := envs["SERVICE_SHUTDOWN_TIMEOUT"]; ok {
		if shutdownTimeoutInt, err := strconv.Atoi(shutdownTimeoutString); err == nil {
			if timeout := time.Duration(shutdownTimeoutInt) * time.Second; timeout > 0 {
				s.config.shutdownTimeout = timeout
			}
		}
	}
	if allowCredentialsString, ok := envs["SERVICE_CORS_ALLOW_CREDENTIALS"]; ok {
		if allowCredentials, err := strconv.ParseBool(allowCredentialsString); err == nil {
			s.config.allowCredentials = allowCredentials
		}
	}
	if allowedOrigins := envs["SERVICE_CORS_ALLOWED_ORIGINS"]; allowedOrigins != "" {
		s.config.allowedOrigins = strings.Split(allowedOrigins, ",")
	}
	if allowedMethods := envs["SERVICE_CORS_ALLOWED_METHODS"]; allowedMethods != "" {
		s.config.allowedMethods = strings.Split(allowedMethods, ",")
	}
	if allowedHeaders := envs["SERVICE_CORS_ALLOWED_HEADERS"]; allowedHeaders != "" {
		s.config.allowedHeaders = strings.Split(allowedHeaders, ",")
	}
	if corsDisabledString, ok := envs["SERVICE_CORS_DISABLED"]; ok {
		if corsDisabled, err := strconv.ParseBool(corsDisabledString); err == nil {
			s.config.corsDisabled = corsDisabled
		}
	}
	if corsDebug, ok := envs["SERVICE_CORS_DEBUG"]; ok {
		if corsDebug, err := strconv.ParseBool(corsDebug); err == nil {
			s.config.corsDebug = corsDebug
		}
	}
	if timersEnabled := envs["SERVICE_TIMERS_ENABLED"]; timersEnabled != "" {
		s.config.timersEnabled, _ = strconv.ParseBool(timersEnabled)
	}
	s.handler = s.router
	if !s.config.corsDisabled {
		s.handler = cors.New(cors.Options{
			AllowedOrigins:   s.config.allowedOrigins,
			AllowCredentials: s.config.allowCredentials,
			AllowedMethods:   s.config.allowedMethods,
			AllowedHeaders:   s.config.allowedHeaders,
			Debug:            s.config.corsDebug,
		}).Handler(s.router)
	}
	return nil
}

func (s *service) Open(ctx context.Context) error {
	s.Lock()
	defer s.Unlock()

	if s.logic == nil {
		return fmt.Errorf("service: no logic provided")
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.server.Addr = net.JoinHostPort(s.config.address, s.config.port)
	s.server.Handler = s.handler
	if err := s.launchServer(); err != nil {
		s.cancel()
		return err
	}
	return nil
}

func (s *service) Close(ctx context.Context) error {
	s.RLock()
	shutdownTimeout := s.config.shutdownTimeout
	s.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error(ctx, "error while shutting down the server: %s", err)
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.Wait()
	return nil
}

func readRequest(request *http.Request) (*data.Request, error) {
	var r data.Request

	bytes, err := io.ReadAll(request.Body)
	defer request.Body.Close()
	if err != nil {
		return nil, invalidBody(err)
	}
	if err := json.Unmarshal(bytes, &r); err != nil {
		return nil, invalidBody(err)
	}
	return &r, nil
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/antonio-alexander/go-employee-store/internal"
	"github.com/antonio-alexander/go-employee-store/internal/data"
	"github.com/antonio-alexander/go-employee-store/internal/utilities"

	"github.com/pkg/errors"
)

// Client talks to the employee service, error responses are decoded back
// into the errors in the data package
type Client interface {
	EmployeesList(ctx context.Context, search data.EmployeeSearch) (*data.EmployeePage, error)
	EmployeeRead(ctx context.Context, id string) (*data.Employee, error)
	EmployeeCreate(ctx context.Context, employee data.Employee) (*data.Employee, error)
	EmployeeUpdate(ctx context.Context, id string, employee data.Employee) (*data.Employee, error)
	EmployeeDelete(ctx context.Context, id string) error
	LanguageRead(ctx context.Context) (string, error)
	LanguageWrite(ctx context.Context, language string) (string, error)
	TranslationsRead(ctx context.Context, language string) (map[string]string, error)
	TimersRead(ctx context.Context) (*data.Timers, error)
	TimersClear(ctx context.Context) error
	CountersRead(ctx context.Context) (*data.Counters, error)
	CountersClear(ctx context.Context) error
}

type client struct {
	sync.RWMutex
	config struct {
		protocol   string
		address    string
		port       string
		timeout    time.Duration
		language   string
		sslCaFile  string
		sslCrtFile string
		sslKeyFile string
	}
	address string
	logger  utilities.Logger
	*http.Client
}

func NewClient(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	Client
} {
	c := &client{
		Client: &http.Client{},
		logger: utilities.NewNullLogger(),
	}
	c.config.protocol = "http"
	c.config.address = "localhost"
	c.config.port = "8080"
	c.config.timeout = 10 * time.Second
	for _, parameter := range parameters {
		switch p := parameter.(type) {
		case utilities.Logger:
			c.logger = p
		}
	}
	return c
}

func (c *client) doRequest(ctx context.Context, uri, method string, item any) ([]byte, error) {
	var body io.Reader

	switch d := item.(type) {
	case []byte:
		body = bytes.NewBuffer(d)
	case url.Values:
		if len(d) > 0 {
			uri = uri + "?" + d.Encode()
		}
	}
	request, err := http.NewRequestWithContext(ctx, method, uri, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if correlationId := internal.CorrelationIdFromCtx(ctx); correlationId != "" {
		request.Header.Set(data.HeaderCorrelationId, correlationId)
	}
	language := internal.LanguageFromCtx(ctx)
	if language == "" {
		c.RLock()
		language = c.config.language
		c.RUnlock()
	}
	if language != "" {
		request.Header.Set(data.HeaderAcceptLanguage, language)
	}
	response, err := c.Do(request)
	if err != nil {
		return nil, err
	}
	bytes, err := io.ReadAll(response.Body)
	defer response.Body.Close()
	if err != nil {
		return nil, err
	}
	switch response.StatusCode {
	default:
		errorResponse := &data.ErrorResponse{}
		if err := json.Unmarshal(bytes, errorResponse); err != nil || errorResponse.Error == "" {
			return nil, errors.Errorf("status code: %d; %s",
				response.StatusCode, string(bytes))
		}
		c.logger.Trace(ctx, "%s %s failed (%d): %s", method, uri,
			response.StatusCode, errorResponse.Error)
		return nil, data.ErrorFromResponse(errorResponse)
	case http.StatusOK, http.StatusNoContent:
		return bytes, nil
	}
}

func (c *client) doJson(ctx context.Context, uri, method string, request, response any) error {
	var item any

	switch r := request.(type) {
	case nil:
	case url.Values:
		item = r
	default:
		bytes, err := json.Marshal(r)
		if err != nil {
			return err
		}
		item = bytes
	}
	bytes, err := c.doRequest(ctx, uri, method, item)
	if err != nil {
		return err
	}
	if response == nil {
		return nil
	}
	return errors.Wrap(json.Unmarshal(bytes, response), "decoding response")
}

func (c *client) Configure(envs map[string]string) error {
	c.Lock()
	defer c.Unlock()

	if address, ok := envs["CLIENT_ADDRESS"]; ok && address != "" {
		c.config.address = address
	}
	if port, ok := envs["CLIENT_PORT"]; ok && port != "" {
		c.config.port = port
	}
	if protocol, ok := envs["CLIENT_PROTOCOL"]; ok && protocol != "" {
		c.config.protocol = protocol
	}
	if timeout, ok := envs["CLIENT_TIMEOUT"]; ok && timeout != "" {
		i, err := strconv.Atoi(timeout)
		if err != nil {
			return errors.Wrap(err, "CLIENT_TIMEOUT")
		}
		c.config.timeout = time.Duration(i) * time.Second
	}
	if language, ok := envs["CLIENT_LANGUAGE"]; ok {
		c.config.language = language
	}
	if sslCaFile, ok := envs["SSL_CA_FILE"]; ok {
		c.config.sslCaFile = sslCaFile
	}
	if sslKeyFile, ok := envs["SSL_KEY_FILE"]; ok {
		c.config.sslKeyFile = sslKeyFile
	}
	if sslCrtFile, ok := envs["SSL_CRT_FILE"]; ok {
		c.config.sslCrtFile = sslCrtFile
	}
	return nil
}

func (c *client) Open(ctx context.Context) error {
	c.Lock()
	defer c.Unlock()

	switch c.config.protocol {
	default:
		return errors.Errorf("unsupported protocol: %s", c.config.protocol)
	case "http", "https":
		c.address = fmt.Sprintf("%s://%s", c.config.protocol,
			net.JoinHostPort(c.config.address, c.config.port))
	}
	c.Client.Timeout = c.config.timeout
	transport, err := newTransport(c.config.sslCaFile, c.config.sslCrtFile,
		c.config.sslKeyFile)
	if err != nil {
		return err
	}
	c.Client.Transport = transport
	c.logger.Debug(ctx, "client configured for %s", c.address)
	return nil
}

func (c *client) Close(ctx context.Context) error {
	c.Lock()
	defer c.Unlock()

	c.Client.CloseIdleConnections()
	return nil
}

func (c *client) EmployeesList(ctx context.Context, search data.EmployeeSearch) (*data.EmployeePage, error) {
	response := &data.Response{}
	if err := c.doJson(ctx, c.address+data.RouteEmployees, http.MethodGet,
		search.ToParams(), response); err != nil {
		return nil, err
	}
	return response.Page, nil
}

func (c *client) EmployeeRead(ctx context.Context, id string) (*data.Employee, error) {
	response := &data.Response{}
	uri := c.address + fmt.Sprintf(data.RouteEmployeesIdf, url.PathEscape(id))
	if err := c.doJson(ctx, uri, http.MethodGet, nil, response); err != nil {
		return nil, err
	}
	return response.Employee, nil
}

func (c *client) EmployeeCreate(ctx context.Context, employee data.Employee) (*data.Employee, error) {
	response := &data.Response{}
	if err := c.doJson(ctx, c.address+data.RouteEmployees, http.MethodPut,
		&data.Request{Employee: &employee}, response); err != nil {
		return nil, err
	}
	return response.Employee, nil
}

func (c *client) EmployeeUpdate(ctx context.Context, id string, employee data.Employee) (*data.Employee, error) {
	response := &data.Response{}
	uri := c.address + fmt.Sprintf(data.RouteEmployeesIdf, url.PathEscape(id))
	if err := c.doJson(ctx, uri, http.MethodPost,
		&data.Request{Employee: &employee}, response); err != nil {
		return nil, err
	}
	return response.Employee, nil
}

func (c *client) EmployeeDelete(ctx context.Context, id string) error {
	uri := c.address + fmt.Sprintf(data.RouteEmployeesIdf, url.PathEscape(id))
	return c.doJson(ctx, uri, http.MethodDelete, nil, nil)
}

func (c *client) LanguageRead(ctx context.Context) (string, error) {
	response := &data.Response{}
	if err := c.doJson(ctx, c.address+data.RoutePreferencesLanguage, http.MethodGet,
		nil, response); err != nil {
		return "", err
	}
	return response.Language, nil
}

func (c *client) LanguageWrite(ctx context.Context, language string) (string, error) {
	response := &data.Response{}
	if err := c.doJson(ctx, c.address+data.RoutePreferencesLanguage, http.MethodPut,
		&data.Request{Language: language}, response); err != nil {
		return "", err
	}
	return response.Language, nil
}

// TranslationsRead returns the translation table for language, an empty
// language lets the service pick one
func (c *client) TranslationsRead(ctx context.Context, language string) (map[string]string, error) {
	translations := make(map[string]string)
	uri := c.address + data.RouteTranslations
	if language != "" {
		uri = c.address + fmt.Sprintf(data.RouteTranslationsLangf, url.PathEscape(language))
	}
	if err := c.doJson(ctx, uri, http.MethodGet, nil, &translations); err != nil {
		return nil, err
	}
	return translations, nil
}

func (c *client) TimersRead(ctx context.Context) (*data.Timers, error) {
	response := &data.Timers{}
	if err := c.doJson(ctx, c.address+data.RouteTimers, http.MethodGet, nil, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *client) TimersClear(ctx context.Context) error {
	return c.doJson(ctx, c.address+data.RouteTimers, http.MethodDelete, nil, nil)
}

func (c *client) CountersRead(ctx context.Context) (*data.Counters, error) {
	response := &data.Counters{}
	if err := c.doJson(ctx, c.address+data.RouteCounters, http.MethodGet, nil, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *client) CountersClear(ctx context.Context) error {
	return c.doJson(ctx, c.address+data.RouteCounters, http.MethodDelete, nil, nil)
}

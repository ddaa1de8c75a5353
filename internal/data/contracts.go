package data

const (
	RouteEmployees           string = "/employees"
	RouteEmployeesId         string = RouteEmployees + "/{" + PathId + "}"
	RouteEmployeesIdf        string = RouteEmployees + "/%s"
	RoutePreferencesLanguage string = "/preferences/language"
	RouteTranslations        string = "/translations"
	RouteTranslationsLang    string = RouteTranslations + "/{" + PathLanguage + "}"
	RouteTranslationsLangf   string = RouteTranslations + "/%s"
	RouteTimers              string = "/timers"
	RouteCounters            string = "/counters"
)

const (
	PathId       string = "id"
	PathLanguage string = "language"
)

const (
	ParameterQuery    string = "query"
	ParameterPage     string = "page"
	ParameterPageSize string = "page_size"
	ParameterViewMode string = "view_mode"
)

const (
	HeaderCorrelationId  string = "Correlation-Id"
	HeaderAcceptLanguage string = "Accept-Language"
)

const (
	LanguageEnglish string = "en"
	LanguageTurkish string = "tr"
)

type Request struct {
	Employee *Employee `json:"employee,omitempty"`
	Language string    `json:"language,omitempty"`
}

type Response struct {
	Employee *Employee     `json:"employee,omitempty"`
	Page     *EmployeePage `json:"page,omitempty"`
	Language string        `json:"language,omitempty"`
}

// ErrorResponse is the body of every non 2xx response, kind lets a client
// rebuild the typed error without parsing the message
type ErrorResponse struct {
	Error  string       `json:"error"`
	Kind   ErrorKind    `json:"kind"`
	Fields []FieldError `json:"fields,omitempty"`
	Email  string       `json:"email,omitempty"`
}

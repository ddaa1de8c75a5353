package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/antonio-alexander/go-employee-store/internal"
	"github.com/antonio-alexander/go-employee-store/internal/data"
	"github.com/antonio-alexander/go-employee-store/internal/i18n"
)

// ErrInvalidBody is returned when a request body can't be decoded
var ErrInvalidBody = errors.New("invalid request body")

func invalidBody(err error) error {
	return fmt.Errorf("%w: %s", ErrInvalidBody, err)
}

func getCorrelationId(request *http.Request) string {
	if correlationId := request.Header.Get(data.HeaderCorrelationId); correlationId != "" {
		return correlationId
	}
	return internal.GenerateId()
}

func errorStatus(err error) int {
	switch data.KindOf(err) {
	default:
		if errors.Is(err, ErrInvalidBody) {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	case data.ErrorKindValidation, data.ErrorKindUnsupportedLanguage:
		return http.StatusBadRequest
	case data.ErrorKindDuplicateEmail:
		return http.StatusConflict
	case data.ErrorKindNotFound:
		return http.StatusNotFound
	case data.ErrorKindMutateDisabled:
		return http.StatusForbidden
	case data.ErrorKindPersistence:
		return http.StatusInternalServerError
	}
}

// handleError writes err as an error response with its message translated
// into language
func handleError(writer http.ResponseWriter, language string, err error) {
	status := errorStatus(err)
	response := data.ErrorToResponse(err)
	response.Error = i18n.ErrorMessage(language, err)
	bytes, err := json.Marshal(response)
	if err != nil {
		fmt.Printf("error handling response: %s\n", err)
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	if _, err := writer.Write(bytes); err != nil {
		fmt.Printf("error handling response: %s\n", err)
	}
}

func handleResponse(writer http.ResponseWriter, items ...any) {
	if len(items) <= 0 {
		writer.WriteHeader(http.StatusNoContent)
		return
	}
	bytes, err := json.Marshal(items[0])
	if err != nil {
		handleError(writer, i18n.DefaultLanguage, err)
		return
	}
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	if _, err := writer.Write(bytes); err != nil {
		fmt.Printf("error handling response: %s\n", err)
	}
}

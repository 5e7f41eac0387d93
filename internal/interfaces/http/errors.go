package http

import (
	"errors"
	"net/http"

	"github.com/pot-code/skillspark/internal/domain"
	"github.com/pot-code/skillspark/internal/infrastructure/validate"
)

// RESTStandardError response error
type RESTStandardError struct {
	Type    string `json:"type,omitempty"`
	Code    int    `json:"code"`
	Title   string `json:"title"`
	Detail  string `json:"detail,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewRESTStandardError .
func NewRESTStandardError(code int, detail string) *RESTStandardError {
	return &RESTStandardError{
		Code:   code,
		Title:  http.StatusText(code),
		Detail: detail,
	}
}

func (re RESTStandardError) Error() string {
	return re.Detail
}

// SetTraceID .
func (re RESTStandardError) SetTraceID(traceID string) RESTStandardError {
	re.TraceID = traceID
	return re
}

// RESTValidationError standard validation error
type RESTValidationError struct {
	RESTStandardError
	InvalidParams []*validate.FieldError `json:"invalid_params"`
}

// NewRESTValidationError .
func NewRESTValidationError(code int, detail string, internal []*validate.FieldError) *RESTValidationError {
	return &RESTValidationError{
		RESTStandardError: RESTStandardError{
			Code:   code,
			Title:  http.StatusText(code),
			Detail: detail,
		},
		InvalidParams: internal,
	}
}

func (rve RESTValidationError) Error() string {
	return rve.Detail
}

// SetTraceID .
func (rve RESTValidationError) SetTraceID(traceID string) RESTValidationError {
	rve.RESTStandardError.TraceID = traceID
	return rve
}

// domainErrorStatus http status of a domain error, 0 if err is not one
func domainErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNoSuchCourse), errors.Is(err, domain.ErrNoSuchLesson):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoSuchUser):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUserTooManyRetry):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrDuplicatedUser):
		return http.StatusConflict
	}
	return 0
}

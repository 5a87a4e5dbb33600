package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/portfolio-api/pkg/logger"
)

type ErrorLevel int

const (
	LevelFatal ErrorLevel = iota + 1
	LevelError
	LevelWarning
	LevelInfo
)

func (l ErrorLevel) String() string {
	return [...]string{"", "Fatal", "Error", "Warning", "Info"}[l]
}

type ApplicationError struct {
	Reference string
	Title     string
	Detail    string
	RootCause error
	Level     ErrorLevel
	// * StatusCode is the upstream HTTP status for remote failures, 0 otherwise
	StatusCode  int
	Fields      map[string]string
	OccurredAt  time.Time
	CallerTrace []string
}

func (e *ApplicationError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s][%s] %s", e.OccurredAt.Format(time.RFC3339), e.Reference, e.Title)

	if e.Detail != "" {
		fmt.Fprintf(&b, " - %s", e.Detail)
	}

	if e.RootCause != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.RootCause)
	}

	return b.String()
}

func (e *ApplicationError) Unwrap() error {
	return e.RootCause
}

func New(ref, title, detail string, cause error, level ErrorLevel) *ApplicationError {
	return &ApplicationError{
		Reference:   ref,
		Title:       title,
		Detail:      detail,
		RootCause:   cause,
		Level:       level,
		OccurredAt:  time.Now().UTC(),
		CallerTrace: captureCallerInfo(3),
	}
}

// * Is reports whether err carries an ApplicationError with the given reference
func Is(err error, ref string) bool {
	var appErr *ApplicationError
	return errors.As(err, &appErr) && appErr.Reference == ref
}

func captureCallerInfo(skip int) []string {
	pc := make([]uintptr, 10)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return nil
	}

	pc = pc[:n]
	frames := runtime.CallersFrames(pc)

	var trace []string
	for {
		frame, more := frames.Next()
		trace = append(trace, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		if !more {
			break
		}
	}

	return trace
}

type HTTPErrorResponse struct {
	Status     int               `json:"status"`
	ErrorRef   string            `json:"error_reference,omitempty"`
	Title      string            `json:"title"`
	Detail     string            `json:"detail,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
	Resolution string            `json:"resolution,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

func WriteHTTPError(w http.ResponseWriter, err error) {
	var appErr *ApplicationError

	resp := HTTPErrorResponse{
		Status:    http.StatusInternalServerError,
		Title:     "An unexpected error occurred",
		Timestamp: time.Now().UTC(),
	}

	if errors.As(err, &appErr) {
		resp.ErrorRef = appErr.Reference
		resp.Title = appErr.Title
		resp.Detail = appErr.Detail
		resp.Fields = appErr.Fields
		resp.Status, resp.Resolution = statusFor(appErr)
	} else {
		resp.Detail = err.Error()
	}

	if resp.Status >= http.StatusInternalServerError {
		logger.Error("%v", err)
	} else {
		logger.Warn("%v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	json.NewEncoder(w).Encode(resp)
}

func statusFor(appErr *ApplicationError) (int, string) {
	switch {
	case appErr.Reference == RefInvalidFilter || appErr.Reference == RefValidation:
		return http.StatusBadRequest, "Please review your request and try again"
	case appErr.Reference == RefRemoteFetch || appErr.Reference == RefMalformedResponse:
		return http.StatusBadGateway, "The upstream service failed, please try again later"
	case appErr.Reference == RefContactDisabled:
		return http.StatusServiceUnavailable, ""
	case strings.HasSuffix(appErr.Reference, "_NOT_FOUND"):
		return http.StatusNotFound, ""
	}

	switch appErr.Level {
	case LevelWarning:
		return http.StatusConflict, "Please review your request and try again"
	case LevelInfo:
		return http.StatusOK, ""
	default:
		return http.StatusInternalServerError, "Please contact support with the error reference"
	}
}

package errors

import "fmt"

const (
	RefRemoteFetch       = "REMOTE_FETCH_ERROR"
	RefMalformedResponse = "MALFORMED_RESPONSE"
	RefInvalidFilter     = "INVALID_FILTER"
	RefValidation        = "VALIDATION_ERROR"
	RefContactDisabled   = "CONTACT_DISABLED"
	RefContactNotFound   = "CONTACT_MESSAGE_NOT_FOUND"
)

// RemoteFetch reports a failed call to a remote source. statusCode is 0 when
// no response was received (network failure, timeout).
func RemoteFetch(statusCode int, detail string, cause error) *ApplicationError {
	title := "Failed to fetch from remote source"
	if statusCode != 0 {
		title = fmt.Sprintf("Remote source returned status %d", statusCode)
	}
	err := New(RefRemoteFetch, title, detail, cause, LevelError)
	err.StatusCode = statusCode
	return err
}

func MalformedResponse(detail string, cause error) *ApplicationError {
	return New(RefMalformedResponse, "Malformed response from remote source", detail, cause, LevelError)
}

func InvalidFilter(detail string) *ApplicationError {
	return New(RefInvalidFilter, "Invalid filter", detail, nil, LevelWarning)
}

func Validation(detail string, fields map[string]string) *ApplicationError {
	err := New(RefValidation, "Invalid request", detail, nil, LevelWarning)
	err.Fields = fields
	return err
}

func ContactDisabled() *ApplicationError {
	return New(RefContactDisabled, "Contact form unavailable", "The contact inbox is not configured on this server", nil, LevelWarning)
}

func IsRemoteFetch(err error) bool { return Is(err, RefRemoteFetch) }

func IsMalformedResponse(err error) bool { return Is(err, RefMalformedResponse) }

func IsInvalidFilter(err error) bool { return Is(err, RefInvalidFilter) }

package repodoc

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"

	// Fetch failures.
	ERATELIMITED = "rate_limited"
	EEXHAUSTED   = "exhausted"

	// GitHub discovery failures.
	ENOTREE = "no_tree"
	ENODOCS = "no_docs"

	// Website pipeline failures.
	ENOAPIKEY    = "no_api_key"
	ECRAWLSTART  = "crawl_start_failed"
	ECRAWLFAILED = "crawl_failed"
	ETIMEOUT     = "timeout"
	ENOCONTENT   = "no_content"

	EUNKNOWNSOURCE = "unknown_source"
	EEMPTY         = "empty"
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract the code and message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("repodoc error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

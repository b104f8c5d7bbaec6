package apiclient

import (
	"errors"
	"fmt"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// APIError captures a normalized backend response failure. Status is the
// HTTP status code, or 0 when no response was received at all (network
// failure); callers must treat Status == 0 as transient, never as
// unauthenticated.
type APIError struct {
	Status  int
	Code    string
	Message string
	Err     error
	Raw     map[string]any
}

func (e *APIError) Error() string {
	if e == nil {
		return "api error"
	}

	if e.Status == 0 {
		if e.Err != nil {
			return fmt.Sprintf("network error: %v", e.Err)
		}
		return "network error"
	}

	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}

	return fmt.Sprintf("api error %d: %s", e.Status, http.StatusText(e.Status))
}

func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Metadata exposes structured fields for rich error logging.
func (e *APIError) Metadata() map[string]any {
	if e == nil {
		return nil
	}

	meta := map[string]any{}
	if e.Status != 0 {
		meta["status"] = e.Status
	}
	if e.Code != "" {
		meta["code"] = e.Code
	}
	if e.Message != "" {
		meta["message"] = e.Message
	}
	if len(e.Raw) > 0 {
		meta["raw"] = e.Raw
	}

	return meta
}

// AsAPIError unwraps err looking for an APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsAuthError reports whether err is a 401/403 backend response. Only these
// invalidate a stored credential.
func IsAuthError(err error) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}

// IsBusinessDenial reports whether err is a 403 carrying a recognized error
// envelope. The backend denied the operation as a business rule ("not
// approved", quota exceeded) rather than rejecting the session, so callers
// surface the message inline instead of signing the viewer out.
func IsBusinessDenial(err error) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}
	return apiErr.Status == http.StatusForbidden && apiErr.Code != ""
}

// IsNetworkError reports whether err represents a request that never got a
// response.
func IsNetworkError(err error) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}
	return apiErr.Status == 0
}

// ToRichError maps an APIError into the go-errors taxonomy so HTTP handlers
// can log and classify it uniformly.
func ToRichError(err error) *goerrors.Error {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr
	}

	apiErr, ok := AsAPIError(err)
	if !ok {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unexpected backend error")
	}

	switch {
	case apiErr.Status == http.StatusUnauthorized:
		return goerrors.Wrap(apiErr, goerrors.CategoryAuth, apiErr.Message).
			WithCode(goerrors.CodeUnauthorized)
	case apiErr.Status == http.StatusForbidden:
		return goerrors.Wrap(apiErr, goerrors.CategoryAuthz, apiErr.Message).
			WithCode(goerrors.CodeForbidden)
	case apiErr.Status == http.StatusNotFound:
		return goerrors.Wrap(apiErr, goerrors.CategoryNotFound, apiErr.Message).
			WithCode(goerrors.CodeNotFound)
	case apiErr.Status == http.StatusBadRequest:
		return goerrors.Wrap(apiErr, goerrors.CategoryBadInput, apiErr.Message).
			WithCode(goerrors.CodeBadRequest)
	case apiErr.Status == 0:
		return goerrors.Wrap(apiErr, goerrors.CategoryOperation, "backend unreachable")
	default:
		return goerrors.Wrap(apiErr, goerrors.CategoryInternal, apiErr.Message).
			WithCode(goerrors.CodeInternal)
	}
}

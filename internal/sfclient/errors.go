package sfclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrAuthentication = errors.New("authentication failed")
	ErrNotFound       = errors.New("not found")
)

// APIError is a non-2xx REST response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error (status %d) %s: %s", e.StatusCode, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode == http.StatusUnauthorized, e.Code == "INVALID_SESSION_ID":
		return ErrAuthentication
	}
	return nil
}

// SOAPFault is a fault returned by the login or metadata endpoints.
type SOAPFault struct {
	Code    string `xml:"faultcode"`
	Message string `xml:"faultstring"`
}

func (f *SOAPFault) Error() string {
	return fmt.Sprintf("soap fault %s: %s", f.Code, f.Message)
}

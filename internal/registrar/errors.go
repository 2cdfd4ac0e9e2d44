package registrar

import (
	"fmt"
	"strings"
)

// APIError is an upstream rejection: the registrar answered with a non-2xx
// status. Code, Message and Fields carry the upstream error body verbatim so
// the user sees exactly what the registrar complained about.
type APIError struct {
	Status  int
	Code    string
	Message string
	Fields  []FieldError
}

type FieldError struct {
	Path    string `json:"path"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "registrar: http %d", e.Status)
	if e.Code != "" {
		fmt.Fprintf(&b, " %s", e.Code)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	for _, f := range e.Fields {
		detail := f.Message
		if detail == "" {
			detail = f.Code
		}
		fmt.Fprintf(&b, "\n  - %s: %s", f.Path, detail)
	}
	return b.String()
}

// NetworkError is a transport failure (connectivity, timeout) before any
// upstream answer arrived. Recovery is the human re-issuing the command.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("registrar: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

package model

import (
	"time"

	"github.com/ppiankov/slotparse/internal/slot"
)

// Request is one parse call as read from a batch file or the serve stream
type Request struct {
	ID            string     `json:"id,omitempty" yaml:"id,omitempty"`
	Lang          string     `json:"lang,omitempty" yaml:"lang,omitempty"`
	Query         string     `json:"query" yaml:"query"`
	Kinds         []string   `json:"kinds,omitempty" yaml:"kinds,omitempty"`
	ReferenceTime *time.Time `json:"reference_time,omitempty" yaml:"reference_time,omitempty"` // RFC 3339, now when absent
}

// Response carries either the values of a request or its error, never both
type Response struct {
	ID     string       `json:"id"`
	Lang   string       `json:"lang"`
	Query  string       `json:"query"`
	Values []slot.Value `json:"values"`
	Error  *ErrorInfo   `json:"error,omitempty"`
}

// ErrorType classifies a failed request
type ErrorType string

const (
	ErrorConfiguration ErrorType = "configuration" // unsupported language
	ErrorInvalidKind   ErrorType = "invalid_kind"  // unknown kind identifier
	ErrorParseFailure  ErrorType = "parse_failure" // parser rejected the query
	ErrorInvalidInput  ErrorType = "invalid_input" // request line is not valid JSON
	ErrorCanceled      ErrorType = "canceled"      // batch stopped before the request ran
)

// ErrorInfo is the serialized form of a request error
type ErrorInfo struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
}

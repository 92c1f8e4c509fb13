package protocol

import "fmt"

// Standard JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603

	// CodeResourceNotFound is the MCP-defined code for resource reads
	// against an unknown URI.
	CodeResourceNotFound = -32002
)

// Error is a JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// NewMethodNotFoundError creates an Error for an unrecognized method.
func NewMethodNotFoundError(method string) *Error {
	return &Error{Code: CodeMethodNotFound, Message: fmt.Sprintf("Method not found: %s", method)}
}

// NewInvalidParamsError creates an Error for malformed request parameters.
func NewInvalidParamsError(message string) *Error {
	return &Error{Code: CodeInvalidParams, Message: message}
}

// NewInternalError creates an Error for server-side failures.
func NewInternalError(message string) *Error {
	return &Error{Code: CodeInternalError, Message: message}
}

package api

//go:generate protoc -I=../../../proto --go_out=. --go_opt=module=trisa-demo/relay/internal/rvasp/api --go-grpc_out=. --go-grpc_opt=module=trisa-demo/relay/internal/rvasp/api rvasp/v1/api.proto

import "fmt"

// ServiceName is the fully qualified name the rVASP registers LiveUpdates under.
const ServiceName = "rvasp.v1.TRISADemo"

// Error codes for quick reference and lookups.
const (
	ErrNotFound  = 404
	ErrWrongVASP = 405
	ErrInternal  = 500
)

// Errorf is a quick one liner to create error objects.
func Errorf(code int32, format string, a ...interface{}) *Error {
	if len(a) > 0 {
		format = fmt.Sprintf(format, a...)
	}
	return &Error{
		Code:    code,
		Message: format,
	}
}

// Error allows protocol Error objects to implement the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

package errors

// ErrorDetails is a single structured error entry: a message, a machine readable code
// and optionally the input field and object it relates to.
type ErrorDetails struct {
	Message string
	Code    string
	Field   string
	Object  any
}

// NewErrorDetails creates a new ErrorDetails.
func NewErrorDetails(message, code, field string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
	}
}

// NewErrorDetailsWithObject creates a new ErrorDetails with an associated object.
func NewErrorDetailsWithObject(message, code, field string, object any) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
		Object:  object,
	}
}

func (e *ErrorDetails) Error() string {
	return e.Message
}

// ErrorCodeEquals checks whether err is an ErrorDetails with the given code.
func ErrorCodeEquals(err error, code string) bool {
	errDetails, ok := err.(*ErrorDetails)
	if !ok {
		return false
	}

	return errDetails.Code == code
}

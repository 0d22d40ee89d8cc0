package status

// HTTPError is a failure, which has a natural HTTP representation. Returning it from a
// handler or from the parser results in a response with the Code, not in a server fault.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrBadRequest           = NewError(BadRequest, "bad request")
	ErrMalformedRequestLine = NewError(BadRequest, "malformed request line")
	ErrURLDecoding          = NewError(BadRequest, "invalid urlencoded sequence")
	ErrBadContentLength     = NewError(BadRequest, "invalid Content-Length value")
	ErrBodyTooShort         = NewError(BadRequest, "request body is shorter than declared")
	ErrUnauthorized         = NewError(Unauthorized, "unauthorized")
	ErrNotFound             = NewError(NotFound, "not found")
	ErrMethodNotAllowed     = NewError(MethodNotAllowed, "method not allowed")
	ErrBodyTooLarge         = NewError(RequestEntityTooLarge, "request body is too large")
	ErrURITooLong           = NewError(RequestURITooLong, "request URI too long")
	ErrHeaderFieldsTooLarge = NewError(HeaderFieldsTooLarge, "too large headers section")
	ErrInternalServerError  = NewError(InternalServerError, "internal server error")
)

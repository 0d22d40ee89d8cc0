package router

import (
	"fmt"

	"github.com/indigo-web/catalina/http"
)

// PanicError carries the value a handler panicked with.
type PanicError struct {
	Value any
}

func (p PanicError) Error() string {
	return fmt.Sprintf("handler panicked: %v", p.Value)
}

// Recover catches panics of the next handler func and returns them as a PanicError
// instead. Whatever response was built before the panic is discarded, so a half-cooked
// one never reaches the client.
func Recover(next HandlerFunc) HandlerFunc {
	return func(request *http.Request) (response *http.Response, err error) {
		defer func() {
			if r := recover(); r != nil {
				response, err = nil, PanicError{Value: r}
			}
		}()

		return next(request)
	}
}

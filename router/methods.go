package router

import (
	"github.com/indigo-web/catalina/http"
	"github.com/indigo-web/catalina/http/method"
	"github.com/indigo-web/catalina/http/status"
)

// Methods maps request methods to their handler funcs. Used by handlers matched by path
// only, in order to split GET and POST behaviours.
type Methods map[method.Method]HandlerFunc

// Handle calls the handler func of the request's method. Methods without one
// result in status.ErrMethodNotAllowed.
func (m Methods) Handle(request *http.Request) (*http.Response, error) {
	fn, found := m[request.Method]
	if !found {
		return nil, status.ErrMethodNotAllowed
	}

	return fn(request)
}

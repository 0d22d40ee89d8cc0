package router

import (
	"github.com/indigo-web/catalina/http"
	"github.com/indigo-web/catalina/http/method"
)

// Path matches requests with exactly this path, regardless of the query and method.
func Path(path string) Predicate {
	return func(request *http.Request) bool {
		return request.Path() == path
	}
}

// MethodPath matches requests with both the method and the path.
func MethodPath(m method.Method, path string) Predicate {
	return func(request *http.Request) bool {
		return request.Method == m && request.Path() == path
	}
}

// Any matches everything.
func Any() Predicate {
	return func(*http.Request) bool {
		return true
	}
}

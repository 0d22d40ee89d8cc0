package router

import (
	"errors"

	"github.com/indigo-web/catalina/http"
)

// ErrNoRoute is returned when no handler matched a request. Unlike a 404, this is a
// misconfiguration of the table, as a complete table always ends with a catch-all.
var ErrNoRoute = errors.New("no route matched the request")

// Handler is a unit of routing: it decides whether it serves a request and, if so,
// builds a response for it.
type Handler interface {
	Matches(request *http.Request) bool
	Handle(request *http.Request) (*http.Response, error)
}

type (
	Predicate   func(request *http.Request) bool
	HandlerFunc func(request *http.Request) (*http.Response, error)
)

// Route glues a predicate and a handler func into a Handler.
type Route struct {
	Predicate Predicate
	Func      HandlerFunc
}

func NewRoute(predicate Predicate, fn HandlerFunc) Route {
	return Route{
		Predicate: predicate,
		Func:      fn,
	}
}

func (r Route) Matches(request *http.Request) bool {
	return r.Predicate(request)
}

func (r Route) Handle(request *http.Request) (*http.Response, error) {
	return r.Func(request)
}

// Table is an ordered list of handlers, where the first matching one wins. Therefore,
// more specific handlers must be registered earlier than more generic ones, especially
// catch-alls, otherwise they'll be shadowed and never reached.
//
// Table must be fully populated before serving, as it isn't synchronized.
type Table struct {
	handlers []Handler
}

func New(handlers ...Handler) *Table {
	return &Table{
		handlers: handlers,
	}
}

// Register appends the handler to the end of the table.
func (t *Table) Register(handler Handler) *Table {
	t.handlers = append(t.handlers, handler)
	return t
}

// Select returns the first handler matching the request.
func (t *Table) Select(request *http.Request) (Handler, error) {
	for _, handler := range t.handlers {
		if handler.Matches(request) {
			return handler, nil
		}
	}

	return nil, ErrNoRoute
}

// Dispatch selects the handler and calls it.
func (t *Table) Dispatch(request *http.Request) (*http.Response, error) {
	handler, err := t.Select(request)
	if err != nil {
		return nil, err
	}

	return handler.Handle(request)
}

func (t *Table) Len() int {
	return len(t.handlers)
}

package router

import (
	"testing"

	"github.com/indigo-web/catalina/http"
	"github.com/indigo-web/catalina/http/method"
	"github.com/indigo-web/catalina/http/status"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T, line string) *http.Request {
	requestLine, err := http.ParseRequestLine(line)
	require.NoError(t, err)

	return http.NewRequest(requestLine)
}

func respond(body string) HandlerFunc {
	return func(*http.Request) (*http.Response, error) {
		return http.NewResponse().String(body), nil
	}
}

func dispatch(t *testing.T, table *Table, line string) string {
	response, err := table.Dispatch(newRequest(t, line))
	require.NoError(t, err)

	return string(response.Body())
}

func TestTable(t *testing.T) {
	specific := NewRoute(Path("/login"), respond("login"))
	catchAll := NewRoute(Any(), respond("static"))

	t.Run("specific first is reachable", func(t *testing.T) {
		table := New(specific, catchAll)
		require.Equal(t, "login", dispatch(t, table, "GET /login HTTP/1.1"))
		require.Equal(t, "static", dispatch(t, table, "GET /index.html HTTP/1.1"))
	})

	t.Run("catch-all first shadows", func(t *testing.T) {
		table := New(catchAll, specific)
		require.Equal(t, "static", dispatch(t, table, "GET /login HTTP/1.1"))
		require.Equal(t, "static", dispatch(t, table, "GET /index.html HTTP/1.1"))
	})

	t.Run("first match among equals", func(t *testing.T) {
		table := New().
			Register(NewRoute(Path("/"), respond("first"))).
			Register(NewRoute(Path("/"), respond("second")))
		require.Equal(t, 2, table.Len())
		require.Equal(t, "first", dispatch(t, table, "GET / HTTP/1.1"))
	})

	t.Run("no route", func(t *testing.T) {
		table := New(specific)
		_, err := table.Select(newRequest(t, "GET /missing HTTP/1.1"))
		require.ErrorIs(t, err, ErrNoRoute)
		_, err = table.Dispatch(newRequest(t, "GET /missing HTTP/1.1"))
		require.ErrorIs(t, err, ErrNoRoute)
	})

	t.Run("empty table", func(t *testing.T) {
		_, err := New().Dispatch(newRequest(t, "GET / HTTP/1.1"))
		require.ErrorIs(t, err, ErrNoRoute)
	})
}

func TestPredicates(t *testing.T) {
	t.Run("path ignores query", func(t *testing.T) {
		require.True(t, Path("/login")(newRequest(t, "POST /login?next=/ HTTP/1.1")))
		require.False(t, Path("/login")(newRequest(t, "GET /login/ HTTP/1.1")))
	})

	t.Run("method and path", func(t *testing.T) {
		predicate := MethodPath(method.GET, "/")
		require.True(t, predicate(newRequest(t, "GET / HTTP/1.1")))
		require.False(t, predicate(newRequest(t, "POST / HTTP/1.1")))
		require.False(t, predicate(newRequest(t, "GET /index.html HTTP/1.1")))
	})

	t.Run("any", func(t *testing.T) {
		require.True(t, Any()(newRequest(t, "BREW /pot HTCPCP/1.0")))
	})
}

func TestMethods(t *testing.T) {
	methods := Methods{
		method.GET:  respond("form"),
		method.POST: respond("submit"),
	}

	response, err := methods.Handle(newRequest(t, "GET /login HTTP/1.1"))
	require.NoError(t, err)
	require.Equal(t, "form", string(response.Body()))

	response, err = methods.Handle(newRequest(t, "POST /login HTTP/1.1"))
	require.NoError(t, err)
	require.Equal(t, "submit", string(response.Body()))

	for _, line := range []string{"DELETE /login HTTP/1.1", "BREW /login HTTP/1.1"} {
		_, err = methods.Handle(newRequest(t, line))
		require.ErrorIs(t, err, status.ErrMethodNotAllowed)
	}
}

func TestRecover(t *testing.T) {
	t.Run("panic becomes an error", func(t *testing.T) {
		fn := Recover(func(*http.Request) (*http.Response, error) {
			panic("oops")
		})

		response, err := fn(newRequest(t, "GET / HTTP/1.1"))
		require.Nil(t, response)

		var panicErr PanicError
		require.ErrorAs(t, err, &panicErr)
		require.Equal(t, "oops", panicErr.Value)
	})

	t.Run("passes through otherwise", func(t *testing.T) {
		response, err := Recover(respond("fine"))(newRequest(t, "GET / HTTP/1.1"))
		require.NoError(t, err)
		require.Equal(t, "fine", string(response.Body()))

		_, err = Recover(Methods{}.Handle)(newRequest(t, "GET / HTTP/1.1"))
		require.ErrorIs(t, err, status.ErrMethodNotAllowed)
	})
}

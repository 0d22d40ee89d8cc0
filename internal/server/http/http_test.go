package http

import (
	"bufio"
	"errors"
	"io"
	"net"
	stdhttp "net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/indigo-web/catalina/config"
	"github.com/indigo-web/catalina/http"
	"github.com/indigo-web/catalina/http/method"
	"github.com/indigo-web/catalina/internal/metrics"
	"github.com/indigo-web/catalina/router"
)

func getServer(cfg *config.Config) (*Server, *metrics.Metrics) {
	table := router.New(
		router.NewRoute(router.MethodPath(method.GET, "/"), func(*http.Request) (*http.Response, error) {
			return http.NewResponse().String("Hello world!"), nil
		}),
		router.NewRoute(router.Path("/echo"), router.Methods{
			method.POST: func(request *http.Request) (*http.Response, error) {
				return http.NewResponse().String(request.Params.Value("name")), nil
			},
		}.Handle),
		router.NewRoute(router.Path("/fault"), func(*http.Request) (*http.Response, error) {
			return nil, errors.New("something went wrong")
		}),
		router.NewRoute(router.Path("/panic"), func(*http.Request) (*http.Response, error) {
			panic("handler is broken")
		}),
		router.NewRoute(router.Path("/nil"), func(*http.Request) (*http.Response, error) {
			return nil, nil
		}),
	)

	m := metrics.Nop()
	return NewServer(cfg, table, zerolog.Nop(), m), m
}

// exchange sends raw data and returns everything the server responded before closing.
func exchange(t *testing.T, srv *Server, raw string) string {
	client, server := net.Pipe()
	done := make(chan struct{})

	go func() {
		srv.Run(server)
		close(done)
	}()

	go func() {
		// fails if the server closes the connection before reading everything
		_, _ = client.Write([]byte(raw))
	}()

	data, err := io.ReadAll(client)
	require.NoError(t, err)
	<-done
	require.NoError(t, client.Close())

	return string(data)
}

func parseResponse(t *testing.T, raw string) (*stdhttp.Response, string) {
	resp, err := stdhttp.ReadResponse(bufio.NewReader(strings.NewReader(raw)), nil)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestServer(t *testing.T) {
	t.Run("simple request", func(t *testing.T) {
		srv, m := getServer(config.Default())
		resp, body := parseResponse(t, exchange(t, srv, "GET / HTTP/1.1\r\nHost: localhost\r\n\r\n"))
		require.Equal(t, 200, resp.StatusCode)
		require.Equal(t, "Hello world!", body)
		require.Equal(t, "text/html;charset=utf-8", resp.Header.Get("Content-Type"))
		require.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("200")))
		require.Zero(t, testutil.ToFloat64(m.ActiveConnections))
	})

	t.Run("form body", func(t *testing.T) {
		srv, _ := getServer(config.Default())
		raw := "POST /echo?name=query HTTP/1.1\r\n" +
			"Content-Type: application/x-www-form-urlencoded\r\n" +
			"Content-Length: 9\r\n\r\n" +
			"name=body"
		resp, body := parseResponse(t, exchange(t, srv, raw))
		require.Equal(t, 200, resp.StatusCode)
		require.Equal(t, "body", body)
	})

	t.Run("malformed request line", func(t *testing.T) {
		srv, m := getServer(config.Default())
		resp, _ := parseResponse(t, exchange(t, srv, "GARBAGE\r\n\r\n"))
		require.Equal(t, 400, resp.StatusCode)
		require.Equal(t, 1.0, testutil.ToFloat64(m.ConnectionFailures.WithLabelValues(metrics.FailureRequest)))
	})

	t.Run("request line too long", func(t *testing.T) {
		cfg := config.Default()
		cfg.URI.RequestLineSize = 64
		srv, _ := getServer(cfg)
		resp, _ := parseResponse(t, exchange(t, srv, "GET /"+strings.Repeat("a", 128)+" HTTP/1.1\r\n\r\n"))
		require.Equal(t, 414, resp.StatusCode)
	})

	t.Run("method not allowed", func(t *testing.T) {
		srv, _ := getServer(config.Default())
		resp, body := parseResponse(t, exchange(t, srv, "GET /echo HTTP/1.1\r\n\r\n"))
		require.Equal(t, 405, resp.StatusCode)
		require.Equal(t, "405 Method Not Allowed", body)
	})

	t.Run("no route is a server fault", func(t *testing.T) {
		srv, m := getServer(config.Default())
		resp, _ := parseResponse(t, exchange(t, srv, "GET /missing HTTP/1.1\r\n\r\n"))
		require.Equal(t, 500, resp.StatusCode)
		require.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("500")))
	})

	t.Run("handler fault", func(t *testing.T) {
		srv, _ := getServer(config.Default())
		resp, _ := parseResponse(t, exchange(t, srv, "GET /fault HTTP/1.1\r\n\r\n"))
		require.Equal(t, 500, resp.StatusCode)
	})

	t.Run("handler panic", func(t *testing.T) {
		srv, m := getServer(config.Default())
		resp, body := parseResponse(t, exchange(t, srv, "GET /panic HTTP/1.1\r\n\r\n"))
		require.Equal(t, 500, resp.StatusCode)
		require.Equal(t, "500 Internal Server Error", body)
		require.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("500")))

		// the server survives it
		resp, _ = parseResponse(t, exchange(t, srv, "GET / HTTP/1.1\r\n\r\n"))
		require.Equal(t, 200, resp.StatusCode)
	})

	t.Run("nil response", func(t *testing.T) {
		srv, _ := getServer(config.Default())
		resp, body := parseResponse(t, exchange(t, srv, "GET /nil HTTP/1.1\r\n\r\n"))
		require.Equal(t, 200, resp.StatusCode)
		require.Empty(t, body)
	})

	t.Run("interrupted headers", func(t *testing.T) {
		srv, m := getServer(config.Default())
		client, server := net.Pipe()
		done := make(chan struct{})
		go func() {
			srv.Run(server)
			close(done)
		}()

		_, err := client.Write([]byte("GET / HTTP/1.1\r\nHost: loc"))
		require.NoError(t, err)
		require.NoError(t, client.Close())
		<-done

		require.Equal(t, 1.0, testutil.ToFloat64(m.ConnectionFailures.WithLabelValues(metrics.FailureRead)))
		require.Zero(t, testutil.ToFloat64(m.Requests.WithLabelValues("400")))
	})

	t.Run("empty connection", func(t *testing.T) {
		srv, m := getServer(config.Default())
		client, server := net.Pipe()
		done := make(chan struct{})
		go func() {
			srv.Run(server)
			close(done)
		}()

		require.NoError(t, client.Close())
		<-done

		require.Zero(t, testutil.ToFloat64(m.ConnectionFailures.WithLabelValues(metrics.FailureRead)))
		require.Zero(t, testutil.ToFloat64(m.ConnectionFailures.WithLabelValues(metrics.FailureRequest)))
	})

	t.Run("body shorter than declared times out", func(t *testing.T) {
		cfg := config.Default()
		cfg.NET.ReadTimeout = config.Duration(100 * time.Millisecond)
		srv, m := getServer(cfg)
		raw := "POST /echo HTTP/1.1\r\nContent-Length: 100\r\n\r\nname=x"

		require.Empty(t, exchange(t, srv, raw))
		require.Equal(t, 1.0, testutil.ToFloat64(m.ConnectionFailures.WithLabelValues(metrics.FailureTimeout)))
	})
}

package http1

import (
	"bufio"
	"bytes"
	"io"
	stdhttp "net/http"
	"strconv"
	"testing"

	"github.com/indigo-web/catalina/http"
	"github.com/indigo-web/catalina/http/cookie"
	"github.com/indigo-web/catalina/http/mime"
	"github.com/indigo-web/catalina/http/status"
	"github.com/stretchr/testify/require"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

func getSerializer() *Serializer {
	return NewSerializer(make([]byte, 0, 1024))
}

func readResponse(t *testing.T, data []byte) (*stdhttp.Response, []byte) {
	resp, err := stdhttp.ReadResponse(bufio.NewReader(bytes.NewReader(data)), nil)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp, body
}

func TestSerializer_Write(t *testing.T) {
	t.Run("default response", func(t *testing.T) {
		var buff bytes.Buffer
		require.NoError(t, getSerializer().Write(http.NewResponse(), &buff))
		require.Equal(t,
			"HTTP/1.1 200 OK\r\n"+
				"Content-Type: text/html;charset=utf-8\r\n"+
				"Content-Length: 0\r\n"+
				"\r\n",
			buff.String(),
		)
	})

	t.Run("headers keep insertion order", func(t *testing.T) {
		response := http.NewResponse().
			Header("X-First", "1").
			ContentType(mime.CSS).
			Header("X-Second", "2").
			String("body{}")

		var buff bytes.Buffer
		require.NoError(t, getSerializer().Write(response, &buff))
		require.Equal(t,
			"HTTP/1.1 200 OK\r\n"+
				"X-First: 1\r\n"+
				"Content-Type: text/css\r\n"+
				"X-Second: 2\r\n"+
				"Content-Length: 6\r\n"+
				"\r\n"+
				"body{}",
			buff.String(),
		)
	})

	t.Run("parsed by the standard library", func(t *testing.T) {
		response := http.NewResponse().
			Redirect("/index.html").
			Cookie(cookie.New("JSESSIONID", "abc"), cookie.Expired("theme")).
			String("Login success")

		var buff bytes.Buffer
		require.NoError(t, getSerializer().Write(response, &buff))
		resp, body := readResponse(t, buff.Bytes())
		require.Equal(t, int(status.Found), resp.StatusCode)
		require.Equal(t, "/index.html", resp.Header.Get("Location"))
		require.Len(t, resp.Header.Values("Set-Cookie"), 2)
		require.Equal(t, "Login success", string(body))
	})

	t.Run("body is written verbatim", func(t *testing.T) {
		raw := []byte("line1\nline2\r\n\x00")
		var buff bytes.Buffer
		require.NoError(t, getSerializer().Write(http.NewResponse().Bytes(raw), &buff))
		_, body := readResponse(t, buff.Bytes())
		require.Equal(t, raw, body)
	})

	t.Run("status message with spaces", func(t *testing.T) {
		var buff bytes.Buffer
		response := http.NewResponse().Code(status.MethodNotAllowed)
		require.NoError(t, getSerializer().Write(response, &buff))
		require.True(t, bytes.HasPrefix(buff.Bytes(), []byte("HTTP/1.1 405 Method Not Allowed\r\n")))
	})

	t.Run("buffer is reused", func(t *testing.T) {
		serializer := getSerializer()
		var first, second bytes.Buffer
		require.NoError(t, serializer.Write(http.NewResponse().String("first"), &first))
		require.NoError(t, serializer.Write(http.NewResponse().String("2"), &second))
		_, body := readResponse(t, second.Bytes())
		require.Equal(t, "2", string(body))
	})

	t.Run("buffered writer is flushed", func(t *testing.T) {
		var buff bytes.Buffer
		writer := bufio.NewWriterSize(&buff, 4096)
		require.NoError(t, getSerializer().Write(http.NewResponse().String("flushed"), writer))
		_, body := readResponse(t, buff.Bytes())
		require.Equal(t, "flushed", string(body))
	})
}

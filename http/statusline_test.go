package http

import (
	"testing"

	"github.com/indigo-web/catalina/http/status"
	"github.com/stretchr/testify/require"
)

func TestStatusLine(t *testing.T) {
	t.Run("new", func(t *testing.T) {
		line := NewStatusLine(HTTP11, status.NotFound)
		require.Equal(t, StatusLine{"HTTP/1.1", "404", "Not Found"}, line)
		require.Equal(t, "HTTP/1.1 404 Not Found", line.String())
	})

	t.Run("message with spaces", func(t *testing.T) {
		line, err := ParseStatusLine("HTTP/1.1 401 Unauthorized and then some")
		require.NoError(t, err)
		require.Equal(t, StatusLine{"HTTP/1.1", "401", "Unauthorized and then some"}, line)
	})

	t.Run("no message", func(t *testing.T) {
		line, err := ParseStatusLine("HTTP/1.1 200")
		require.NoError(t, err)
		require.Equal(t, StatusLine{"HTTP/1.1", "200", ""}, line)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, tc := range []string{"", "HTTP/1.1", "HTTP/1.1 ", " 200 OK"} {
			_, err := ParseStatusLine(tc)
			require.ErrorIs(t, err, ErrMalformedStatusLine, tc)
		}
	})
}

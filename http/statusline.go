package http

import (
	"errors"
	"strings"

	"github.com/indigo-web/catalina/http/status"
)

const HTTP11 = "HTTP/1.1"

var ErrMalformedStatusLine = errors.New("malformed status line")

// StatusLine is the first line of a response: `VERSION SP CODE SP MESSAGE`.
type StatusLine struct {
	Protocol string
	Code     string
	Message  string
}

func NewStatusLine(protocol string, code status.Code) StatusLine {
	return StatusLine{
		Protocol: protocol,
		Code:     status.StringCode(code),
		Message:  string(status.Text(code)),
	}
}

// ParseStatusLine splits the line on the first two spaces only, so the message may
// itself contain spaces. A missing message results in an empty one.
func ParseStatusLine(line string) (StatusLine, error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 || len(parts[0]) == 0 || len(parts[1]) == 0 {
		return StatusLine{}, ErrMalformedStatusLine
	}

	statusLine := StatusLine{
		Protocol: parts[0],
		Code:     parts[1],
	}

	if len(parts) == 3 {
		statusLine.Message = parts[2]
	}

	return statusLine, nil
}

func (s StatusLine) String() string {
	return s.Protocol + " " + s.Code + " " + s.Message
}

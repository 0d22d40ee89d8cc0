package http

import (
	"strings"

	"github.com/indigo-web/catalina/http/status"
)

// RequestLine is the first line of a request: `METHOD SP PATH SP VERSION`. The Path is
// kept raw, query included.
type RequestLine struct {
	Method   string
	Path     string
	Protocol string
}

// ParseRequestLine splits the line into exactly three whitespace-separated tokens. Any
// other number of tokens results in status.ErrMalformedRequestLine.
func ParseRequestLine(line string) (RequestLine, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 3 {
		return RequestLine{}, status.ErrMalformedRequestLine
	}

	return RequestLine{
		Method:   tokens[0],
		Path:     tokens[1],
		Protocol: tokens[2],
	}, nil
}

func (r RequestLine) String() string {
	return r.Method + " " + r.Path + " " + r.Protocol
}

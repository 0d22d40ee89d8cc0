package http

import (
	"strings"

	"github.com/indigo-web/catalina/http/cookie"
	"github.com/indigo-web/catalina/http/method"
	"github.com/indigo-web/catalina/kv"
)

type (
	Headers = *kv.Storage
	Header  = kv.Pair
	Params  = *kv.Storage
)

// Request represents HTTP request
type Request struct {
	RequestLine RequestLine
	// Method is an enum representing the request method. Unknown methods are kept
	// as text in RequestLine.Method only.
	Method method.Method
	// Headers holds non-normalized header pairs, even though lookup is case-insensitive.
	// Repeated headers keep the last value.
	Headers Headers
	// Cookies are pairs parsed from the Cookie header.
	Cookies cookie.Jar
	// Params are merged URI query and urlencoded body parameters. Body wins on conflicts.
	Params Params
	// Body is the raw request body, read exactly by Content-Length.
	Body []byte
	// Remote is the peer address, if known.
	Remote string
}

func NewRequest(line RequestLine) *Request {
	return &Request{
		RequestLine: line,
		Method:      method.Parse(line.Method),
		Headers:     kv.New(),
		Cookies:     cookie.NewJar(),
		Params:      kv.New(),
	}
}

// Path returns the request path without a query.
func (r *Request) Path() string {
	path, _, _ := strings.Cut(r.RequestLine.Path, "?")
	return path
}

// Query returns the raw query component, i.e. everything after the first '?'.
func (r *Request) Query() string {
	_, query, _ := strings.Cut(r.RequestLine.Path, "?")
	return query
}

// Cookie returns the value of the named cookie and whether it's presented.
func (r *Request) Cookie(name string) (string, bool) {
	return r.Cookies.Get(name)
}

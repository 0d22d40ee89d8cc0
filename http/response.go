package http

import (
	"errors"
	"strconv"

	"github.com/indigo-web/catalina/http/cookie"
	"github.com/indigo-web/catalina/http/mime"
	"github.com/indigo-web/catalina/http/status"
	"github.com/indigo-web/catalina/kv"
	"github.com/indigo-web/utils/uf"
)

const (
	// why 5? Content-Type, Content-Length, Location, Set-Cookie and one spare
	preallocRespHeaders = 5

	headerContentType   = "Content-Type"
	headerContentLength = "Content-Length"
	headerLocation      = "Location"
	headerSetCookie     = "Set-Cookie"
)

// Response is built by a handler via chained calls and afterwards is only read by the
// serializer. Default Content-Type and Content-Length are never stored, they are
// injected by Headers only if not set explicitly.
type Response struct {
	code       status.Code
	statusLine StatusLine
	headers    *kv.Storage
	body       []byte
}

// NewResponse returns a new instance of the Response object with status code set to 200 OK
// and an empty body.
func NewResponse() *Response {
	return &Response{
		code:       status.OK,
		statusLine: NewStatusLine(HTTP11, status.OK),
		headers:    kv.NewPrealloc(preallocRespHeaders),
	}
}

// Code sets a Response code and a corresponding status text.
func (r *Response) Code(code status.Code) *Response {
	r.code = code
	r.statusLine = NewStatusLine(r.statusLine.Protocol, code)
	return r
}

// Header sets the header value. Setting the same key again overrides the previous value.
func (r *Response) Header(key, value string) *Response {
	r.headers.Set(key, value)
	return r
}

// ContentType sets a custom Content-Type header value.
func (r *Response) ContentType(value mime.MIME) *Response {
	return r.Header(headerContentType, value)
}

// Cookie adds cookies. They are rendered as a set of Set-Cookie headers
func (r *Response) Cookie(cookies ...cookie.Cookie) *Response {
	for _, c := range cookies {
		r.headers.Add(headerSetCookie, c.String())
	}

	return r
}

// Redirect sets 302 Found with the Location header.
func (r *Response) Redirect(location string) *Response {
	return r.
		Code(status.Found).
		Header(headerLocation, location)
}

// String sets the response's body to the passed string
func (r *Response) String(body string) *Response {
	return r.Bytes(uf.S2B(body))
}

// Bytes sets the response's body to passed slice WITHOUT COPYING. Changing
// the passed slice later will affect the response by itself
func (r *Response) Bytes(body []byte) *Response {
	r.body = body
	return r
}

// Error returns a response builder with an error set. If passed err is nil, nothing will happen.
// If an instance of status.HTTPError is passed, its code is used, otherwise it's
// status.InternalServerError. The body is the status text.
func (r *Response) Error(err error) *Response {
	if err == nil {
		return r
	}

	code := status.InternalServerError
	var httpErr status.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
	}

	return r.
		Code(code).
		String(status.StringCode(code) + " " + string(status.Text(code)))
}

// StatusCode returns the numeric response code.
func (r *Response) StatusCode() status.Code {
	return r.code
}

func (r *Response) StatusLine() StatusLine {
	return r.statusLine
}

// Headers returns headers as they must be transmitted: explicitly set ones in insertion
// order, followed by Content-Type and Content-Length if they weren't set. The returned
// storage is a copy.
func (r *Response) Headers() *kv.Storage {
	headers := r.headers.Clone()

	if !headers.Has(headerContentType) {
		headers.Add(headerContentType, mime.Default)
	}

	if !headers.Has(headerContentLength) {
		headers.Add(headerContentLength, strconv.Itoa(len(r.body)))
	}

	return headers
}

// HeaderValue returns the explicitly set header value.
func (r *Response) HeaderValue(key string) (string, bool) {
	return r.headers.Get(key)
}

func (r *Response) Body() []byte {
	return r.body
}

// Error is a shortcut for NewResponse().Error(err)
func Error(err error) *Response {
	return NewResponse().Error(err)
}

package status

import "strconv"

/*
INFO: a subset of net/http/status.go. Kept separately because of unwanted name
collisions between catalina/http and net/http
*/

type (
	Code   uint16
	Status string
)

// HTTP status codes as registered with IANA.
// See: https://www.iana.org/assignments/http-status-codes/http-status-codes.xhtml
const (
	OK        Code = 200 // RFC 9110, 15.3.1
	Created   Code = 201 // RFC 9110, 15.3.2
	NoContent Code = 204 // RFC 9110, 15.3.5

	MovedPermanently  Code = 301 // RFC 9110, 15.4.2
	Found             Code = 302 // RFC 9110, 15.4.3
	SeeOther          Code = 303 // RFC 9110, 15.4.4
	TemporaryRedirect Code = 307 // RFC 9110, 15.4.8

	BadRequest            Code = 400 // RFC 9110, 15.5.1
	Unauthorized          Code = 401 // RFC 9110, 15.5.2
	Forbidden             Code = 403 // RFC 9110, 15.5.4
	NotFound              Code = 404 // RFC 9110, 15.5.5
	MethodNotAllowed      Code = 405 // RFC 9110, 15.5.6
	RequestTimeout        Code = 408 // RFC 9110, 15.5.9
	LengthRequired        Code = 411 // RFC 9110, 15.5.12
	RequestEntityTooLarge Code = 413 // RFC 9110, 15.5.14
	RequestURITooLong     Code = 414 // RFC 9110, 15.5.15
	HeaderFieldsTooLarge  Code = 431 // RFC 6585, 5

	InternalServerError     Code = 500 // RFC 9110, 15.6.1
	NotImplemented          Code = 501 // RFC 9110, 15.6.2
	ServiceUnavailable      Code = 503 // RFC 9110, 15.6.4
	HTTPVersionNotSupported Code = 505 // RFC 9110, 15.6.6
)

// Text returns a text for the HTTP status code. It returns the empty
// string if the code is unknown.
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case Created:
		return "Created"
	case NoContent:
		return "No Content"
	case MovedPermanently:
		return "Moved Permanently"
	case Found:
		return "Found"
	case SeeOther:
		return "See Other"
	case TemporaryRedirect:
		return "Temporary Redirect"
	case BadRequest:
		return "Bad Request"
	case Unauthorized:
		return "Unauthorized"
	case Forbidden:
		return "Forbidden"
	case NotFound:
		return "Not Found"
	case MethodNotAllowed:
		return "Method Not Allowed"
	case RequestTimeout:
		return "Request Timeout"
	case LengthRequired:
		return "Length Required"
	case RequestEntityTooLarge:
		return "Request Entity Too Large"
	case RequestURITooLong:
		return "Request URI Too Long"
	case HeaderFieldsTooLarge:
		return "Request Header Fields Too Large"
	case InternalServerError:
		return "Internal Server Error"
	case NotImplemented:
		return "Not Implemented"
	case ServiceUnavailable:
		return "Service Unavailable"
	case HTTPVersionNotSupported:
		return "HTTP Version Not Supported"
	default:
		return ""
	}
}

// StringCode returns the code as a decimal string, e.g. "200".
func StringCode(code Code) string {
	return strconv.Itoa(int(code))
}

// IsRedirect reports whether the code belongs to the 3xx class.
func IsRedirect(code Code) bool {
	return code >= 300 && code < 400
}

// IsClientError reports whether the code belongs to the 4xx class.
func IsClientError(code Code) bool {
	return code >= 400 && code < 500
}

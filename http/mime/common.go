package mime

type MIME = string

const (
	Plain          MIME = "text/plain"
	HTML           MIME = "text/html"
	CSS            MIME = "text/css"
	JS             MIME = "text/javascript"
	FormUrlencoded MIME = "application/x-www-form-urlencoded"
)

type Charset = string

const UTF8 Charset = "utf-8"

// WithCharset appends the charset parameter in the compact form, e.g. text/html;charset=utf-8
func WithCharset(mime MIME, charset Charset) string {
	return mime + ";charset=" + charset
}

// Default is the content type of responses which don't set one explicitly.
var Default = WithCharset(HTML, UTF8)

package http1

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/indigo-web/catalina/config"
	"github.com/indigo-web/catalina/http"
	"github.com/indigo-web/catalina/http/cookie"
	"github.com/indigo-web/catalina/http/status"
	"github.com/indigo-web/catalina/internal/urlencoded"
	"github.com/indigo-web/catalina/kv"
)

// Parser decodes a single HTTP/1.x request out of a line-oriented stream. Lines are
// terminated by CRLF or a bare LF. The body isn't self-delimited: it's exactly
// Content-Length bytes, and only for methods carrying a body. Body params are merged
// over the query ones.
type Parser struct {
	cfg    *config.Config
	reader *bufio.Reader
	line   []byte
}

func NewParser(cfg *config.Config, reader *bufio.Reader) *Parser {
	return &Parser{
		cfg:    cfg,
		reader: reader,
	}
}

// Parse reads and decodes exactly one request. It returns io.EOF if the stream was closed
// before any request data, io.ErrUnexpectedEOF if it was closed in the middle of the
// headers, status.HTTPError on malformed or too large input, or an I/O error as is.
func (p *Parser) Parse() (*http.Request, error) {
	requestLine, err := p.readRequestLine()
	if err != nil {
		return nil, err
	}

	line, err := http.ParseRequestLine(requestLine)
	if err != nil {
		return nil, err
	}

	request := http.NewRequest(line)

	if err = p.readHeaders(request); err != nil {
		return nil, err
	}

	if value, found := request.Headers.Get("Cookie"); found {
		cookie.Parse(request.Cookies, value)
	}

	if err = urlencoded.Parse(request.Query(), request.Params); err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	if request.Method.CarriesBody() {
		if err = p.readBody(request); err != nil {
			return nil, err
		}
	}

	return request, nil
}

func (p *Parser) readRequestLine() (string, error) {
	// RFC 9112, 2.2: a server SHOULD ignore at least one empty line received
	// prior to the request-line
	for {
		line, err := p.readLine(p.cfg.URI.RequestLineSize, status.ErrURITooLong)
		if err != nil {
			return "", err
		}

		if len(line) > 0 {
			return line, nil
		}
	}
}

func (p *Parser) readHeaders(request *http.Request) error {
	var count int

	for {
		line, err := p.readLine(p.cfg.Headers.MaxLineSize, status.ErrHeaderFieldsTooLarge)
		switch {
		case err == io.EOF:
			return io.ErrUnexpectedEOF
		case err != nil:
			return err
		}

		if len(line) == 0 {
			return nil
		}

		name, value, found := strings.Cut(line, ": ")
		if !found {
			// tolerate garbage lines
			continue
		}

		if count++; count > p.cfg.Headers.MaxNumber {
			return status.ErrHeaderFieldsTooLarge
		}

		request.Headers.Set(name, value)
	}
}

func (p *Parser) readBody(request *http.Request) error {
	rawLength, found := request.Headers.Get("Content-Length")
	if !found {
		return nil
	}

	length, err := strconv.ParseInt(strings.TrimSpace(rawLength), 10, 64)
	switch {
	case err != nil, length < 0:
		return status.ErrBadContentLength
	case length == 0:
		return nil
	case length > p.cfg.Body.MaxSize:
		return status.ErrBodyTooLarge
	}

	body := make([]byte, length)
	if _, err = io.ReadFull(p.reader, body); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return status.ErrBodyTooShort
		}

		return err
	}

	request.Body = body

	// the body is decoded regardless of Content-Type, as forms are the only bodies served
	form := kv.New()
	if err = urlencoded.Parse(string(body), form); err != nil {
		return fmt.Errorf("body: %w", err)
	}

	request.Params.Merge(form)
	return nil
}

// readLine returns a line without its terminator. If the stream ends before any byte
// of the line, io.EOF is returned; if it ends in the middle, io.ErrUnexpectedEOF.
func (p *Parser) readLine(limit int, tooLong error) (string, error) {
	p.line = p.line[:0]

	for {
		chunk, err := p.reader.ReadSlice('\n')
		p.line = append(p.line, chunk...)
		// the limit doesn't include CRLF
		if len(p.line) > limit+2 {
			return "", tooLong
		}

		switch err {
		case nil:
			return string(trimEOL(p.line)), nil
		case bufio.ErrBufferFull:
		case io.EOF:
			if len(p.line) == 0 {
				return "", io.EOF
			}

			return "", io.ErrUnexpectedEOF
		default:
			return "", err
		}
	}
}

func trimEOL(line []byte) []byte {
	line = line[:len(line)-1]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}

	return line
}

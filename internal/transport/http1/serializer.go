package http1

import (
	"io"

	"github.com/indigo-web/catalina/http"
)

const (
	crlf    = "\r\n"
	colonsp = ": "
)

type flusher interface {
	Flush() error
}

// Serializer renders responses into a reusable buffer and writes each of them at once.
type Serializer struct {
	buff []byte
}

func NewSerializer(buff []byte) *Serializer {
	return &Serializer{
		buff: buff[:0],
	}
}

// Write renders the status line, headers in their insertion order (including lazily
// injected defaults), an empty line and the body as is. If the writer is buffered, it's
// flushed afterwards.
func (s *Serializer) Write(response *http.Response, writer io.Writer) error {
	defer s.clear()

	s.renderStatusLine(response.StatusLine())

	for key, value := range response.Headers().Pairs() {
		s.renderHeader(key, value)
	}

	s.crlf()
	s.buff = append(s.buff, response.Body()...)

	if _, err := writer.Write(s.buff); err != nil {
		return err
	}

	if f, ok := writer.(flusher); ok {
		return f.Flush()
	}

	return nil
}

func (s *Serializer) renderStatusLine(line http.StatusLine) {
	s.buff = append(s.buff, line.Protocol...)
	s.sp()
	s.buff = append(s.buff, line.Code...)
	s.sp()
	s.buff = append(s.buff, line.Message...)
	s.crlf()
}

func (s *Serializer) renderHeader(key, value string) {
	s.buff = append(s.buff, key...)
	s.colonsp()
	s.buff = append(s.buff, value...)
	s.crlf()
}

func (s *Serializer) sp() {
	s.buff = append(s.buff, ' ')
}

func (s *Serializer) colonsp() {
	s.buff = append(s.buff, colonsp...)
}

func (s *Serializer) crlf() {
	s.buff = append(s.buff, crlf...)
}

func (s *Serializer) clear() {
	s.buff = s.buff[:0]
}

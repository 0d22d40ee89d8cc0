package http

import (
	"bufio"
	"errors"
	"io"
	"net"
	"time"

	"github.com/rs/zerolog"

	"github.com/indigo-web/catalina/config"
	"github.com/indigo-web/catalina/http"
	"github.com/indigo-web/catalina/http/status"
	"github.com/indigo-web/catalina/internal/metrics"
	"github.com/indigo-web/catalina/internal/transport/http1"
	"github.com/indigo-web/catalina/router"
)

// Server processes connections: exactly one request is read, dispatched and responded,
// after which the connection is closed.
type Server struct {
	cfg     *config.Config
	handle  router.HandlerFunc
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

func NewServer(cfg *config.Config, r *router.Table, logger zerolog.Logger, m *metrics.Metrics) *Server {
	return &Server{
		cfg:     cfg,
		handle:  router.Recover(r.Dispatch),
		logger:  logger,
		metrics: m,
	}
}

// Run serves the connection and closes it. Failures never escape it: they're either
// answered, or terminate the connection only.
func (s *Server) Run(conn net.Conn) {
	s.metrics.ActiveConnections.Inc()
	defer s.metrics.ActiveConnections.Dec()

	logger := s.logger.With().Str("remote", conn.RemoteAddr().String()).Logger()
	s.HandleRequest(conn, logger)

	if err := conn.Close(); err != nil {
		logger.Debug().Err(err).Msg("closing connection")
	}
}

func (s *Server) HandleRequest(conn net.Conn, logger zerolog.Logger) {
	s.setDeadline(conn.SetReadDeadline, s.cfg.NET.ReadTimeout, logger)

	reader := bufio.NewReaderSize(conn, s.cfg.NET.ReadBufferSize)
	request, err := http1.NewParser(s.cfg, reader).Parse()
	if err != nil {
		s.onParseError(conn, logger, err)
		return
	}

	request.Remote = conn.RemoteAddr().String()
	logger = logger.With().
		Str("method", request.RequestLine.Method).
		Str("path", request.RequestLine.Path).
		Logger()

	s.write(conn, logger, s.onRequest(request, logger))
}

func (s *Server) onRequest(request *http.Request, logger zerolog.Logger) *http.Response {
	response, err := s.handle(request)
	if err != nil {
		return s.onError(logger, err)
	}

	if response == nil {
		return http.NewResponse()
	}

	return response
}

// onError maps dispatch failures. HTTP errors are the client's fault, everything else
// is ours.
func (s *Server) onError(logger zerolog.Logger, err error) *http.Response {
	var httpErr status.HTTPError
	if errors.As(err, &httpErr) {
		logger.Warn().Err(err).Uint16("code", uint16(httpErr.Code)).Msg("client error")
		return http.Error(err)
	}

	var panicErr router.PanicError
	if errors.As(err, &panicErr) {
		logger.Error().Err(err).Msg("handler panicked")
		return http.Error(err)
	}

	logger.Error().Err(err).Msg("server fault")
	return http.Error(err)
}

func (s *Server) onParseError(conn net.Conn, logger zerolog.Logger, err error) {
	var (
		httpErr status.HTTPError
		netErr  net.Error
	)

	switch {
	case errors.Is(err, io.EOF):
		logger.Trace().Msg("empty connection")
	case errors.As(err, &httpErr):
		s.metrics.ObserveFailure(metrics.FailureRequest)
		logger.Warn().Err(err).Uint16("code", uint16(httpErr.Code)).Msg("malformed request")
		s.write(conn, logger, http.Error(err))
	case errors.As(err, &netErr) && netErr.Timeout():
		s.metrics.ObserveFailure(metrics.FailureTimeout)
		logger.Debug().Err(err).Msg("read timed out")
	default:
		s.metrics.ObserveFailure(metrics.FailureRead)
		logger.Debug().Err(err).Msg("reading request")
	}
}

func (s *Server) write(conn net.Conn, logger zerolog.Logger, response *http.Response) {
	s.setDeadline(conn.SetWriteDeadline, s.cfg.NET.WriteTimeout, logger)

	serializer := http1.NewSerializer(make([]byte, 0, s.cfg.NET.ReadBufferSize))
	if err := serializer.Write(response, conn); err != nil {
		s.metrics.ObserveFailure(metrics.FailureWrite)
		logger.Debug().Err(err).Msg("writing response")
		return
	}

	s.metrics.ObserveResponse(response.StatusCode())
	logger.Info().Uint16("code", uint16(response.StatusCode())).Msg("served")
}

func (s *Server) setDeadline(set func(time.Time) error, timeout config.Duration, logger zerolog.Logger) {
	if timeout <= 0 {
		return
	}

	if err := set(time.Now().Add(timeout.Std())); err != nil {
		logger.Debug().Err(err).Msg("setting deadline")
	}
}

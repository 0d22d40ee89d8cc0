package tcp

import (
	"errors"
	"net"
	"sync"
	"time"
)

const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

// ErrShutdown is returned by Start after the server was stopped.
var ErrShutdown = errors.New("server is shut down")

type OnConnection func(net.Conn)

type Server struct {
	sock   net.Listener
	onConn OnConnection

	mu       sync.Mutex
	conns    map[net.Conn]struct{}
	shutdown bool
}

func NewServer(sock net.Listener, onConn OnConnection) *Server {
	return &Server{
		sock:   sock,
		onConn: onConn,
		conns:  map[net.Conn]struct{}{},
	}
}

// Start accepts connections and serves each one in its own goroutine. It returns only
// after all the connections are served. Temporary accept failures (e.g. running out of
// file descriptors) are retried with an exponential delay instead.
func (s *Server) Start() error {
	var (
		wg    = new(sync.WaitGroup)
		delay time.Duration
	)

	for {
		conn, err := s.sock.Accept()
		if err != nil {
			if isTemporary(err) && !s.isShutdown() {
				delay = nextDelay(delay)
				time.Sleep(delay)
				continue
			}

			wg.Wait()

			if s.isShutdown() {
				return ErrShutdown
			}

			return err
		}

		delay = 0
		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		wg.Add(1)
		go s.connHandler(wg, conn)
	}
}

func (s *Server) Addr() net.Addr {
	return s.sock.Addr()
}

func (s *Server) stopListener() error {
	s.mu.Lock()
	s.shutdown = true
	s.mu.Unlock()

	return s.sock.Close()
}

// Stop shuts listener and ALL the connections down
func (s *Server) Stop() error {
	if err := s.stopListener(); err != nil {
		return err
	}

	s.mu.Lock()
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.Unlock()

	return nil
}

// GracefulShutdown stops a listener, but leaving all the connections free to end their
// lives peacefully
func (s *Server) GracefulShutdown() error {
	return s.stopListener()
}

func (s *Server) isShutdown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.shutdown
}

func (s *Server) connHandler(wg *sync.WaitGroup, conn net.Conn) {
	defer wg.Done()

	s.onConn(conn)

	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

func isTemporary(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var temporary interface{ Temporary() bool }
	return errors.As(err, &temporary) && temporary.Temporary()
}

func nextDelay(delay time.Duration) time.Duration {
	if delay == 0 {
		return minAcceptDelay
	}

	return min(delay*2, maxAcceptDelay)
}

package ingest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Logger is the subset of the application logger the server needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// nopLogger discards everything; used when no logger is supplied.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Server accepts WebSocket connections from text hookers and similar
// tools. Every text frame is offered to the ingestor; there is no reply
// protocol, the feed is one-way.
type Server struct {
	ingestor *Ingestor
	log      Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	listener net.Listener
	httpSrv  *http.Server
}

// NewServer creates a feed server. The address is bound on Start.
func NewServer(ingestor *Ingestor, log Logger) *Server {
	if log == nil {
		log = nopLogger{}
	}
	return &Server{
		ingestor: ingestor,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Hookers connect from arbitrary local origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Start binds addr and serves in the background.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.listener = ln
	s.httpSrv = &http.Server{Handler: s}
	srv := s.httpSrv
	s.mu.Unlock()

	s.log.Info("ingest feed listening on %s", ln.Addr())
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("ingest feed server: %v", err)
		}
	}()
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops accepting connections and closes the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpSrv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// ServeHTTP upgrades each request to a WebSocket and reads its frames.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("ingest feed upgrade failed: %v", err)
		return
	}
	s.log.Debug("ingest feed client connected: %s", conn.RemoteAddr())
	go s.readLoop(conn)
}

// readLoop drains one client until it disconnects.
func (s *Server) readLoop(conn *websocket.Conn) {
	defer conn.Close()

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			s.log.Debug("ingest feed client gone: %v", err)
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		if id, ok := s.ingestor.Offer(string(data)); ok {
			s.log.Debug("ingested entry %d from feed", id)
		}
	}
}

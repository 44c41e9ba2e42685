package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/leengari/tablekit/internal/command"
)

// Request is one command sent by a client
type Request struct {
	Command string `json:"command"`
}

// SessionFactory creates the session bound to a new connection
type SessionFactory func() *command.Session

// Server serves JSON commands over TCP, one session per connection
type Server struct {
	newSession  SessionFactory
	idleTimeout time.Duration
	logger      *slog.Logger

	wg sync.WaitGroup
}

// NewServer creates a server. A zero idleTimeout disables read deadlines.
func NewServer(newSession SessionFactory, idleTimeout time.Duration, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{newSession: newSession, idleTimeout: idleTimeout, logger: logger}
}

// ListenAndServe binds addr and serves until ctx is done
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is done, then closes the
// listener and waits for open connections to finish
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.logger.Info("server listening", "addr", listener.Addr().String())

	var conns sync.Map
	stop := context.AfterFunc(ctx, func() {
		listener.Close()
		conns.Range(func(k, _ any) bool {
			k.(net.Conn).Close()
			return true
		})
	})
	defer stop()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.wg.Wait()
				s.logger.Info("server stopped")
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return err
			}
			s.logger.Error("failed to accept connection", "error", err)
			continue
		}

		conns.Store(conn, struct{}{})
		if ctx.Err() != nil {
			// accepted after the shutdown sweep ran
			conns.Delete(conn)
			conn.Close()
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer conns.Delete(conn)
			s.handleConnection(ctx, conn)
		}()
	}
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	logger := s.logger.With("remote", conn.RemoteAddr().String())
	logger.Info("connection opened")
	defer logger.Info("connection closed")

	session := s.newSession()
	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	for {
		if s.idleTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(s.idleTimeout))
		}

		var req Request
		if err := decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				logger.Info("connection idle, closing")
				return
			}
			logger.Error("decode error", "error", err)
			_ = encoder.Encode(&command.Result{
				Error: fmt.Sprintf("invalid request format: %v", err),
			})
			return
		}

		if req.Command == "exit" || req.Command == "\\q" {
			return
		}

		result, err := session.Execute(ctx, req.Command)
		if err != nil {
			result = &command.Result{Error: err.Error()}
		}
		if err := encoder.Encode(result); err != nil {
			logger.Error("encode error", "error", err)
			return
		}
	}
}

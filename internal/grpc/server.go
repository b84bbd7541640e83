package grpc

import (
	"errors"
	"net"
	"sync"

	"google.golang.org/grpc"

	"github.com/icnaming/icnaming/internal/registrar"
)

// Server is the gRPC transport in front of a single Registrar orchestrator:
// a message-size-capped grpc.Server plus a lock-guarded running flag. Every
// handler method below is a plain Go method rather than a generated service
// stub, since this module has no .proto/protoc step.
type Server struct {
	mu sync.RWMutex

	grpcServer *grpc.Server
	registrar  *registrar.Registrar
	config     *ServerConfig
	listener   net.Listener
	running    bool
}

// NewServer creates a new gRPC server wired to reg.
func NewServer(cfg *ServerConfig, reg *registrar.Registrar) (*Server, error) {
	if cfg == nil {
		cfg = DefaultServerConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []grpc.ServerOption{
		grpc.MaxRecvMsgSize(cfg.MaxRecvMsgSize),
		grpc.MaxSendMsgSize(cfg.MaxSendMsgSize),
	}

	return &Server{
		grpcServer: grpc.NewServer(opts...),
		registrar:  reg,
		config:     cfg,
	}, nil
}

// StartAsync starts the gRPC server in a goroutine and returns immediately.
func (s *Server) StartAsync() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server is already running")
	}
	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.listener = listener
	s.running = true
	s.mu.Unlock()

	go func() {
		_ = s.grpcServer.Serve(listener)
	}()
	return nil
}

// Stop gracefully stops the gRPC server.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.grpcServer.GracefulStop()
	s.running = false
}

// IsRunning returns true if the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Address returns the address the server is listening on, or "" if not
// running.
func (s *Server) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.running || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// GetGRPCServer returns the underlying grpc.Server for additional service
// registration.
func (s *Server) GetGRPCServer() *grpc.Server {
	return s.grpcServer
}

package signer

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	signerv1 "github.com/caesar-terminal/arbiter/internal/gen/signer/v1"
	"google.golang.org/grpc"
)

// Server wraps the gRPC server and its Unix domain socket listener. The
// socket is the only way into the key-custody process; permissions are
// restricted to the owning user.
type Server struct {
	grpcServer *grpc.Server
	listener   net.Listener
	socketPath string
}

// New creates a signer gRPC server bound to socketPath, registering the
// SignerService handler and preparing the listener. Any stale socket file
// from a previous run is removed first.
func New(socketPath string, session *SessionManager) (*Server, error) {
	if err := os.MkdirAll(filepath.Dir(socketPath), 0o700); err != nil {
		return nil, fmt.Errorf("create socket directory: %w", err)
	}

	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("remove stale socket: %w", err)
	}

	lis, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("listen on unix socket %s: %w", socketPath, err)
	}

	if err := os.Chmod(socketPath, 0o600); err != nil {
		lis.Close()
		return nil, fmt.Errorf("chmod socket: %w", err)
	}

	gs := grpc.NewServer()
	signerv1.RegisterSignerServiceServer(gs, NewHandler(session))

	return &Server{
		grpcServer: gs,
		listener:   lis,
		socketPath: socketPath,
	}, nil
}

// Serve accepts gRPC connections until the server is stopped.
func (s *Server) Serve() error {
	return s.grpcServer.Serve(s.listener)
}

// GracefulStop drains in-flight RPCs and removes the socket file.
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
	os.Remove(s.socketPath)
}

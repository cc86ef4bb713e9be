// Package server exposes the life shell over SSH via Wish. Every SSH session
// gets its own interpreter and its own grid.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-life/internal/config"
	"github.com/vovakirdan/tui-life/internal/shapes"
	"github.com/vovakirdan/tui-life/internal/shell"
)

const (
	defaultHostKey  = "~/.life/host_key"
	shutdownTimeout = 10 * time.Second
)

// Config holds configuration for the SSH server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key is generated at ~/.life/host_key.
	HostKeyPath string

	// IdleTimeout closes connections without traffic for this long.
	IdleTimeout time.Duration

	// Prompt is printed before every command line.
	Prompt string

	// EchoBoard prints the board after mutating commands.
	EchoBoard bool
}

// FromConfig builds a server Config from the application configuration.
func FromConfig(cfg config.Config) Config {
	return Config{
		Address:     cfg.Server.Address,
		HostKeyPath: cfg.Server.HostKey,
		IdleTimeout: cfg.Server.IdleTimeout,
		Prompt:      cfg.Shell.Prompt,
		EchoBoard:   cfg.Shell.EchoBoard,
	}
}

// Server wraps a Wish SSH server running one shell per session.
type Server struct {
	config   Config
	server   *ssh.Server
	catalog  *shapes.Catalog
	recorder shell.Recorder
	logger   *log.Logger
}

// New creates an SSH server. catalog may be nil for the built-in shapes and
// recorder may be nil to skip session history.
func New(cfg Config, catalog *shapes.Catalog, recorder shell.Recorder, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if catalog == nil {
		catalog = shapes.Builtin()
	}

	srv := &Server{
		config:   cfg,
		catalog:  catalog,
		recorder: recorder,
		logger:   logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		hostKeyPath = defaultHostKey
	}
	hostKeyPath, err := config.ExpandHome(hostKeyPath)
	if err != nil {
		return nil, fmt.Errorf("server: cannot resolve host key path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("server: cannot create host key directory: %w", err)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			srv.shellMiddleware,
			srv.loggingMiddleware,
		),
	}
	if cfg.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.IdleTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("server: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// shellMiddleware runs an interpreter session on the SSH channel.
func (s *Server) shellMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		if err := s.runShell(sess); err != nil {
			s.logger.Warn("shell ended with error", "user", sess.User(), "error", err)
		}
		next(sess)
	}
}

// runShell picks the line reader. PTY sessions get line editing from
// term.Terminal; plain sessions (ssh -T, piped scripts) read raw lines.
func (s *Server) runShell(sess ssh.Session) error {
	var (
		in  shell.LineReader
		out io.Writer
	)

	pty, winCh, isPty := sess.Pty()
	if isPty {
		t := term.NewTerminal(sess, s.config.Prompt)
		if err := t.SetSize(pty.Window.Width, pty.Window.Height); err != nil {
			s.logger.Debug("cannot size terminal", "error", err)
		}
		go func() {
			for win := range winCh {
				_ = t.SetSize(win.Width, win.Height)
			}
		}()
		in, out = t, t
	} else {
		in, out = shell.NewPromptReader(sess, sess, s.config.Prompt), sess
	}

	opts := []shell.Option{
		shell.WithCatalog(s.catalog),
		shell.WithLogger(s.logger.With("user", sess.User())),
		shell.WithEcho(s.config.EchoBoard),
		shell.WithUser(sess.User()),
	}
	if s.recorder != nil {
		opts = append(opts, shell.WithRecorder(s.recorder))
	}

	return shell.New(in, out, opts...).Run()
}

// loggingMiddleware logs SSH session events.
func (s *Server) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		_, _, isPty := sess.Pty()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"pty", isPty,
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is done or the
// process receives SIGINT or SIGTERM, then shuts the server down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.logger.Info("starting SSH server", "address", s.config.Address)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stop()
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down...")
		return s.Shutdown()
	})
	return g.Wait()
}

// Serve accepts connections on l until the server is shut down.
func (s *Server) Serve(l net.Listener) error {
	if err := s.server.Serve(l); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.config.Address
}

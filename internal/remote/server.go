// Package remote serves the debug console over SSH. One operator session
// at a time feeds the console's input channel and receives its output.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	gossh "github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
	"go.uber.org/zap"

	"github.com/l1jgo/debugconsole/internal/config"
	"github.com/l1jgo/debugconsole/internal/console/input"
)

const busyMessage = "console busy: another operator is connected"

// Server accepts SSH sessions on its own goroutines. Lines typed by the
// active operator go to the shared input channel; console output written to
// Writer() goes back to that operator.
type Server struct {
	srv      *gossh.Server
	listener net.Listener
	lines    *input.Lines
	user     string
	hash     []byte
	hello    string
	log      *zap.Logger

	mu     sync.Mutex
	active *session
}

// NewServer binds cfg.BindAddress and prepares the host key. Call Serve to
// start accepting.
func NewServer(cfg config.RemoteConfig, hostName string, lines *input.Lines, log *zap.Logger) (*Server, error) {
	signer, err := loadOrCreateHostKey(cfg.HostKey, log)
	if err != nil {
		return nil, err
	}
	ln, err := net.Listen("tcp", cfg.BindAddress)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", cfg.BindAddress, err)
	}
	s := &Server{
		listener: ln,
		lines:    lines,
		user:     cfg.User,
		hash:     []byte(cfg.PasswordHash),
		hello:    fmt.Sprintf("Connected to %s. Type 'help' once the console is open.", hostName),
		log:      log,
	}
	s.srv = &gossh.Server{
		Handler:         s.handle,
		PasswordHandler: s.checkPassword,
		PtyCallback:     func(gossh.Context, gossh.Pty) bool { return true },
		HostSigners:     []gossh.Signer{signer},
		IdleTimeout:     cfg.IdleTimeout,
	}
	return s, nil
}

// Serve blocks until ctx ends or the listener fails.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.srv.Close()
	}()
	err := s.srv.Serve(s.listener)
	if errors.Is(err, gossh.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown closes the listener and every open session.
func (s *Server) Shutdown() error {
	return s.srv.Close()
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Writer returns a writer that forwards to the active operator, or discards
// when nobody is connected.
func (s *Server) Writer() io.Writer {
	return writerFunc(func(p []byte) (int, error) {
		s.mu.Lock()
		active := s.active
		s.mu.Unlock()
		if active == nil {
			return len(p), nil
		}
		if _, err := active.out.Write(p); err != nil {
			// A vanished operator must not fail the host's writes.
			active.log.Debug("session write failed", zap.Error(err))
		}
		return len(p), nil
	})
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

func (s *Server) checkPassword(ctx gossh.Context, password string) bool {
	ok := ctx.User() == s.user && bcrypt.CompareHashAndPassword(s.hash, []byte(password)) == nil
	if !ok {
		s.log.Warn("remote login rejected",
			zap.String("user", ctx.User()),
			zap.String("addr", ctx.RemoteAddr().String()),
		)
	}
	return ok
}

// session is one connected operator.
type session struct {
	out  io.Writer
	read func() (string, error)
	log  *zap.Logger
}

func (s *Server) handle(sess gossh.Session) {
	log := s.log.With(
		zap.String("session", uuid.NewString()),
		zap.String("user", sess.User()),
		zap.String("addr", sess.RemoteAddr().String()),
	)
	cs := newSession(sess, log)
	if !s.claim(cs) {
		log.Info("remote session rejected: console busy")
		fmt.Fprintln(cs.out, busyMessage)
		_ = sess.Exit(1)
		return
	}
	defer s.release(cs)

	log.Info("remote session opened")
	fmt.Fprintln(cs.out, s.hello)
	for {
		line, err := cs.read()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Debug("remote read ended", zap.Error(err))
			}
			break
		}
		if err := s.lines.Send(sess.Context(), line); err != nil {
			log.Debug("remote line dropped", zap.Error(err))
			break
		}
	}
	log.Info("remote session closed")
}

// newSession picks line reading for the session: a PTY gets a line editor
// with echo, a plain channel (piped commands) is read line by line.
func newSession(sess gossh.Session, log *zap.Logger) *session {
	cs := &session{log: log}
	if _, _, isPty := sess.Pty(); isPty {
		t := term.NewTerminal(sess, "")
		cs.out = t
		cs.read = t.ReadLine
		return cs
	}
	cs.out = sess
	cs.read = input.NewLineReader(sess).ReadLine
	return cs
}

func (s *Server) claim(cs *session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		return false
	}
	s.active = cs
	return true
}

func (s *Server) release(cs *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == cs {
		s.active = nil
	}
}

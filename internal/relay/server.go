package relay

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"stegochat/internal/domain"
)

// authRequest is the mandatory first frame of every connection.
type authRequest struct {
	Token string `json:"token"`
}

// authReply acknowledges (or rejects) the auth request.
type authReply struct {
	OK    bool   `json:"ok"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

// Server accepts relay connections and feeds their events to the Router.
type Server struct {
	auth   domain.Authenticator
	router *Router
	log    *logrus.Entry

	mu sync.Mutex
	ln net.Listener
	wg sync.WaitGroup
}

func NewServer(auth domain.Authenticator, router *Router) *Server {
	return &Server{
		auth:   auth,
		router: router,
		log:    logrus.WithField("component", "server"),
	}
}

// ListenAndServe listens on addr and serves until Close.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until it is closed.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	s.log.WithField("addr", ln.Addr().String()).Info("relay listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(conn)
		}()
	}
}

// Addr returns the listener address, for tests that bind port 0.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Close stops the listener and waits for connection handlers to finish.
func (s *Server) Close() error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	var err error
	if ln != nil {
		err = ln.Close()
	}
	s.wg.Wait()
	return err
}

// handleConn runs one connection: authenticate, register presence, flush
// the backlog, then route inbound events until EOF. Auth failures reject
// the connection before any core state is touched.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)

	var req authRequest
	if err := dec.Decode(&req); err != nil {
		s.log.WithError(err).Debug("connection dropped before auth")
		return
	}
	id, err := s.auth.Authenticate(req.Token)
	if err != nil {
		_ = enc.Encode(authReply{OK: false, Error: domain.ErrAuth.Error()})
		s.log.WithField("remote", conn.RemoteAddr().String()).Info("auth rejected")
		return
	}
	if err := enc.Encode(authReply{OK: true, ID: string(id)}); err != nil {
		return
	}

	h := &connHandle{id: uuid.NewString(), enc: enc}
	log := s.log.WithFields(logrus.Fields{"principal": id, "handle": h.id})
	log.Info("principal connected")

	// Backlog first: queued events reach the client before anything the
	// client sends now can generate new traffic.
	s.router.Connected(id, h)
	defer func() {
		s.router.Disconnected(id, h.id)
		log.Info("principal disconnected")
	}()

	for {
		var ev domain.Event
		if err := dec.Decode(&ev); err != nil {
			if err != io.EOF && !errors.Is(err, net.ErrClosed) {
				log.WithError(err).Debug("read loop ended")
			}
			return
		}
		switch ev.Kind {
		case domain.KindPublicKeyAnnounce, domain.KindCipherImage:
			s.router.Route(id, ev)
		default:
			log.WithField("kind", ev.Kind).Warn("unknown event kind dropped")
		}
	}
}

// connHandle adapts a connection's JSON encoder to domain.Handle. The
// mutex serialises concurrent sends (router goroutines) onto one stream.
type connHandle struct {
	id  string
	mu  sync.Mutex
	enc *json.Encoder
}

func (h *connHandle) ID() string { return h.id }

func (h *connHandle) Send(ev domain.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.enc.Encode(ev)
}

var _ domain.Handle = (*connHandle)(nil)

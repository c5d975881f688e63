package relay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/sirupsen/logrus"

	"stegochat/internal/domain"
)

// Client is the client half of a relay connection. A single reader
// goroutine preserves the server's delivery order on the Events stream.
type Client struct {
	conn   net.Conn
	mu     sync.Mutex // guards enc
	enc    *json.Encoder
	events chan domain.Event
	id     domain.PrincipalID
	log    *logrus.Entry
}

// Dial connects to a relay, authenticates with token, and starts the
// receive loop. An invalid token reports ErrAuth.
func Dial(addr, token string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial relay %s: %w", addr, err)
	}
	enc := json.NewEncoder(conn)
	dec := json.NewDecoder(conn)

	if err := enc.Encode(authRequest{Token: token}); err != nil {
		conn.Close()
		return nil, err
	}
	var reply authReply
	if err := dec.Decode(&reply); err != nil {
		conn.Close()
		return nil, fmt.Errorf("read auth reply: %w", err)
	}
	if !reply.OK {
		conn.Close()
		return nil, fmt.Errorf("relay rejected token: %w", domain.ErrAuth)
	}

	c := &Client{
		conn:   conn,
		enc:    enc,
		events: make(chan domain.Event, 16),
		id:     domain.PrincipalID(reply.ID),
		log:    logrus.WithFields(logrus.Fields{"component": "client", "principal": reply.ID}),
	}
	go c.readLoop(dec)
	return c, nil
}

// Self is the principal id the relay resolved for our token.
func (c *Client) Self() domain.PrincipalID { return c.id }

// Send transmits one event to the relay.
func (c *Client) Send(ev domain.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enc.Encode(ev)
}

// Events is the ordered stream of inbound events. It is closed when the
// connection ends.
func (c *Client) Events() <-chan domain.Event { return c.events }

func (c *Client) Close() error { return c.conn.Close() }

func (c *Client) readLoop(dec *json.Decoder) {
	defer close(c.events)
	for {
		var ev domain.Event
		if err := dec.Decode(&ev); err != nil {
			if err != io.EOF && !errors.Is(err, net.ErrClosed) {
				c.log.WithError(err).Debug("receive loop ended")
			}
			return
		}
		c.events <- ev
	}
}

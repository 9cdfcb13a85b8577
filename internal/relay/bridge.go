package relay

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

// Bridge couples one client connection to one upstream connection. It sends
// the session configuration exactly once, then runs two pump goroutines that
// forward frames verbatim, preserving per-direction order. Closing either
// leg tears down the other.
type Bridge struct {
	id       string
	client   *websocket.Conn
	upstream *websocket.Conn
	session  Session

	closing   atomic.Bool
	closeOnce sync.Once
}

// NewBridge wires a client connection to an upstream connection. Both
// connections are owned by the bridge from this point on and are closed
// when Run returns.
func NewBridge(client, upstream *websocket.Conn, session Session) *Bridge {
	return &Bridge{
		id:       uuid.NewString(),
		client:   client,
		upstream: upstream,
		session:  session,
	}
}

// ID returns the session identifier used in log lines.
func (b *Bridge) ID() string {
	return b.id
}

// Run configures the upstream session and pumps frames until either leg
// closes. It blocks until both pumps have exited and always leaves both
// connections closed.
func (b *Bridge) Run() error {
	defer b.teardown()

	update := SessionUpdate{Type: "session.update", Session: b.session}
	if err := b.upstream.WriteJSON(update); err != nil {
		b.sendClientError(CodeUpstreamError, "could not configure the voice session")
		return fmt.Errorf("send session config: %w", err)
	}

	var g errgroup.Group
	g.Go(b.pumpUpstreamToClient)
	g.Go(b.pumpClientToUpstream)
	return g.Wait()
}

// pumpUpstreamToClient forwards upstream frames to the client. It is the
// sole writer on the client connection, so it is also the goroutine that
// emits the relay error frame when the upstream leg fails unexpectedly.
func (b *Bridge) pumpUpstreamToClient() error {
	for {
		messageType, payload, err := b.upstream.ReadMessage()
		if err != nil {
			if b.unexpected(err) {
				log.Printf("[relay %s] upstream read: %v", b.id, err)
				b.sendClientError(CodeUpstreamError, "the voice session ended unexpectedly")
			}
			b.teardown()
			return nil
		}
		if err := b.client.WriteMessage(messageType, payload); err != nil {
			b.teardown()
			return nil
		}
	}
}

// pumpClientToUpstream forwards client frames to the upstream endpoint.
func (b *Bridge) pumpClientToUpstream() error {
	for {
		messageType, payload, err := b.client.ReadMessage()
		if err != nil {
			if b.unexpected(err) {
				log.Printf("[relay %s] client read: %v", b.id, err)
			}
			b.teardown()
			return nil
		}
		if err := b.upstream.WriteMessage(messageType, payload); err != nil {
			b.teardown()
			return nil
		}
	}
}

// unexpected reports whether a read error warrants surfacing. Errors seen
// after teardown has begun are the expected result of closing the peer leg.
func (b *Bridge) unexpected(err error) bool {
	if b.closing.Load() {
		return false
	}
	return websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}

// sendClientError best-effort delivers a typed error frame to the client.
func (b *Bridge) sendClientError(code, message string) {
	if err := b.client.WriteJSON(NewErrorFrame(code, message)); err != nil {
		log.Printf("[relay %s] error frame not delivered: %v", b.id, err)
	}
}

// teardown closes both legs exactly once. The closing flag is raised first
// so in-flight reads on the surviving leg are not reported as failures.
func (b *Bridge) teardown() {
	b.closing.Store(true)
	b.closeOnce.Do(func() {
		b.client.Close()
		b.upstream.Close()
	})
}

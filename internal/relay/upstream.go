package relay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

const dialTimeout = 10 * time.Second

// Dial opens the upstream realtime WebSocket for the given model. The
// returned connection is authenticated but not yet configured; callers must
// run a Bridge to send the session configuration before any traffic flows.
func Dial(ctx context.Context, realtimeURL, model, apiKey string) (*websocket.Conn, error) {
	endpoint, err := url.Parse(realtimeURL)
	if err != nil {
		return nil, fmt.Errorf("parse realtime url: %w", err)
	}
	query := endpoint.Query()
	query.Set("model", model)
	endpoint.RawQuery = query.Encode()

	header := http.Header{}
	header.Set("Authorization", "Bearer "+apiKey)
	header.Set("OpenAI-Beta", "realtime=v1")

	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, resp, err := dialer.DialContext(ctx, endpoint.String(), header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial realtime endpoint: %w (status %d)", err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial realtime endpoint: %w", err)
	}
	return conn, nil
}

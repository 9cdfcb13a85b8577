package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wsPipe returns both ends of a live WebSocket connection backed by an
// in-process test server.
func wsPipe(t *testing.T) (serverSide, clientSide *websocket.Conn) {
	t.Helper()

	conns := make(chan *websocket.Conn, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns <- conn
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	clientSide, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { clientSide.Close() })

	serverSide = <-conns
	t.Cleanup(func() { serverSide.Close() })
	return serverSide, clientSide
}

func readWithin(t *testing.T, conn *websocket.Conn, d time.Duration) []byte {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(d)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	return payload
}

func runBridge(b *Bridge) chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		b.Run()
	}()
	return done
}

func waitDone(t *testing.T, done chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("bridge did not shut down")
	}
}

func TestBridge_SessionConfigSentBeforeClientFrames(t *testing.T) {
	clientBridgeEnd, browser := wsPipe(t)
	upstreamPeer, upstreamBridgeEnd := wsPipe(t)

	// The browser frame is already in flight before the bridge starts.
	require.NoError(t, browser.WriteMessage(websocket.TextMessage, []byte(`{"type":"input_audio_buffer.append"}`)))

	bridge := NewBridge(clientBridgeEnd, upstreamBridgeEnd, NewSession("You are an interviewer.", "alloy"))
	done := runBridge(bridge)

	first := readWithin(t, upstreamPeer, time.Second)
	var update SessionUpdate
	require.NoError(t, json.Unmarshal(first, &update))
	assert.Equal(t, "session.update", update.Type)
	assert.Equal(t, "You are an interviewer.", update.Session.Instructions)
	assert.Equal(t, "alloy", update.Session.Voice)
	assert.Equal(t, "server_vad", update.Session.TurnDetection.Type)

	second := readWithin(t, upstreamPeer, time.Second)
	assert.JSONEq(t, `{"type":"input_audio_buffer.append"}`, string(second))

	browser.Close()
	waitDone(t, done)
}

func TestBridge_ForwardsUpstreamFramesInOrder(t *testing.T) {
	clientBridgeEnd, browser := wsPipe(t)
	upstreamPeer, upstreamBridgeEnd := wsPipe(t)

	bridge := NewBridge(clientBridgeEnd, upstreamBridgeEnd, NewSession("", "alloy"))
	done := runBridge(bridge)

	// Drain the session config so the peer's write buffer stays clear.
	readWithin(t, upstreamPeer, time.Second)

	frames := []string{"first", "second", "third"}
	for _, frame := range frames {
		require.NoError(t, upstreamPeer.WriteMessage(websocket.TextMessage, []byte(frame)))
	}

	for _, want := range frames {
		got := readWithin(t, browser, time.Second)
		assert.Equal(t, want, string(got))
	}

	browser.Close()
	waitDone(t, done)
}

func TestBridge_ClientCloseTearsDownUpstream(t *testing.T) {
	clientBridgeEnd, browser := wsPipe(t)
	upstreamPeer, upstreamBridgeEnd := wsPipe(t)

	bridge := NewBridge(clientBridgeEnd, upstreamBridgeEnd, NewSession("", "alloy"))
	done := runBridge(bridge)

	readWithin(t, upstreamPeer, time.Second)

	deadline := time.Now().Add(time.Second)
	require.NoError(t, browser.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline))
	browser.Close()

	waitDone(t, done)

	require.NoError(t, upstreamPeer.SetReadDeadline(time.Now().Add(time.Second)))
	_, _, err := upstreamPeer.ReadMessage()
	assert.Error(t, err, "upstream leg should be closed after the client leaves")
}

func TestBridge_UpstreamCloseTearsDownClient(t *testing.T) {
	clientBridgeEnd, browser := wsPipe(t)
	upstreamPeer, upstreamBridgeEnd := wsPipe(t)

	bridge := NewBridge(clientBridgeEnd, upstreamBridgeEnd, NewSession("", "alloy"))
	done := runBridge(bridge)

	readWithin(t, upstreamPeer, time.Second)

	// Abrupt close, no close handshake.
	upstreamPeer.Close()
	waitDone(t, done)

	// The client sees a typed error frame before its leg is closed.
	require.NoError(t, browser.SetReadDeadline(time.Now().Add(time.Second)))
	_, payload, err := browser.ReadMessage()
	require.NoError(t, err)

	var frame ErrorFrame
	require.NoError(t, json.Unmarshal(payload, &frame))
	assert.Equal(t, "error", frame.Type)
	assert.Equal(t, CodeUpstreamError, frame.Error.Code)
	assert.NotEmpty(t, frame.Error.Message)
}

func TestDial_SendsAuthAndModel(t *testing.T) {
	upgrader := websocket.Upgrader{}
	var gotAuth, gotBeta, gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotBeta = r.Header.Get("OpenAI-Beta")
		gotModel = r.URL.Query().Get("model")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn.Close()
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, err := Dial(context.Background(), wsURL, "gpt-4o-realtime-preview", "sk-test")
	require.NoError(t, err)
	conn.Close()

	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "realtime=v1", gotBeta)
	assert.Equal(t, "gpt-4o-realtime-preview", gotModel)
}

func TestDial_InvalidURL(t *testing.T) {
	_, err := Dial(context.Background(), "://not-a-url", "model", "key")
	assert.Error(t, err)
}

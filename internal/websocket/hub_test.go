package websocket_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dom/postboard/internal/domain"
	"github.com/dom/postboard/internal/observability"
	"github.com/dom/postboard/internal/websocket"
	"github.com/google/uuid"
	gorillaWS "github.com/gorilla/websocket"
	prom "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeedServer(t *testing.T, hub *websocket.Hub) *httptest.Server {
	t.Helper()

	upgrader := gorillaWS.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := websocket.NewClient(hub, conn, r.URL.Query().Get("user"))
		client.Greet()
		hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server, user string) *gorillaWS.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?user=" + user
	conn, _, err := gorillaWS.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *gorillaWS.Conn) *websocket.Message {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg websocket.Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return &msg
}

func waitForClients(t *testing.T, hub *websocket.Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return hub.ClientCount() == n
	}, 5*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastsEventsToAllClients(t *testing.T) {
	metrics := observability.NewMetrics()
	hub := websocket.NewHub(metrics)
	go hub.Run()
	t.Cleanup(hub.Stop)

	server := newFeedServer(t, hub)
	alice := dial(t, server, "alice")
	bob := dial(t, server, "bob")

	greeting := readMessage(t, alice)
	assert.Equal(t, websocket.MessageTypeConnected, greeting.Type)
	assert.JSONEq(t, `{"userId":"alice"}`, string(greeting.Payload))
	readMessage(t, bob)

	waitForClients(t, hub, 2)
	assert.Equal(t, 2.0, prom.ToFloat64(metrics.FeedClients))

	post := domain.Post{ID: uuid.New(), Message: "hello", Sender: uuid.New()}
	hub.Publish(domain.EventPostCreated, post)

	for _, conn := range []*gorillaWS.Conn{alice, bob} {
		msg := readMessage(t, conn)
		assert.Equal(t, websocket.MessageType("POST_CREATED"), msg.Type)

		var got domain.Post
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, post.ID, got.ID)
		assert.Equal(t, "hello", got.Message)
	}
}

func TestHub_PingPong(t *testing.T) {
	hub := websocket.NewHub(nil)
	go hub.Run()
	t.Cleanup(hub.Stop)

	conn := dial(t, newFeedServer(t, hub), "alice")
	readMessage(t, conn)
	waitForClients(t, hub, 1)

	require.NoError(t, conn.WriteJSON(websocket.Message{Type: websocket.MessageTypePing}))
	assert.Equal(t, websocket.MessageTypePong, readMessage(t, conn).Type)

	require.NoError(t, conn.WriteMessage(gorillaWS.TextMessage, []byte("not json")))
	msg := readMessage(t, conn)
	assert.Equal(t, websocket.MessageTypeError, msg.Type)
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	hub := websocket.NewHub(nil)
	go hub.Run()
	t.Cleanup(hub.Stop)

	conn := dial(t, newFeedServer(t, hub), "alice")
	readMessage(t, conn)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}

func TestHub_StopClosesClients(t *testing.T) {
	hub := websocket.NewHub(nil)
	go hub.Run()

	conn := dial(t, newFeedServer(t, hub), "alice")
	readMessage(t, conn)
	waitForClients(t, hub, 1)

	hub.Stop()
	hub.Stop()
	assert.Equal(t, 0, hub.ClientCount())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	assert.NotPanics(t, func() {
		hub.Publish(domain.EventPostDeleted, domain.DeletedEvent{ID: uuid.New()})
	})
}

func TestHub_ConcurrentStop(t *testing.T) {
	for i := 0; i < 50; i++ {
		hub := websocket.NewHub(nil)
		go hub.Run()

		var wg sync.WaitGroup
		for j := 0; j < 8; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NotPanics(t, hub.Stop)
			}()
		}
		wg.Wait()
		assert.Equal(t, 0, hub.ClientCount())
	}
}

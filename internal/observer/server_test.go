package observer_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bhaddad5/Scrap-Merchant/internal/inventory"
	"github.com/bhaddad5/Scrap-Merchant/internal/item"
	"github.com/bhaddad5/Scrap-Merchant/internal/journal"
	"github.com/bhaddad5/Scrap-Merchant/internal/observer"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bolt = &item.Item{ID: "bolt", DisplayName: "Bolt", MaxStack: 5}

func TestServer_Inventories(t *testing.T) {
	hub := observer.NewHub(nil)
	inv := inventory.New("shelf", 1)
	inv.Set(0, item.NewStack(bolt, 3))
	hub.Watch(inv)

	ts := httptest.NewServer(observer.NewServer(hub, nil).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/inventories")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got map[string][]journal.SlotEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, map[string][]journal.SlotEntry{"shelf": {{Slot: 0, Item: "bolt", Count: 3}}}, got)

	post, err := http.Post(ts.URL+"/inventories", "application/json", nil)
	require.NoError(t, err)
	post.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, post.StatusCode)
}

func TestServer_WebsocketStream(t *testing.T) {
	hub := observer.NewHub(nil)
	inv := inventory.New("shelf", 2)
	hub.Watch(inv)

	ts := httptest.NewServer(observer.NewServer(hub, nil).Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var msg observer.Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "snapshot", msg.Type)
	assert.Len(t, msg.Inventories["shelf"], 2)

	inv.Set(1, item.NewStack(bolt, 2))

	msg = observer.Message{}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "change", msg.Type)
	require.NotNil(t, msg.Change)
	assert.Equal(t, "shelf", msg.Change.Inventory)
	assert.Equal(t, []journal.SlotEntry{{Slot: 1, Item: "bolt", Count: 2}}, msg.Change.Slots)
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- observer.NewServer(observer.NewHub(nil), nil).Serve(ctx, ln) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

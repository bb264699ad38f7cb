package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func drain(t *testing.T, c *Client) []Envelope {
	t.Helper()
	var out []Envelope
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return out
			}
			var env Envelope
			if err := json.Unmarshal(msg, &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			out = append(out, env)
		default:
			return out
		}
	}
}

func events(envs []Envelope) []string {
	var out []string
	for _, e := range envs {
		out = append(out, e.Event)
	}
	return out
}

func TestRegistryPresence(t *testing.T) {
	h := NewHub(nil)

	a := newClient(1)
	h.register(a)
	if got := events(drain(t, a)); !reflect.DeepEqual(got, []string{EventUsersOnline}) {
		t.Fatalf("unexpected events for first user %v", got)
	}

	b := newClient(2)
	h.register(b)
	if got := events(drain(t, a)); !reflect.DeepEqual(got, []string{EventUserOnline}) {
		t.Fatalf("existing user not told about newcomer: %v", got)
	}
	envs := drain(t, b)
	if len(envs) != 1 || envs[0].Event != EventUsersOnline {
		t.Fatalf("unexpected events for newcomer %v", events(envs))
	}
	if !reflect.DeepEqual(h.Online(), []uint{1, 2}) {
		t.Fatalf("unexpected online set %v", h.Online())
	}

	// Second tab of user 2 does not announce again.
	b2 := newClient(2)
	h.register(b2)
	if got := drain(t, a); len(got) != 0 {
		t.Fatalf("duplicate online announcement %v", events(got))
	}

	h.unregister(b)
	if got := drain(t, a); len(got) != 0 {
		t.Fatalf("offline announced while another tab is open %v", events(got))
	}
	if !h.IsOnline(2) {
		t.Fatal("user 2 should still be online")
	}

	h.unregister(b2)
	if got := events(drain(t, a)); !reflect.DeepEqual(got, []string{EventUserOffline}) {
		t.Fatalf("expected offline event, got %v", got)
	}
	if h.IsOnline(2) {
		t.Fatal("user 2 still registered")
	}

	// Unregistering twice is harmless.
	h.unregister(b2)
}

func TestPushReachesEverySocketOfUser(t *testing.T) {
	h := NewHub(nil)
	a1, a2, other := newClient(1), newClient(1), newClient(3)
	h.register(a1)
	h.register(a2)
	h.register(other)
	drain(t, a1)
	drain(t, a2)
	drain(t, other)

	if n := h.Push(1, EventNotificationNew, map[string]any{"id": 7}); n != 2 {
		t.Fatalf("expected 2 sockets, got %d", n)
	}
	if n := h.Push(99, EventNotificationNew, nil); n != 0 {
		t.Fatalf("offline user reached %d sockets", n)
	}
	if got := drain(t, other); len(got) != 0 {
		t.Fatalf("push leaked to other user")
	}
	if got := events(drain(t, a2)); !reflect.DeepEqual(got, []string{EventNotificationNew}) {
		t.Fatalf("unexpected events %v", got)
	}
}

func TestPushDropsWhenBufferFull(t *testing.T) {
	h := NewHub(nil)
	c := newClient(1)
	h.register(c)

	accepted := 0
	for i := 0; i < sendBuffer*2; i++ {
		accepted += h.Push(1, EventNotificationNew, i)
	}
	// One slot was taken by users:online.
	if accepted != sendBuffer-1 {
		t.Fatalf("expected %d accepted, got %d", sendBuffer-1, accepted)
	}
}

func TestServeOverWebSocket(t *testing.T) {
	h := NewHub(nil)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.Serve(conn, 5)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var env Envelope
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&env); err != nil || env.Event != EventUsersOnline {
		t.Fatalf("expected users:online, got %+v %v", env, err)
	}

	if n := h.Push(5, EventNotificationNew, map[string]string{"title": "hi"}); n != 1 {
		t.Fatalf("expected push to reach 1 socket, got %d", n)
	}
	if err := conn.ReadJSON(&env); err != nil || env.Event != EventNotificationNew {
		t.Fatalf("expected notification:new, got %+v %v", env, err)
	}
}

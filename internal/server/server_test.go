package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"

	"github.com/soar/xgamepad/internal/gamepad"
	"github.com/soar/xgamepad/internal/hub"
	"github.com/soar/xgamepad/internal/session"
)

type fakeSource struct{}

func (fakeSource) Latest() session.Snapshot {
	return session.Snapshot{Running: true, Mode: "default", ControllerType: "xbox360"}
}

type immediate struct{}

func (immediate) Post(fn func()) { fn() }

type fakeControls struct {
	controller chan gamepad.ControllerType
}

func (f *fakeControls) StartConfiguration() {}
func (f *fakeControls) StopConfiguration()  {}
func (f *fakeControls) SetControllerType(t gamepad.ControllerType) {
	f.controller <- t
}
func (f *fakeControls) SetShowIndicators(bool) {}
func (f *fakeControls) HideKeyboard()          {}

func newTestServer(t *testing.T) (*httptest.Server, *fakeControls) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := hub.NewHub()
	go h.Run(ctx)
	controls := &fakeControls{controller: make(chan gamepad.ControllerType, 1)}
	s := New(Options{
		Hub:         h,
		Broadcaster: hub.NewBroadcaster(h, fakeSource{}),
		Loop:        immediate{},
		Controls:    controls,
		Source:      fakeSource{},
		Frontend: fstest.MapFS{
			"index.html": {Data: []byte("<html>\n  <body>\n    <p>status</p>\n  </body>\n</html>\n")},
			"app.js":     {Data: []byte("function  hello ( ) {\n  return 1 ;\n}\n")},
		},
	})
	handler, err := s.Handler()
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, controls
}

func get(t *testing.T, url string) (string, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: %s", url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body), resp.Header.Get("Content-Type")
}

func TestServesMinifiedAssets(t *testing.T) {
	srv, _ := newTestServer(t)

	body, ct := get(t, srv.URL+"/")
	if !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	if strings.Contains(body, "\n  ") {
		t.Errorf("index not minified: %q", body)
	}
	if !strings.Contains(body, "status") {
		t.Errorf("index content lost: %q", body)
	}

	body, _ = get(t, srv.URL+"/app.js")
	if len(body) >= len("function  hello ( ) {\n  return 1 ;\n}\n") {
		t.Errorf("script not minified: %q", body)
	}

	resp, err := http.Get(srv.URL + "/missing.css")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing asset status = %s", resp.Status)
	}
}

func TestSnapshotEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	body, _ := get(t, srv.URL+"/api/snapshot")
	var snap session.Snapshot
	if err := json.Unmarshal([]byte(body), &snap); err != nil {
		t.Fatal(err)
	}
	if !snap.Running || snap.ControllerType != "xbox360" {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestWebSocketInitialStateAndCommands(t *testing.T) {
	srv, controls := newTestServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg hub.WSMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != "full" {
		t.Errorf("initial message type = %q, want full", msg.Type)
	}

	if err := conn.WriteJSON(hub.ClientMessage{Type: hub.CmdSetController, ControllerType: "ds4"}); err != nil {
		t.Fatal(err)
	}
	select {
	case got := <-controls.controller:
		if got != gamepad.DS4 {
			t.Errorf("controller = %v, want ds4", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("set_controller not delivered")
	}
}

package xpweb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/soar/xgamepad/internal/sim"
	"github.com/soar/xgamepad/internal/xplane"
)

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	refs := map[string]map[string]Ref{
		"datarefs": {
			xplane.ThrottleRatioAll: {ID: 11, Name: xplane.ThrottleRatioAll, ValueType: "float"},
			xplane.AcfPropType:      {ID: 12, Name: xplane.AcfPropType, ValueType: "int_array"},
		},
		"commands": {
			xplane.CmdFlapsDown: {ID: 21, Name: xplane.CmdFlapsDown},
		},
	}
	mux := http.NewServeMux()
	for collection, known := range refs {
		mux.HandleFunc("/api/v2/"+collection, func(w http.ResponseWriter, r *http.Request) {
			name := r.URL.Query().Get("filter[name]")
			ref, ok := known[name]
			if !ok {
				json.NewEncoder(w).Encode(listResponse{Data: []Ref{}})
				return
			}
			json.NewEncoder(w).Encode(listResponse{Data: []Ref{ref}})
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientLookup(t *testing.T) {
	srv := newAPI(t)
	c := NewClient(srv.URL+"/", nil)
	ctx := context.Background()

	ref, err := c.Dataref(ctx, xplane.AcfPropType)
	if err != nil {
		t.Fatal(err)
	}
	if ref.ID != 12 || !ref.IsArray() {
		t.Errorf("ref = %+v", ref)
	}

	if _, err := c.Command(ctx, "sim/not/a/command"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown command error = %v, want ErrNotFound", err)
	}
}

func TestClientErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error_code":"forbidden","error_message":"incoming traffic disabled"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).Dataref(context.Background(), xplane.ThrottleRatioAll)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want API error", err)
	}
}

func TestWebsocketURL(t *testing.T) {
	tests := map[string]string{
		"http://localhost:8086":   "ws://localhost:8086/api/v2",
		"https://sim.lan/xplane/": "wss://sim.lan/xplane/api/v2",
	}
	for base, want := range tests {
		got, err := NewClient(base, nil).WebsocketURL()
		if err != nil {
			t.Errorf("%s: %v", base, err)
			continue
		}
		if got != want {
			t.Errorf("WebsocketURL(%s) = %s, want %s", base, got, want)
		}
	}
	if _, err := NewClient("ftp://host", nil).WebsocketURL(); err == nil {
		t.Error("ftp scheme accepted")
	}
}

func resolvedBridge(t *testing.T) (*Bridge, *sim.Host, *[]request) {
	t.Helper()
	srv := newAPI(t)
	host := sim.New(sim.Options{Aircraft: sim.DefaultAircraft()})
	b := NewBridge(NewClient(srv.URL, nil), host)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := b.resolve(ctx); err != nil {
		t.Fatal(err)
	}
	host.LocalStore().OnWrite(b.forwardWrite)
	host.LocalCommands().OnInvoke(b.forwardCommand)

	var sent []request
	b.setOutput(func(data []byte) error {
		var r request
		if err := json.Unmarshal(data, &r); err != nil {
			t.Errorf("bad request %s: %v", data, err)
		}
		sent = append(sent, r)
		return nil
	})
	return b, host, &sent
}

func TestMirrorUpdates(t *testing.T) {
	b, host, _ := resolvedBridge(t)
	b.handle([]byte(`{"type":"dataref_update_values","data":{"11":0.75,"12":[1,3],"99":5}}`))
	host.Step(10 * time.Millisecond)

	store := host.LocalStore()
	if got := store.Float(xplane.ThrottleRatioAll); got != 0.75 {
		t.Errorf("throttle = %v, want 0.75", got)
	}
	props := make([]int, 2)
	store.Ints(xplane.AcfPropType, props, 0)
	if diff := cmp.Diff([]int{1, 3}, props); diff != "" {
		t.Errorf("prop types mismatch (-want +got):\n%s", diff)
	}
}

func TestMirroredValuesAreNotEchoed(t *testing.T) {
	b, host, sent := resolvedBridge(t)
	b.handle([]byte(`{"type":"dataref_update_values","data":{"11":0.5}}`))
	host.Step(10 * time.Millisecond)
	if len(*sent) != 0 {
		t.Errorf("mirrored value forwarded: %+v", *sent)
	}
}

func TestForwardWritesAndCommands(t *testing.T) {
	_, host, sent := resolvedBridge(t)
	store := host.LocalStore()
	cmds := host.LocalCommands()

	store.SetFloat(xplane.ThrottleRatioAll, 0.5)
	store.SetInts(xplane.AcfPropType, []int{2}, 1)
	store.SetInt(xplane.HasJoystick, 1)
	ref := cmds.Find(xplane.CmdFlapsDown)
	cmds.Begin(ref)
	cmds.Invoke(ref, xplane.PhaseContinue)
	cmds.End(ref)

	var types []string
	for _, r := range *sent {
		types = append(types, r.Type)
	}
	want := []string{"dataref_set_values", "dataref_set_values", "command_set_is_active", "command_set_is_active"}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Fatalf("request types mismatch (-want +got):\n%s", diff)
	}

	params, _ := json.Marshal((*sent)[1].Params)
	if got, want := string(params), `{"datarefs":[{"id":12,"index":1,"value":2}]}`; got != want {
		t.Errorf("array write = %s, want %s", got, want)
	}
	params, _ = json.Marshal((*sent)[3].Params)
	if got, want := string(params), `{"commands":[{"id":21,"is_active":false}]}`; got != want {
		t.Errorf("command end = %s, want %s", got, want)
	}
}

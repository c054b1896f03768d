package xpweb

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lxzan/gws"
	"github.com/pkg/errors"

	"github.com/soar/xgamepad/internal/logger"
	"github.com/soar/xgamepad/internal/sim"
	"github.com/soar/xgamepad/internal/xplane"
)

// localPrefix marks datarefs that stay local: the joystick arrays are fed
// by the controller reader and dispatched by the simulated host.
const localPrefix = "sim/joystick/"

const (
	retryInterval    = 3 * time.Second
	handshakeTimeout = 5 * time.Second
)

type request struct {
	ReqID  int64  `json:"req_id"`
	Type   string `json:"type"`
	Params any    `json:"params"`
}

type datarefValue struct {
	ID    int64 `json:"id"`
	Index *int  `json:"index,omitempty"`
	Value any   `json:"value,omitempty"`
}

type commandActive struct {
	ID       int64 `json:"id"`
	IsActive bool  `json:"is_active"`
}

type event struct {
	Type    string                     `json:"type"`
	ReqID   int64                      `json:"req_id"`
	Success *bool                      `json:"success"`
	Error   string                     `json:"error_message"`
	Data    map[string]json.RawMessage `json:"data"`
}

// Bridge keeps the simulated host and X-Plane in step. Values X-Plane sends
// are mirrored into the local store on the flight loop; local dataref
// writes and built-in command phases are forwarded to X-Plane.
type Bridge struct {
	host   *sim.Host
	client *Client
	retry  time.Duration

	mu       sync.RWMutex
	datarefs map[string]Ref
	byID     map[int64]string
	commands map[string]Ref
	out      func([]byte) error

	nextReq atomic.Int64
	hooks   sync.Once
}

func NewBridge(c *Client, host *sim.Host) *Bridge {
	return &Bridge{
		host:   host,
		client: c,
		retry:  retryInterval,
	}
}

// Run resolves names, connects and serves until ctx is done, reconnecting
// whenever X-Plane goes away.
func (b *Bridge) Run(ctx context.Context) error {
	b.hooks.Do(func() {
		b.host.LocalStore().OnWrite(b.forwardWrite)
		b.host.LocalCommands().OnInvoke(b.forwardCommand)
	})
	for {
		err := b.connect(ctx)
		if ctx.Err() != nil {
			return nil
		}
		logger.Warningf("x-plane bridge: %v; retrying in %s", err, b.retry)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(b.retry):
		}
	}
}

func (b *Bridge) connect(ctx context.Context) error {
	if !b.resolved() {
		if err := b.resolve(ctx); err != nil {
			return err
		}
	}
	addr, err := b.client.WebsocketURL()
	if err != nil {
		return err
	}

	h := &events{bridge: b, closed: make(chan error, 1)}
	socket, _, err := gws.NewClient(h, &gws.ClientOption{
		Addr:             addr,
		HandshakeTimeout: handshakeTimeout,
	})
	if err != nil {
		return errors.Wrapf(err, "dial %s", addr)
	}
	b.setOutput(func(data []byte) error {
		return socket.WriteMessage(gws.OpcodeText, data)
	})
	defer b.setOutput(nil)
	go socket.ReadLoop()

	if err := b.subscribe(); err != nil {
		socket.WriteClose(1000, nil)
		return err
	}
	logger.Infof("x-plane bridge connected to %s", addr)

	select {
	case <-ctx.Done():
		socket.WriteClose(1000, nil)
		return nil
	case err := <-h.closed:
		return errors.Wrap(err, "connection closed")
	}
}

func (b *Bridge) resolved() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.datarefs != nil
}

// resolve looks up every mirrored dataref and built-in command. Names
// X-Plane does not know are skipped.
func (b *Bridge) resolve(ctx context.Context) error {
	datarefs := make(map[string]Ref)
	byID := make(map[int64]string)
	for _, name := range b.host.LocalStore().Names() {
		if strings.HasPrefix(name, localPrefix) {
			continue
		}
		ref, err := b.client.Dataref(ctx, name)
		if errors.Is(err, ErrNotFound) {
			logger.Debugf("dataref %s not present in x-plane", name)
			continue
		}
		if err != nil {
			return err
		}
		datarefs[name] = ref
		byID[ref.ID] = name
	}

	commands := make(map[string]Ref)
	for _, name := range xplane.BuiltinCommands {
		ref, err := b.client.Command(ctx, name)
		if errors.Is(err, ErrNotFound) {
			logger.Debugf("command %s not present in x-plane", name)
			continue
		}
		if err != nil {
			return err
		}
		commands[name] = ref
	}

	b.mu.Lock()
	b.datarefs, b.byID, b.commands = datarefs, byID, commands
	b.mu.Unlock()
	logger.Infof("x-plane bridge resolved %d datarefs and %d commands", len(datarefs), len(commands))
	return nil
}

func (b *Bridge) subscribe() error {
	b.mu.RLock()
	refs := make([]datarefValue, 0, len(b.datarefs))
	for _, r := range b.datarefs {
		refs = append(refs, datarefValue{ID: r.ID})
	}
	b.mu.RUnlock()
	return b.send("dataref_subscribe_values", map[string]any{"datarefs": refs})
}

func (b *Bridge) setOutput(fn func([]byte) error) {
	b.mu.Lock()
	b.out = fn
	b.mu.Unlock()
}

func (b *Bridge) send(typ string, params any) error {
	b.mu.RLock()
	out := b.out
	b.mu.RUnlock()
	if out == nil {
		return errors.New("not connected")
	}
	data, err := json.Marshal(request{ReqID: b.nextReq.Add(1), Type: typ, Params: params})
	if err != nil {
		return errors.Wrapf(err, "encode %s", typ)
	}
	return errors.Wrapf(out(data), "send %s", typ)
}

func (b *Bridge) forwardWrite(name string, offset int, values []float64) {
	if strings.HasPrefix(name, localPrefix) || len(values) == 0 {
		return
	}
	b.mu.RLock()
	ref, ok := b.datarefs[name]
	b.mu.RUnlock()
	if !ok {
		return
	}

	var refs []datarefValue
	if ref.IsArray() {
		for i, v := range values {
			index := offset + i
			refs = append(refs, datarefValue{ID: ref.ID, Index: &index, Value: v})
		}
	} else if offset == 0 {
		refs = append(refs, datarefValue{ID: ref.ID, Value: values[0]})
	}
	if len(refs) == 0 {
		return
	}
	if err := b.send("dataref_set_values", map[string]any{"datarefs": refs}); err != nil {
		logger.Debugf("forward %s: %v", name, err)
	}
}

func (b *Bridge) forwardCommand(name string, phase xplane.Phase) {
	if phase == xplane.PhaseContinue {
		return
	}
	b.mu.RLock()
	ref, ok := b.commands[name]
	b.mu.RUnlock()
	if !ok {
		return
	}
	cmd := commandActive{ID: ref.ID, IsActive: phase == xplane.PhaseBegin}
	if err := b.send("command_set_is_active", map[string]any{"commands": []commandActive{cmd}}); err != nil {
		logger.Debugf("forward %s %s: %v", name, phase, err)
	}
}

// handle processes one message from X-Plane.
func (b *Bridge) handle(data []byte) {
	var ev event
	if err := json.Unmarshal(data, &ev); err != nil {
		logger.Warningf("x-plane bridge: bad message: %v", err)
		return
	}
	switch ev.Type {
	case "result":
		if ev.Success != nil && !*ev.Success {
			logger.Warningf("x-plane request %d failed: %s", ev.ReqID, ev.Error)
		}
	case "dataref_update_values":
		b.mirror(ev.Data)
	}
}

func (b *Bridge) mirror(data map[string]json.RawMessage) {
	type update struct {
		name   string
		values []float64
	}
	var updates []update
	b.mu.RLock()
	for key, raw := range data {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		name, ok := b.byID[id]
		if !ok {
			continue
		}
		values, ok := decodeValues(raw)
		if !ok {
			continue
		}
		updates = append(updates, update{name, values})
	}
	b.mu.RUnlock()
	if len(updates) == 0 {
		return
	}

	store := b.host.LocalStore()
	b.host.Post(func() {
		for _, u := range updates {
			store.Mirror(u.name, 0, u.values)
		}
	})
}

// decodeValues accepts a number or an array of numbers. Byte datarefs
// arrive base64 encoded and are not mirrored.
func decodeValues(raw json.RawMessage) ([]float64, bool) {
	var v float64
	if err := json.Unmarshal(raw, &v); err == nil {
		return []float64{v}, true
	}
	var vs []float64
	if err := json.Unmarshal(raw, &vs); err == nil {
		return vs, true
	}
	return nil, false
}

type events struct {
	gws.BuiltinEventHandler
	bridge *Bridge
	closed chan error
}

func (e *events) OnClose(socket *gws.Conn, err error) {
	select {
	case e.closed <- err:
	default:
	}
}

func (e *events) OnMessage(socket *gws.Conn, message *gws.Message) {
	defer message.Close()
	e.bridge.handle(message.Bytes())
}

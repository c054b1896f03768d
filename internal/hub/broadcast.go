package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/soar/xgamepad/internal/logger"
	"github.com/soar/xgamepad/internal/session"
)

const (
	pollInterval     = 50 * time.Millisecond
	fullSyncInterval = 5 * time.Second
	deltaCountSync   = 100
)

// SnapshotSource publishes the latest session snapshot.
type SnapshotSource interface {
	Latest() session.Snapshot
}

// Broadcaster polls the session snapshot and broadcasts changes to the hub.
type Broadcaster struct {
	hub    *Hub
	source SnapshotSource

	mu         sync.Mutex
	last       session.Snapshot
	seq        int64
	deltaCount int
}

func NewBroadcaster(h *Hub, source SnapshotSource) *Broadcaster {
	return &Broadcaster{
		hub:    h,
		source: source,
	}
}

// Run starts the broadcaster loop and returns when ctx is done.
func (b *Broadcaster) Run(ctx context.Context) error {
	poll := time.NewTicker(pollInterval)
	defer poll.Stop()
	fullSync := time.NewTicker(fullSyncInterval)
	defer fullSync.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-poll.C:
			b.poll()
		case <-fullSync.C:
			b.mu.Lock()
			b.seq++
			b.deltaCount = 0
			msg := NewFullMessage(b.seq, &b.last)
			b.mu.Unlock()
			b.broadcast(msg)
		}
	}
}

func (b *Broadcaster) poll() {
	snap := b.source.Latest()

	b.mu.Lock()
	delta, err := ComputeDelta(b.last, snap)
	if err != nil {
		b.mu.Unlock()
		logger.Errorf("computing snapshot delta: %v", err)
		return
	}
	if len(delta) == 0 {
		b.mu.Unlock()
		return
	}
	b.last = snap
	b.seq++
	b.deltaCount++

	var msg *WSMessage
	if b.deltaCount >= deltaCountSync {
		b.deltaCount = 0
		msg = NewFullMessage(b.seq, &snap)
	} else {
		msg = NewDeltaMessage(b.seq, delta)
	}
	b.mu.Unlock()
	b.broadcast(msg)
}

// SendInitialState sends the current full snapshot to a newly connected client.
func (b *Broadcaster) SendInitialState(c *Client) {
	b.mu.Lock()
	b.seq++
	snap := b.last
	msg := NewFullMessage(b.seq, &snap)
	b.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		logger.Errorf("marshaling initial state: %v", err)
		return
	}
	c.Send(data)
}

func (b *Broadcaster) broadcast(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Errorf("marshaling %s message: %v", msg.Type, err)
		return
	}
	b.hub.Broadcast(data)
}

package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/autolane/marketplace-api/internal/core/domain"
)

type memorySink struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (m *memorySink) Insert(ctx context.Context, event *domain.AuditEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *event)
	return nil
}

func (m *memorySink) snapshot() []domain.AuditEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AuditEvent, len(m.events))
	copy(out, m.events)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(2, sink, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Record(domain.AuditEvent{Username: "alice", Kind: domain.AuditLoginSuccess, At: time.Now()})
	d.Record(domain.AuditEvent{Username: "bob", Kind: domain.AuditLoginFailure, At: time.Now()})

	waitFor(t, func() bool { return len(sink.snapshot()) == 2 })
}

func TestDispatcher_PerUsernameOrdering(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(4, sink, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	kinds := []domain.AuditKind{
		domain.AuditLoginFailure,
		domain.AuditLoginFailure,
		domain.AuditLoginSuccess,
		domain.AuditPasswordChanged,
	}
	for _, k := range kinds {
		d.Record(domain.AuditEvent{Username: "alice", Kind: k, At: time.Now()})
	}

	waitFor(t, func() bool { return len(sink.snapshot()) == len(kinds) })

	// Same username always hashes to the same worker, so the trail order
	// matches the record order.
	got := sink.snapshot()
	for i, k := range kinds {
		if got[i].Kind != k {
			t.Fatalf("event %d: expected %s, got %s", i, k, got[i].Kind)
		}
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(8, &memorySink{}, zerolog.Nop())
	first := d.shardIndex("alice")
	for i := 0; i < 10; i++ {
		if d.shardIndex("alice") != first {
			t.Fatal("shard index must be deterministic per username")
		}
	}
}

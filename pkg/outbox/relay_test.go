package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu      sync.Mutex
	records []Record
	sent    map[int64]bool
}

func (s *memStore) FetchPending(_ context.Context, limit int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Record
	for _, r := range s.records {
		if !s.sent[r.ID] && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) MarkSent(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent[id] = true
	return nil
}

type memPublisher struct {
	mu     sync.Mutex
	failOn string
	got    []string
}

func (p *memPublisher) Publish(_ context.Context, topic, key string, _ []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if key == p.failOn {
		return errors.New("broker down")
	}
	p.got = append(p.got, topic+"/"+key)
	return nil
}

func newStore() *memStore {
	return &memStore{
		records: []Record{
			{ID: 1, Topic: "order_events", Key: "1"},
			{ID: 2, Topic: "order_events", Key: "2"},
			{ID: 3, Topic: "order_events", Key: "3"},
		},
		sent: map[int64]bool{},
	}
}

func TestRelay_RunOnce_PublishesAndMarks(t *testing.T) {
	store := newStore()
	pub := &memPublisher{}
	r := &Relay{Store: store, Publisher: pub, BatchSize: 2}

	n, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"order_events/1", "order_events/2"}, pub.got)

	n, err = r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, store.sent[3])
}

func TestRelay_RunOnce_StopsAtFirstFailure(t *testing.T) {
	store := newStore()
	pub := &memPublisher{failOn: "2"}
	r := &Relay{Store: store, Publisher: pub}

	n, err := r.RunOnce(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, store.sent[1])
	assert.False(t, store.sent[2])
	assert.False(t, store.sent[3])
}

func TestRelay_Run_StopsOnCancel(t *testing.T) {
	store := newStore()
	pub := &memPublisher{}
	r := &Relay{Store: store, Publisher: pub, Interval: 10 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.sent) == 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("relay did not stop")
	}
}

package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"medisync/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type fakeFeed struct {
	ch     chan *redis.Message
	closed int32
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{ch: make(chan *redis.Message)}
}

func (f *fakeFeed) Channel() <-chan *redis.Message { return f.ch }

func (f *fakeFeed) Close() error {
	if atomic.CompareAndSwapInt32(&f.closed, 0, 1) {
		close(f.ch)
	}
	return nil
}

func waitForStatus(t *testing.T, w *Watcher, want Status) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case got := <-w.Updates():
			if got == want {
				return
			}
		case <-deadline:
			status, _ := w.Snapshot()
			t.Fatalf("watcher never reached status %d, stuck at %d", want, status)
		}
	}
}

func TestWatcherFlipsToUnauthenticatedAfterSignOut(t *testing.T) {
	userID := uuid.New()
	var revoked int32
	resolve := func(ctx context.Context) *Session {
		if atomic.LoadInt32(&revoked) == 1 {
			return nil
		}
		return &Session{
			UserID:  userID,
			Email:   "siti@medisync.id",
			Role:    entity.RoleDoctor,
			TokenID: "token-1",
		}
	}

	feed := newFakeFeed()
	w := newWatcher(context.Background(), resolve, feed)
	defer w.Close()

	waitForStatus(t, w, StatusAuthenticated)
	status, session := w.Snapshot()
	assert.Equal(t, StatusAuthenticated, status)
	assert.Equal(t, userID, session.UserID)
	assert.Equal(t, entity.RoleDoctor, session.Role)

	atomic.StoreInt32(&revoked, 1)
	feed.ch <- &redis.Message{Payload: `{"kind":"signed_out","user_id":"` + userID.String() + `"}`}

	waitForStatus(t, w, StatusUnauthenticated)
	status, session = w.Snapshot()
	assert.Equal(t, StatusUnauthenticated, status)
	assert.Nil(t, session)
}

func TestWatcherUnauthenticatedWhenTokenNeverResolves(t *testing.T) {
	resolve := func(ctx context.Context) *Session { return nil }

	feed := newFakeFeed()
	w := newWatcher(context.Background(), resolve, feed)
	defer w.Close()

	waitForStatus(t, w, StatusUnauthenticated)
	status, session := w.Snapshot()
	assert.Equal(t, StatusUnauthenticated, status)
	assert.Nil(t, session)
}

func TestWatcherIgnoresMalformedEvents(t *testing.T) {
	userID := uuid.New()
	resolve := func(ctx context.Context) *Session {
		return &Session{UserID: userID, Role: entity.RolePatient}
	}

	feed := newFakeFeed()
	w := newWatcher(context.Background(), resolve, feed)
	defer w.Close()

	waitForStatus(t, w, StatusAuthenticated)

	feed.ch <- &redis.Message{Payload: `not json`}
	feed.ch <- &redis.Message{Payload: `{"kind":"signed_in","user_id":"` + userID.String() + `"}`}

	waitForStatus(t, w, StatusAuthenticated)
	status, _ := w.Snapshot()
	assert.Equal(t, StatusAuthenticated, status)
}

func TestWatcherCloseStopsTheFeed(t *testing.T) {
	resolve := func(ctx context.Context) *Session { return nil }

	feed := newFakeFeed()
	w := newWatcher(context.Background(), resolve, feed)
	waitForStatus(t, w, StatusUnauthenticated)

	w.Close()
	assert.Equal(t, int32(1), atomic.LoadInt32(&feed.closed))
}

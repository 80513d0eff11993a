// Package session resolves the current authenticated identity and role from
// the auth layer and exposes a tri-state view of it: loading, authenticated,
// or unauthenticated. A failed lookup is treated identically to "no session";
// there is no retry.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"medisync/internal/domain/entity"
	"medisync/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Status is the resolver's tri-state.
type Status int

const (
	StatusLoading Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

// Session is the resolved identity.
type Session struct {
	UserID  uuid.UUID
	Email   string
	Role    entity.Role
	TokenID string
}

// EventsChannel carries session-change notifications published on sign-in
// and sign-out.
const EventsChannel = "session:events"

// Event is one session-change notification.
type Event struct {
	Kind   string    `json:"kind"` // "signed_in" or "signed_out"
	UserID uuid.UUID `json:"user_id"`
}

const (
	EventSignedIn  = "signed_in"
	EventSignedOut = "signed_out"
)

type Resolver struct {
	jwtService *jwt.JWTService
	redis      *redis.Client
	log        *logrus.Logger
}

func NewResolver(jwtService *jwt.JWTService, redisClient *redis.Client, log *logrus.Logger) *Resolver {
	return &Resolver{
		jwtService: jwtService,
		redis:      redisClient,
		log:        log,
	}
}

// Resolve turns a bearer token into a Session. Any failure (bad token, wrong
// token type, revoked, store unreachable) yields nil, the same as no session
// at all. A token without a role resolves to the lowest-privilege role rather
// than failing.
func (r *Resolver) Resolve(ctx context.Context, token string) *Session {
	if token == "" {
		return nil
	}

	claims, err := r.jwtService.ValidateToken(token)
	if err != nil {
		return nil
	}
	if claims.TokenType != jwt.AccessToken {
		return nil
	}

	tokenKey := fmt.Sprintf("access_token:%s:%s", claims.UserID.String(), claims.TokenID)
	exists, err := r.redis.Exists(ctx, tokenKey).Result()
	if err != nil {
		r.log.Warnf("Session store lookup failed, treating as no session: %+v", err)
		return nil
	}
	if exists == 0 {
		return nil
	}

	role := claims.Role
	if role == "" {
		role = entity.RolePatient
	}

	return &Session{
		UserID:  claims.UserID,
		Email:   claims.Email,
		Role:    role,
		TokenID: claims.TokenID,
	}
}

// Publish announces a session change to every watcher.
func (r *Resolver) Publish(ctx context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := r.redis.Publish(ctx, EventsChannel, payload).Err(); err != nil {
		// Watchers just miss one notification; nothing to recover.
		r.log.Warnf("Failed to publish session event: %+v", err)
	}
}

// eventFeed is the stream of session-change notifications a watcher follows.
// The redis pub/sub subscription satisfies it through redisFeed.
type eventFeed interface {
	Channel() <-chan *redis.Message
	Close() error
}

type redisFeed struct {
	sub *redis.PubSub
}

func (f redisFeed) Channel() <-chan *redis.Message { return f.sub.Channel() }
func (f redisFeed) Close() error                   { return f.sub.Close() }

// Watcher tracks the session behind one bearer token for the lifetime of a
// component, re-resolving whenever the auth layer announces a change.
type Watcher struct {
	mu      sync.RWMutex
	status  Status
	session *Session

	resolve func(ctx context.Context) *Session
	feed    eventFeed
	updates chan Status
	cancel  context.CancelFunc
	done    chan struct{}
}

// Watch starts in StatusLoading, resolves once, then follows session-change
// notifications until Close.
func (r *Resolver) Watch(ctx context.Context, token string) *Watcher {
	resolve := func(ctx context.Context) *Session { return r.Resolve(ctx, token) }
	return newWatcher(ctx, resolve, redisFeed{sub: r.redis.Subscribe(ctx, EventsChannel)})
}

func newWatcher(ctx context.Context, resolve func(ctx context.Context) *Session, feed eventFeed) *Watcher {
	watchCtx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		status:  StatusLoading,
		resolve: resolve,
		feed:    feed,
		updates: make(chan Status, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	go w.run(watchCtx)
	return w
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	w.refresh(ctx)

	ch := w.feed.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			w.refresh(ctx)
		}
	}
}

func (w *Watcher) refresh(ctx context.Context) {
	session := w.resolve(ctx)

	w.mu.Lock()
	if session == nil {
		w.status = StatusUnauthenticated
		w.session = nil
	} else {
		w.status = StatusAuthenticated
		w.session = session
	}
	status := w.status
	w.mu.Unlock()

	// Keep only the latest status; refresh runs on the watcher goroutine, so
	// the drain cannot race another writer.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- status
}

// Snapshot returns the current tri-state and, when authenticated, the session.
func (w *Watcher) Snapshot() (Status, *Session) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.status, w.session
}

// Updates delivers the status after each resolution, most recent only. The
// first receive observes the initial resolve.
func (w *Watcher) Updates() <-chan Status {
	return w.updates
}

// Close unsubscribes from change notifications and stops the watcher.
func (w *Watcher) Close() {
	w.cancel()
	w.feed.Close()
	<-w.done
}

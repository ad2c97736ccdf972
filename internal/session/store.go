// Package session holds the client-side authentication state: who is
// logged in, their bearer token, and the authorization flags derived from
// them. The state is rehydrated once from a Persister and written back in
// the background after every mutation.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/beanmart/beanmart/pkg/domain"
)

var (
	// ErrNilUser is returned by Login and SetUser when given no identity.
	ErrNilUser = errors.New("session: user must not be nil")
	// ErrEmptyToken is returned by Login when given an empty token.
	ErrEmptyToken = errors.New("session: token must not be empty")
	// ErrClosed is returned by Flush after Close.
	ErrClosed = errors.New("session: store closed")
)

// Persister loads and stores the single session snapshot record.
//
// Load returns (nil, nil) when no snapshot exists.
type Persister interface {
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, s domain.Session) error
	Clear(ctx context.Context) error
}

const defaultWriteTimeout = 5 * time.Second

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence failures and lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWriteTimeout bounds each background persistence write.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}

// Store is the single source of truth for the current session.
// It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	user  *domain.User
	token string

	persister    Persister
	logger       *zap.Logger
	writeTimeout time.Duration

	dirty   chan struct{} // capacity 1; a pending signal means "state changed since last write"
	flushes chan chan error
	quit    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// New rehydrates a Store from p and starts its background writer.
// A missing, unreadable or malformed snapshot yields the anonymous state.
func New(ctx context.Context, p Persister, opts ...Option) *Store {
	s := &Store{
		persister:    p,
		logger:       zap.NewNop(),
		writeTimeout: defaultWriteTimeout,
		dirty:        make(chan struct{}, 1),
		flushes:      make(chan chan error),
		quit:         make(chan struct{}),
		done:         make(chan struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	s.rehydrate(ctx)
	go s.writer()
	return s
}

func (s *Store) rehydrate(ctx context.Context) {
	snap, err := s.persister.Load(ctx)
	if err != nil {
		s.logger.Warn("discarding unreadable session snapshot", zap.Error(err))
		return
	}
	if snap == nil {
		s.logger.Debug("no persisted session")
		return
	}
	norm := snap.Normalize()
	s.user = norm.User.Clone()
	s.token = norm.Token
	s.logger.Debug("session rehydrated", zap.Object("session", logSession(norm)))
}

// Login replaces the identity and token in one step.
// The caller must already have validated the credentials with the API.
func (s *Store) Login(u *domain.User, token string) error {
	if u == nil {
		return ErrNilUser
	}
	if token == "" {
		return ErrEmptyToken
	}
	s.mu.Lock()
	s.user = u.Clone()
	s.token = token
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("session login", zap.Object("session", logSession(snap)))
	s.markDirty()
	return nil
}

// Logout resets the store to the anonymous state. It is idempotent.
func (s *Store) Logout() {
	s.mu.Lock()
	wasAnonymous := s.user == nil && s.token == ""
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if !wasAnonymous {
		s.logger.Info("session logout")
	}
	s.markDirty()
}

// SetUser replaces the identity without touching the token, e.g. after a
// profile refresh.
func (s *Store) SetUser(u *domain.User) error {
	if u == nil {
		return ErrNilUser
	}
	s.mu.Lock()
	s.user = u.Clone()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Debug("session user updated", zap.Object("session", logSession(snap)))
	s.markDirty()
	return nil
}

// Snapshot returns a consistent copy of the whole session.
func (s *Store) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() domain.Session {
	return domain.Session{User: s.user.Clone(), Token: s.token}.Normalize()
}

// User returns a copy of the current identity, or nil when anonymous.
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

// Token returns the bearer credential, or "" when there is none.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether both an identity and a token are held.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// IsAdmin reports whether the current identity carries the admin flag.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsAdmin
}

func (s *Store) markDirty() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

// writer persists the latest state whenever the store is marked dirty.
// Bursts of mutations collapse into a single write of the newest state.
func (s *Store) writer() {
	defer close(s.done)
	for {
		select {
		case <-s.dirty:
			_ = s.persist()
		case ack := <-s.flushes:
			select {
			case <-s.dirty:
			default:
			}
			ack <- s.persist()
		case <-s.quit:
			select {
			case <-s.dirty:
				_ = s.persist()
			default:
			}
			return
		}
	}
}

func (s *Store) persist() error {
	snap := s.Snapshot()
	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()

	var err error
	if snap.Anonymous() {
		err = s.persister.Clear(ctx)
	} else {
		err = s.persister.Save(ctx, snap)
	}
	if err != nil {
		s.logger.Warn("session persistence failed", zap.Bool("clear", snap.Anonymous()), zap.Error(err))
	}
	return err
}

// Flush writes the current state through the persister and returns its
// error. Mutations never wait on persistence; Flush is for callers that are
// about to exit or need to observe the write.
func (s *Store) Flush(ctx context.Context) error {
	ack := make(chan error, 1)
	select {
	case s.flushes <- ack:
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-ack:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close writes any pending state and stops the background writer.
// Mutations after Close update memory only.
func (s *Store) Close(ctx context.Context) error {
	s.once.Do(func() { close(s.quit) })
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

package auth

import (
	"context"
	"sync"
)

// Event names a session state change delivered to subscribers.
type Event string

const (
	EventInitialSession Event = "initial-session"
	EventSignedIn       Event = "signed-in"
	EventSignedOut      Event = "signed-out"
	EventUserUpdated    Event = "user-updated"
	EventTokenRefreshed Event = "token-refreshed"
)

// Session is an explicit, injectable current-user context: one per client,
// never a process-wide singleton, so adapters and the catalog filter can be
// exercised against fixed fake users. Subscribers observe every state
// change; a new subscriber is immediately told the current state via
// initial-session.
type Session struct {
	svc *Service

	mu      sync.Mutex
	current *User
	token   string
	subs    map[int]func(Event, *User)
	nextSub int
}

// NewSession creates an empty session over the auth service.
func NewSession(svc *Service) *Session {
	return &Session{
		svc:  svc,
		subs: make(map[int]func(Event, *User)),
	}
}

// CurrentUser returns the signed-in user, if any.
func (s *Session) CurrentUser() (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, false
	}
	u := *s.current
	return &u, true
}

// Token returns the current access token, if signed in.
func (s *Session) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

// Subscribe registers a callback for session changes and returns an
// unsubscribe function. The callback fires synchronously with
// initial-session before Subscribe returns.
func (s *Session) Subscribe(fn func(Event, *User)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	current := s.current
	s.mu.Unlock()

	fn(EventInitialSession, current)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// SignUp creates an account and signs the new user in.
func (s *Session) SignUp(ctx context.Context, name, email, password string) (*User, error) {
	u, err := s.svc.SignUp(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	return u, s.establish(u, EventSignedIn)
}

// SignIn checks credentials and establishes the session.
func (s *Session) SignIn(ctx context.Context, email, password string) (*User, error) {
	u, err := s.svc.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return u, s.establish(u, EventSignedIn)
}

// SignOut clears the session.
func (s *Session) SignOut() {
	s.mu.Lock()
	s.current = nil
	s.token = ""
	s.mu.Unlock()
	s.notify(EventSignedOut, nil)
}

// RefreshToken re-issues the access token for the signed-in user.
func (s *Session) RefreshToken() (string, error) {
	s.mu.Lock()
	u := s.current
	s.mu.Unlock()
	if u == nil {
		return "", ErrBadCredentials
	}

	token, err := s.svc.IssueToken(u)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	s.notify(EventTokenRefreshed, u)
	return token, nil
}

// Reload re-reads the signed-in user's profile from the store and notifies
// subscribers if it changed (e.g. edited from another tab).
func (s *Session) Reload(ctx context.Context) error {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()
	if current == nil {
		return nil
	}

	fresh, err := s.svc.repo.GetByID(ctx, current.ID)
	if err != nil {
		return err
	}
	if fresh == nil {
		// Account deleted out from under us.
		s.SignOut()
		return nil
	}
	if *fresh == *current {
		return nil
	}

	s.mu.Lock()
	s.current = fresh
	s.mu.Unlock()
	s.notify(EventUserUpdated, fresh)
	return nil
}

func (s *Session) establish(u *User, ev Event) error {
	token, err := s.svc.IssueToken(u)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.current = u
	s.token = token
	s.mu.Unlock()
	s.notify(ev, u)
	return nil
}

func (s *Session) notify(ev Event, u *User) {
	s.mu.Lock()
	fns := make([]func(Event, *User), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(ev, u)
	}
}

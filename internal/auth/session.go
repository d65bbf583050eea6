// Package auth implements the session gate in front of protected views.
// The session is a pair of storage keys: a boolean flag and a username.
// The username is only meaningful while the flag reads "true"; readers
// treat the pair as one logical credential.
package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/Mdmuzammil18/invoice-app/internal/form"
	"github.com/Mdmuzammil18/invoice-app/internal/storage"
)

// State is the gate's view of the session.
type State int

const (
	StateUnknown State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	}

	return "unknown"
}

// Gate guards protected views. It starts in StateUnknown and settles on
// the first read of the stored flag; storage change events from other
// contexts force a re-derivation.
type Gate struct {
	store storage.Store

	mu       sync.Mutex
	state    State
	username string
	returnTo string
}

func NewGate(store storage.Store) *Gate {
	return &Gate{store: store, state: StateUnknown}
}

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == StateUnknown {
		g.derive()
	}

	return g.state
}

// Username returns the logged-in user, or "" when not authenticated.
func (g *Gate) Username() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == StateUnknown {
		g.derive()
	}

	if g.state != StateAuthenticated {
		return ""
	}

	return g.username
}

// derive re-reads the session pair. Callers hold g.mu.
func (g *Gate) derive() {
	v, ok := g.store.Get(storage.KeyAuthenticated)
	if ok && v == "true" {
		g.state = StateAuthenticated
		g.username, _ = g.store.Get(storage.KeyUsername)

		return
	}

	g.state = StateUnauthenticated
	g.username = ""
}

// Login validates the credentials and records the session. On a
// validation failure the per-field messages are returned and nothing is
// written. The flag and username are two writes, but the flag is removed
// again if the username write fails, so no partial session survives.
func (g *Gate) Login(username, password string) (map[string]string, error) {
	if errs := form.ValidateLogin(username, password); len(errs) > 0 {
		return errs, nil
	}

	username = strings.TrimSpace(username)

	if err := g.store.Set(storage.KeyAuthenticated, "true"); err != nil {
		return nil, err
	}

	if err := g.store.Set(storage.KeyUsername, username); err != nil {
		_ = g.store.Remove(storage.KeyAuthenticated)
		return nil, err
	}

	g.mu.Lock()
	g.state = StateAuthenticated
	g.username = username
	g.mu.Unlock()

	return nil, nil
}

func (g *Gate) Logout() error {
	if err := g.store.Remove(storage.KeyAuthenticated); err != nil {
		return err
	}

	if err := g.store.Remove(storage.KeyUsername); err != nil {
		return err
	}

	g.mu.Lock()
	g.state = StateUnauthenticated
	g.username = ""
	g.mu.Unlock()

	return nil
}

// RequireAuth reports whether a protected destination may render. When it
// may not, dest is remembered so login can resume there.
func (g *Gate) RequireAuth(dest string) bool {
	if g.State() == StateAuthenticated {
		return true
	}

	g.mu.Lock()
	g.returnTo = dest
	g.mu.Unlock()

	return false
}

// ConsumeReturnTo hands back the destination preserved by RequireAuth,
// clearing it. Returns "" when nothing was preserved.
func (g *Gate) ConsumeReturnTo() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	dest := g.returnTo
	g.returnTo = ""

	return dest
}

// Run consumes storage change events until ctx is done, re-deriving the
// session whenever the auth keys change in another context. onChange is
// invoked with the resulting state after each re-derivation.
func (g *Gate) Run(ctx context.Context, onChange func(State)) {
	events := g.store.Subscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}

			if ev.Key != storage.KeyAuthenticated && ev.Key != storage.KeyUsername {
				continue
			}

			g.mu.Lock()
			g.derive()
			state := g.state
			g.mu.Unlock()

			if onChange != nil {
				onChange(state)
			}
		}
	}
}

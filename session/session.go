// Package session holds the process-wide credential for the storefront
// client. The session object is passed explicitly into every component that
// needs it; there is no ambient global token. A subscription mechanism
// propagates logout and expiry so pages can redirect to login.
package session

import (
	"sync"

	"github.com/islam174932/EcommerceWeb/core"
)

// Session is the authenticated user's credential
type Session struct {
	Token    string
	UserName string
	Email    string
}

// Authenticated reports whether the session carries a usable token
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Reason explains why a session event fired
type Reason string

const (
	// ReasonLogin - a user signed in or registered
	ReasonLogin Reason = "login"
	// ReasonLogout - the user explicitly signed out
	ReasonLogout Reason = "logout"
	// ReasonExpired - the API rejected the token (401)
	ReasonExpired Reason = "expired"
)

// Event is delivered to subscribers on every session change
type Event struct {
	Reason  Reason
	Session Session
}

// Holder is the single process-wide session holder.
// Thread-safe; zero value not usable, use NewHolder.
type Holder struct {
	mu          sync.RWMutex
	session     Session
	subscribers []func(Event)
	logger      core.Logger
}

// NewHolder creates an empty session holder
func NewHolder() *Holder {
	return &Holder{logger: &core.NoOpLogger{}}
}

// SetLogger configures the logger for session events
func (h *Holder) SetLogger(logger core.Logger) {
	if logger != nil {
		h.mu.Lock()
		h.logger = logger
		h.mu.Unlock()
	}
}

// Get returns the current session and whether it is authenticated
func (h *Holder) Get() (Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.session, h.session.Authenticated()
}

// Token returns the current token, empty when signed out
func (h *Holder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.session.Token
}

// Set installs a new session and notifies subscribers with ReasonLogin
func (h *Holder) Set(s Session) {
	h.mu.Lock()
	h.session = s
	subs := append([]func(Event){}, h.subscribers...)
	logger := h.logger
	h.mu.Unlock()

	logger.Info("Session established", map[string]interface{}{
		"user": s.UserName,
	})
	notify(subs, Event{Reason: ReasonLogin, Session: s})
}

// Clear drops the session and notifies subscribers.
// reason distinguishes an explicit logout from a server-side expiry.
func (h *Holder) Clear(reason Reason) {
	h.mu.Lock()
	h.session = Session{}
	subs := append([]func(Event){}, h.subscribers...)
	logger := h.logger
	h.mu.Unlock()

	logger.Info("Session cleared", map[string]interface{}{
		"reason": string(reason),
	})
	notify(subs, Event{Reason: reason})
}

// Subscribe registers a callback for session changes. Callbacks run
// synchronously on the mutating goroutine and must not block.
func (h *Holder) Subscribe(fn func(Event)) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	h.subscribers = append(h.subscribers, fn)
	h.mu.Unlock()
}

func notify(subs []func(Event), ev Event) {
	for _, fn := range subs {
		fn(ev)
	}
}

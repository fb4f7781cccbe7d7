package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolderStartsUnauthenticated(t *testing.T) {
	h := NewHolder()

	s, ok := h.Get()
	assert.False(t, ok)
	assert.Empty(t, s.Token)
	assert.Empty(t, h.Token())
}

func TestHolderSetInstallsSession(t *testing.T) {
	h := NewHolder()
	h.Set(Session{Token: "jwt", UserName: "Ada", Email: "ada@example.com"})

	s, ok := h.Get()
	require.True(t, ok)
	assert.Equal(t, "jwt", s.Token)
	assert.Equal(t, "Ada", s.UserName)
	assert.Equal(t, "jwt", h.Token())
}

func TestHolderClearDropsSession(t *testing.T) {
	h := NewHolder()
	h.Set(Session{Token: "jwt"})
	h.Clear(ReasonLogout)

	_, ok := h.Get()
	assert.False(t, ok)
	assert.Empty(t, h.Token())
}

func TestHolderNotifiesSubscribersInOrder(t *testing.T) {
	h := NewHolder()

	var events []Event
	h.Subscribe(func(ev Event) { events = append(events, ev) })

	h.Set(Session{Token: "jwt", UserName: "Ada"})
	h.Clear(ReasonExpired)

	require.Len(t, events, 2)
	assert.Equal(t, ReasonLogin, events[0].Reason)
	assert.Equal(t, "Ada", events[0].Session.UserName)
	assert.Equal(t, ReasonExpired, events[1].Reason)
	assert.Empty(t, events[1].Session.Token)
}

func TestHolderClearReasonDistinguishesLogoutFromExpiry(t *testing.T) {
	h := NewHolder()

	var reasons []Reason
	h.Subscribe(func(ev Event) { reasons = append(reasons, ev.Reason) })

	h.Set(Session{Token: "jwt"})
	h.Clear(ReasonLogout)
	h.Set(Session{Token: "jwt2"})
	h.Clear(ReasonExpired)

	assert.Equal(t, []Reason{ReasonLogin, ReasonLogout, ReasonLogin, ReasonExpired}, reasons)
}

func TestHolderMultipleSubscribers(t *testing.T) {
	h := NewHolder()

	first, second := 0, 0
	h.Subscribe(func(Event) { first++ })
	h.Subscribe(func(Event) { second++ })

	h.Set(Session{Token: "jwt"})

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestHolderNilSubscriberIgnored(t *testing.T) {
	h := NewHolder()
	h.Subscribe(nil)
	// Must not panic on notify
	h.Set(Session{Token: "jwt"})
}

func TestSubscriberMayMutateHolder(t *testing.T) {
	h := NewHolder()

	// A subscriber reacting to expiry by reading state must not deadlock
	var sawToken string
	h.Subscribe(func(ev Event) {
		if ev.Reason == ReasonExpired {
			sawToken = h.Token()
		}
	})

	h.Set(Session{Token: "jwt"})
	h.Clear(ReasonExpired)

	assert.Empty(t, sawToken)
}

func TestSessionAuthenticated(t *testing.T) {
	assert.False(t, Session{}.Authenticated())
	assert.True(t, Session{Token: "jwt"}.Authenticated())
}

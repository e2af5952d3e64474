package viewstate

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/painelfacil/painel-api/internal/core/domain"
	"github.com/painelfacil/painel-api/internal/realtime"
)

func newUserView(initial []domain.User) *View[domain.User] {
	v := NewView(initial)
	v.OnCreated(realtime.EventUserCreated)
	v.OnUpdated(realtime.EventUserUpdated)
	v.OnDeleted(realtime.EventUserDeleted)
	return v
}

// waitFor polls until cond is true or the deadline passes. Hub delivery is
// asynchronous, so view assertions need a small grace period.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestView_MergesPushedEvents(t *testing.T) {
	hub := realtime.NewHub(zerolog.Nop())
	v := newUserView([]domain.User{{ID: 1, Name: "Ana", RoleID: 2}})
	v.Open(hub)
	defer v.Close()

	hub.Publish(realtime.Event{Name: realtime.EventUserCreated, Payload: domain.User{ID: 2, Name: "Bia"}})
	hub.Publish(realtime.Event{Name: realtime.EventUserUpdated, Payload: domain.User{ID: 1, Name: "Ana Maria"}})
	hub.Publish(realtime.Event{Name: realtime.EventUserDeleted, Payload: 2})

	waitFor(t, func() bool {
		u, ok := v.Get(1)
		return ok && u.Name == "Ana Maria" && v.Len() == 1
	})
}

func TestView_OptimisticAndPushConverge(t *testing.T) {
	hub := realtime.NewHub(zerolog.Nop())
	v := newUserView(nil)
	v.Open(hub)
	defer v.Close()

	created := domain.User{ID: 3, Name: "Caio", RoleID: 2}

	// POST response applies the optimistic insert first...
	v.Mutate(func(c *Collection[domain.User]) { c.ApplyCreate(created) })
	// ...then the push echo of the same create arrives.
	hub.Publish(realtime.Event{Name: realtime.EventUserCreated, Payload: created})

	waitFor(t, func() bool { return v.Len() == 1 })
	// Give the pump a moment: a duplicate would only show up after apply.
	time.Sleep(20 * time.Millisecond)
	if v.Len() != 1 {
		t.Fatalf("len = %d, want 1 (duplicate from optimistic+push)", v.Len())
	}
}

func TestView_UnknownEventIgnored(t *testing.T) {
	v := newUserView([]domain.User{{ID: 1}})
	v.Apply(realtime.Event{Name: "somethingElse", Payload: domain.User{ID: 9}})
	if v.Len() != 1 {
		t.Fatalf("len = %d, want 1", v.Len())
	}
}

func TestView_CloseStopsUpdates(t *testing.T) {
	hub := realtime.NewHub(zerolog.Nop())
	v := newUserView([]domain.User{{ID: 1, Name: "Ana"}})
	v.Open(hub)
	v.Close()

	if n := hub.Subscribers(); n != 0 {
		t.Fatalf("subscribers after close = %d, want 0 (leaked listener)", n)
	}

	// Late deliveries must not change observable state.
	v.Apply(realtime.Event{Name: realtime.EventUserDeleted, Payload: 1})
	hub.Publish(realtime.Event{Name: realtime.EventUserDeleted, Payload: 1})
	time.Sleep(10 * time.Millisecond)

	if v.Len() != 1 {
		t.Fatalf("torn-down view changed state, len = %d", v.Len())
	}

	v.Close() // idempotent
}

func TestView_MutateAfterCloseIsNoop(t *testing.T) {
	v := newUserView(nil)
	v.Close()
	v.Mutate(func(c *Collection[domain.User]) { c.ApplyCreate(domain.User{ID: 1}) })
	if v.Len() != 0 {
		t.Fatal("mutate after close changed state")
	}
}

func TestView_AppliesInArrivalOrder(t *testing.T) {
	hub := realtime.NewHub(zerolog.Nop())
	v := newUserView(nil)
	v.Open(hub)
	defer v.Close()

	// Last write per id wins: the second update must be the survivor.
	hub.Publish(realtime.Event{Name: realtime.EventUserCreated, Payload: domain.User{ID: 1, Name: "first"}})
	hub.Publish(realtime.Event{Name: realtime.EventUserUpdated, Payload: domain.User{ID: 1, Name: "second"}})

	waitFor(t, func() bool {
		u, ok := v.Get(1)
		return ok && u.Name == "second"
	})
}

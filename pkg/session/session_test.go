package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/graphsketch/pkg/graph"
	"github.com/matzehuels/graphsketch/pkg/interact"
)

type fakeNow struct{ t time.Time }

func (f *fakeNow) now() time.Time { return f.t }

func newStore(ttl time.Duration) (*MemoryStore, *fakeNow) {
	clock := &fakeNow{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(ttl)
	s.now = clock.now
	return s, clock
}

func TestCreateGet(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(time.Hour)

	sess, err := store.Create(ctx, interact.New())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := uuid.Parse(sess.ID); err != nil {
		t.Errorf("id %q is not a uuid: %v", sess.ID, err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != sess {
		t.Error("Get returned a different session")
	}

	if _, err := store.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) err = %v", err)
	}
}

func TestExpiry(t *testing.T) {
	ctx := context.Background()
	store, clock := newStore(time.Hour)

	old, _ := store.Create(ctx, interact.New())
	clock.t = clock.t.Add(30 * time.Minute)
	fresh, _ := store.Create(ctx, interact.New())

	clock.t = clock.t.Add(45 * time.Minute)
	if _, err := store.Get(ctx, old.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired session still returned (err=%v)", err)
	}

	list, _ := store.List(ctx)
	if len(list) != 1 || list[0] != fresh {
		t.Errorf("List = %v, want only the fresh session", list)
	}

	clock.t = clock.t.Add(2 * time.Hour)
	n, err := store.Cleanup(ctx)
	if err != nil || n != 1 {
		t.Errorf("Cleanup = %d, %v; want 1", n, err)
	}
}

func TestGetRefreshesLastUsed(t *testing.T) {
	ctx := context.Background()
	store, clock := newStore(time.Hour)
	sess, _ := store.Create(ctx, interact.New())

	for range 3 {
		clock.t = clock.t.Add(50 * time.Minute)
		if _, err := store.Get(ctx, sess.ID); err != nil {
			t.Fatalf("session expired despite use: %v", err)
		}
	}
	if !sess.LastUsed().Equal(clock.t) {
		t.Errorf("LastUsed = %v, want %v", sess.LastUsed(), clock.t)
	}
}

func TestDeleteClosesEditor(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(time.Hour)
	ed := interact.New()
	sess, _ := store.Create(ctx, ed)

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Errorf("second delete: %v", err)
	}

	// A closed controller ignores input.
	ed.PointerDown(graph.Point{X: 1, Y: 1}, interact.Canvas())
	if ed.Graph().NodeCount() != 0 {
		t.Error("editor still accepts events after delete")
	}
}

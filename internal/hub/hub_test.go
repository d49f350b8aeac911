package hub

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/bracket-spectator/internal/engine"
	"github.com/DoyleJ11/bracket-spectator/internal/lobby"
)

func newBracket(t *testing.T) *engine.Bracket {
	t.Helper()
	b, err := engine.Build([]string{"a", "b", "c", "d"}, engine.Options{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return b
}

func TestHub_Create_Get_SamePointer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub(ctx, zap.NewNop())
	reply := make(chan *lobby.Lobby, 1)

	h.Inbox() <- CreateLobby{Code: "ZED123", Bracket: newBracket(t), Reply: reply}
	lb1 := <-reply

	h.Inbox() <- GetLobby{Code: "ZED123", Reply: reply}
	lb2 := <-reply

	if lb1 == nil || lb2 == nil || lb1 != lb2 {
		t.Fatalf("expected same lobby pointer")
	}
	if lb3 := h.Get(ctx, "ZED123"); lb3 != lb1 {
		t.Fatalf("Get: expected same lobby pointer")
	}
}

func TestHub_EnsureWithoutBracketDoesNotCreate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub(ctx, nil)

	reply := make(chan *lobby.Lobby, 1)
	h.Inbox() <- EnsureLobby{Code: "NOPE00", Reply: reply}
	if lb := <-reply; lb != nil {
		t.Fatalf("expected no lobby")
	}
}

func TestHub_RemoveLobby_ShutsItDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub(ctx, nil)

	reply := make(chan *lobby.Lobby, 1)
	h.Inbox() <- CreateLobby{Code: "ABC123", Bracket: newBracket(t), Reply: reply}
	lb := <-reply

	removed := make(chan bool, 1)
	h.Inbox() <- RemoveLobby{Code: "ABC123", Reply: removed}
	if !<-removed {
		t.Fatalf("expected lobby to be removed")
	}

	select {
	case <-lb.Done():
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("removed lobby is still running")
	}
	if h.Get(ctx, "ABC123") != nil {
		t.Fatalf("expected code to be forgotten")
	}
}

func TestHub_EnsureAndRemove(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub(ctx, nil)

	lb, err := h.Ensure(ctx, "ABC123", newBracket(t))
	if err != nil || lb == nil {
		t.Fatalf("ensure: lobby=%v err=%v", lb, err)
	}
	again, err := h.Ensure(ctx, "ABC123", nil)
	if err != nil || again != lb {
		t.Fatalf("ensure existing: expected same lobby, err=%v", err)
	}

	removed, err := h.Remove(ctx, "ABC123")
	if err != nil || !removed {
		t.Fatalf("remove: removed=%v err=%v", removed, err)
	}
	removed, err = h.Remove(ctx, "ABC123")
	if err != nil || removed {
		t.Fatalf("remove twice: removed=%v err=%v", removed, err)
	}
}

func TestHub_CallsAfterShutdownReturnClosed(t *testing.T) {
	cases := []struct {
		name string
		stop func(h *Hub, cancel context.CancelFunc)
	}{
		{"parent cancelled", func(_ *Hub, cancel context.CancelFunc) { cancel() }},
		{"shutdown message", func(h *Hub, _ context.CancelFunc) { h.Inbox() <- ShutdownHub{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parent, cancel := context.WithCancel(context.Background())
			defer cancel()
			h := NewHub(parent, nil)
			tc.stop(h, cancel)
			<-h.ctx.Done()

			ctx, done := context.WithTimeout(context.Background(), time.Second)
			defer done()
			start := time.Now()

			if _, err := h.Remove(ctx, "ABC123"); !errors.Is(err, ErrClosed) {
				t.Fatalf("remove: want ErrClosed, got %v", err)
			}
			if _, err := h.Ensure(ctx, "ABC123", newBracket(t)); !errors.Is(err, ErrClosed) {
				t.Fatalf("ensure: want ErrClosed, got %v", err)
			}
			if lb := h.Get(ctx, "ABC123"); lb != nil {
				t.Fatalf("get: expected nil lobby")
			}
			if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
				t.Fatalf("calls on a stopped hub took %v", elapsed)
			}
		})
	}
}

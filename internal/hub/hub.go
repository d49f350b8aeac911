package hub

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/DoyleJ11/bracket-spectator/internal/engine"
	"github.com/DoyleJ11/bracket-spectator/internal/lobby"
)

var ErrClosed = errors.New("hub closed")

type HubMsg interface{ isHubMsg() }

type CreateLobby struct {
	Code    string
	Bracket *engine.Bracket
	Reply   chan *lobby.Lobby
}

type GetLobby struct {
	Code  string
	Reply chan *lobby.Lobby
}

type EnsureLobby struct {
	Code    string
	Bracket *engine.Bracket // only used if creation happens
	Reply   chan *lobby.Lobby
}

// RemoveLobby shuts the lobby down and forgets its code.
type RemoveLobby struct {
	Code  string
	Reply chan bool
}

type Hub struct {
	inbox   chan HubMsg
	lobbies map[string]*lobby.Lobby
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

type ShutdownHub struct{}

func (CreateLobby) isHubMsg() {}
func (GetLobby) isHubMsg()    {}
func (EnsureLobby) isHubMsg() {}
func (RemoveLobby) isHubMsg() {}
func (ShutdownHub) isHubMsg() {}

func NewHub(parent context.Context, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	if log == nil {
		log = zap.NewNop()
	}
	h := &Hub{
		inbox:   make(chan HubMsg, 64),
		lobbies: make(map[string]*lobby.Lobby),
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			// lobbies share h.ctx and stop on their own
			clear(h.lobbies)
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateLobby:
				msg.Reply <- h.ensure(msg.Code, msg.Bracket)

			case GetLobby:
				msg.Reply <- h.lobbies[msg.Code] // May be nil

			case EnsureLobby:
				msg.Reply <- h.ensure(msg.Code, msg.Bracket)

			case RemoveLobby:
				lb, ok := h.lobbies[msg.Code]
				if ok {
					_ = lb.Send(h.ctx, lobby.Shutdown{})
					delete(h.lobbies, msg.Code)
					h.log.Info("lobby removed", zap.String("code", msg.Code))
				}
				if msg.Reply != nil {
					msg.Reply <- ok
				}

			case ShutdownHub:
				for _, lb := range h.lobbies {
					_ = lb.Send(h.ctx, lobby.Shutdown{})
				}
				clear(h.lobbies)
				h.cancel()
			}

		}
	}
}

func (h *Hub) ensure(code string, b *engine.Bracket) *lobby.Lobby {
	if lb := h.lobbies[code]; lb != nil {
		return lb
	}
	if b == nil {
		return nil
	}
	lb := lobby.NewLobby(h.ctx, b, h.log.With(zap.String("code", code)))
	h.lobbies[code] = lb
	h.log.Info("lobby created",
		zap.String("code", code),
		zap.Int("bracket_size", b.Size),
		zap.String("hero", b.Hero))
	return lb
}

// Get looks up a lobby by code; it returns nil when the code is unknown, the
// hub has stopped or ctx ends.
func (h *Hub) Get(ctx context.Context, code string) *lobby.Lobby {
	reply := make(chan *lobby.Lobby, 1)
	if err := h.send(ctx, GetLobby{Code: code, Reply: reply}); err != nil {
		return nil
	}
	lb, _ := await(ctx, h, reply)
	return lb
}

// Ensure returns the lobby registered under code, creating it from b when the
// code is free. A nil lobby with a nil error means b was nil and nothing existed.
func (h *Hub) Ensure(ctx context.Context, code string, b *engine.Bracket) (*lobby.Lobby, error) {
	reply := make(chan *lobby.Lobby, 1)
	if err := h.send(ctx, EnsureLobby{Code: code, Bracket: b, Reply: reply}); err != nil {
		return nil, err
	}
	return await(ctx, h, reply)
}

// Remove shuts down the lobby under code and reports whether it existed.
func (h *Hub) Remove(ctx context.Context, code string) (bool, error) {
	reply := make(chan bool, 1)
	if err := h.send(ctx, RemoveLobby{Code: code, Reply: reply}); err != nil {
		return false, err
	}
	return await(ctx, h, reply)
}

func (h *Hub) send(ctx context.Context, msg HubMsg) error {
	select {
	case <-h.ctx.Done():
		return ErrClosed
	default:
	}
	select {
	case h.inbox <- msg:
		return nil
	case <-h.ctx.Done():
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func await[T any](ctx context.Context, h *Hub, reply <-chan T) (T, error) {
	var zero T
	select {
	case v := <-reply:
		return v, nil
	case <-h.ctx.Done():
		return zero, ErrClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

package lobby

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/DoyleJ11/bracket-spectator/internal/engine"
	"github.com/DoyleJ11/bracket-spectator/pkg/types"
)

var ErrClosed = errors.New("lobby closed")

type Msg interface{ isLobbyMsg() }

// FromDriver carries one command from the match driver. Reply, when set,
// receives the outcome once the command has been applied.
type FromDriver struct {
	Cmd   engine.Command
	Reply chan Result
}

func (FromDriver) isLobbyMsg() {}

type Result struct {
	Snapshot Snapshot
	Err      error
}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this subscriber wants to receive snapshots
}

func (Join) isLobbyMsg() {}

type Leave struct{ ClientID string }

func (Leave) isLobbyMsg() {}

// Restart throws the current tournament away and builds a new one in place.
type Restart struct {
	Participants []engine.Participant
	Options      engine.Options
	Reply        chan error
}

func (Restart) isLobbyMsg() {}

type Shutdown struct{}

func (Shutdown) isLobbyMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isLobbyMsg() {}

type Snapshot struct {
	Version int
	State   types.Snapshot
}

type View struct {
	Version    int
	NumClients int
	State      types.Snapshot
	// Bracket is a private copy for in-process readers such as renderers.
	Bracket *engine.Bracket
}

// Lobby owns one bracket. Every engine call happens on the loop goroutine, so
// the engine never sees overlapping commands.
type Lobby struct {
	inbox   chan Msg
	bracket *engine.Bracket
	version int
	clients map[string]chan Snapshot
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewLobby(parent context.Context, initial *engine.Bracket, log *zap.Logger) *Lobby {
	ctx, cancel := context.WithCancel(parent)
	if log == nil {
		log = zap.NewNop()
	}

	l := &Lobby{
		inbox:   make(chan Msg, 64), // Small buffer
		bracket: initial,
		version: 0,
		clients: make(map[string]chan Snapshot),
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	// A fresh bracket may open on a followed bye.
	l.bracket.Progress()

	go l.loop()
	return l
}

func (l *Lobby) loop() {
	defer close(l.done)
	for {
		select {
		case <-l.ctx.Done():
			l.shutdown()
			return

		case m := <-l.inbox:
			switch msg := m.(type) {
			case Join:
				// Register subscriber + send current snapshot immediately
				l.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- l.snapshot(nil)

			case Leave:
				delete(l.clients, msg.ClientID)

			case FromDriver:
				events, err := l.apply(msg.Cmd)
				if err != nil {
					l.log.Warn("command rejected",
						zap.String("command", string(msg.Cmd.Type)),
						zap.Int("round", l.bracket.Round),
						zap.Error(err))
					reply(msg.Reply, Result{Snapshot: l.snapshot(nil), Err: err})
					break
				}
				l.version++
				snap := l.snapshot(events)
				l.broadcast(snap)
				reply(msg.Reply, Result{Snapshot: snap})

			case Restart:
				if err := l.bracket.Reset(msg.Participants, msg.Options); err != nil {
					l.log.Warn("restart rejected", zap.Error(err))
					if msg.Reply != nil {
						msg.Reply <- err
					}
					break
				}
				l.bracket.Progress()
				l.version++
				l.log.Info("tournament restarted",
					zap.Int("participants", len(msg.Participants)),
					zap.String("hero", l.bracket.Hero))
				l.broadcast(l.snapshot(nil))
				if msg.Reply != nil {
					msg.Reply <- nil
				}

			case GetState:
				msg.Reply <- View{
					Version:    l.version,
					NumClients: len(l.clients),
					State:      l.snapshot(nil).State,
					Bracket:    l.bracket.Clone(),
				}

			case Shutdown:
				l.shutdown()
				return
			}
		}
	}
}

// apply runs cmd and then carries the bracket forward to the next match the
// spectator can watch.
func (l *Lobby) apply(cmd engine.Command) ([]engine.Event, error) {
	events, err := engine.Apply(l.bracket, cmd)
	if err != nil {
		return nil, err
	}
	if !l.bracket.IsComplete() {
		more, err := engine.Apply(l.bracket, engine.Command{Type: engine.CmdProgress})
		if err != nil {
			l.log.Error("progress failed", zap.Int("round", l.bracket.Round), zap.Error(err))
		}
		events = append(events, more...)
	}

	for _, e := range events {
		switch e.Type {
		case engine.EvtFollowingChanged:
			l.log.Info("now following", zap.String("participant", e.Winner), zap.String("eliminated", e.Loser))
		case engine.EvtTournamentCompleted:
			l.log.Info("tournament completed", zap.String("winner", e.Winner))
		}
	}
	return events, nil
}

func (l *Lobby) snapshot(events []engine.Event) Snapshot {
	return Snapshot{Version: l.version, State: types.NewSnapshot(l.version, l.bracket, events)}
}

func (l *Lobby) shutdown() {
	for id, ch := range l.clients {
		close(ch) // Tell subscriber no more snapshots
		delete(l.clients, id)
	}
	l.cancel()
}

func (l *Lobby) broadcast(snap Snapshot) {
	for id, ch := range l.clients {
		select {
		case ch <- snap:
			//ok
		default:
			// Subscriber is slow/full - drop it.
			l.log.Debug("dropping slow subscriber", zap.String("client", id))
			close(ch)
			delete(l.clients, id)
		}
	}
}

func reply(ch chan Result, r Result) {
	if ch != nil {
		ch <- r
	}
}

// Inbox exposes the inbox so the HTTP layer and tests can send messages.
func (l *Lobby) Inbox() chan<- Msg { return l.inbox }

// Done is closed once the loop has exited.
func (l *Lobby) Done() <-chan struct{} { return l.done }

// Send delivers msg unless the lobby has shut down or ctx ends first.
func (l *Lobby) Send(ctx context.Context, msg Msg) error {
	select {
	case l.inbox <- msg:
		return nil
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do applies cmd and waits for the resulting snapshot.
func (l *Lobby) Do(ctx context.Context, cmd engine.Command) (Snapshot, error) {
	rc := make(chan Result, 1)
	if err := l.Send(ctx, FromDriver{Cmd: cmd, Reply: rc}); err != nil {
		return Snapshot{}, err
	}
	select {
	case r := <-rc:
		return r.Snapshot, r.Err
	case <-l.done:
		return Snapshot{}, ErrClosed
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// State returns the current view.
func (l *Lobby) State(ctx context.Context) (View, error) {
	rc := make(chan View, 1)
	if err := l.Send(ctx, GetState{Reply: rc}); err != nil {
		return View{}, err
	}
	select {
	case v := <-rc:
		return v, nil
	case <-l.done:
		return View{}, ErrClosed
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
}

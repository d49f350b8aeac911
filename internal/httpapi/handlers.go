package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"math/big"
	mrand "math/rand/v2"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/DoyleJ11/bracket-spectator/internal/engine"
	"github.com/DoyleJ11/bracket-spectator/internal/hub"
	"github.com/DoyleJ11/bracket-spectator/internal/lobby"
	"github.com/DoyleJ11/bracket-spectator/internal/roster"
	"github.com/DoyleJ11/bracket-spectator/internal/types"
)

// Defaults fill in whatever a create request leaves out.
type Defaults struct {
	Roster   []string
	PoolSize int
	Hero     string
	// Seed makes shuffles and unwatched results reproducible when non-zero.
	Seed uint64
}

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

func CreateTournament(h *hub.Hub, d Defaults, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CreateTournamentRequest
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, errors.New("bad json"))
				return
			}
		}

		b, err := newBracket(req, d)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		var code string
		for {
			c, err := GenerateCode()
			if err != nil {
				writeError(w, http.StatusInternalServerError, errors.New("failed to generate code"))
				return
			}
			if h.Get(r.Context(), c) == nil {
				code = c
				break
			}
			log.Debug("collision on code, regenerating", zap.String("code", c))
		}

		lb, err := h.Ensure(r.Context(), code, b)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		if lb == nil {
			writeError(w, http.StatusInternalServerError, errors.New("failed to create tournament"))
			return
		}

		writeJSON(w, http.StatusCreated, types.CreateTournamentResponse{Code: code})
	}
}

func newBracket(req types.CreateTournamentRequest, d Defaults) (*engine.Bracket, error) {
	names, pool := req.Participants, req.PoolSize
	if len(names) == 0 {
		names = d.Roster
		if pool == 0 {
			pool = d.PoolSize
		}
	}
	hero := req.Hero
	if hero == "" && len(req.Participants) == 0 {
		hero = d.Hero
	}

	var rng *mrand.Rand
	if d.Seed != 0 {
		rng = mrand.New(mrand.NewPCG(d.Seed, d.Seed))
	} else {
		rng = mrand.New(mrand.NewPCG(mrand.Uint64(), mrand.Uint64()))
	}

	seeded, err := roster.Seed(names, hero, rng)
	if err != nil {
		return nil, err
	}
	return engine.Build(seeded, engine.Options{
		PoolSize: pool,
		Coin:     func() bool { return rng.IntN(2) == 0 },
	})
}

func GetTournament(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lb := h.Get(r.Context(), chi.URLParam(r, "code"))
		if lb == nil {
			writeError(w, http.StatusNotFound, errors.New("tournament not found"))
			return
		}
		view, err := lb.State(r.Context())
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeSnapshot(w, http.StatusOK, view.State)
	}
}

func SubmitResult(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ResultRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.LeftWon == nil {
			writeError(w, http.StatusBadRequest, errors.New("left_won is required"))
			return
		}
		cmd := engine.Command{Type: engine.CmdRightWon}
		if *req.LeftWon {
			cmd.Type = engine.CmdLeftWon
		}
		drive(w, r, h, cmd)
	}
}

func AdvanceRound(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		drive(w, r, h, engine.Command{Type: engine.CmdAdvanceRound})
	}
}

func drive(w http.ResponseWriter, r *http.Request, h *hub.Hub, cmd engine.Command) {
	lb := h.Get(r.Context(), chi.URLParam(r, "code"))
	if lb == nil {
		writeError(w, http.StatusNotFound, errors.New("tournament not found"))
		return
	}

	snap, err := lb.Do(r.Context(), cmd)
	switch {
	case errors.Is(err, engine.ErrInvalidState), errors.Is(err, engine.ErrTournamentCompleted):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, lobby.ErrClosed):
		writeError(w, http.StatusNotFound, err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
	default:
		writeSnapshot(w, http.StatusOK, snap.State)
	}
}

func DeleteTournament(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		removed, err := h.Remove(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		if !removed {
			writeError(w, http.StatusNotFound, errors.New("tournament not found"))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

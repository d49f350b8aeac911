package types

import pub "github.com/DoyleJ11/bracket-spectator/pkg/types"

type CreateTournamentRequest struct {
	Participants []string `json:"participants,omitempty"`
	Hero         string   `json:"hero,omitempty"`
	PoolSize     int      `json:"pool_size,omitempty"`
}

type CreateTournamentResponse struct {
	Code string `json:"code"`
}

type ResultRequest struct {
	LeftWon *bool `json:"left_won"`
}

type ServerMessage struct {
	Type     string        `json:"type"` // "StateSnapshot" | "Error"
	Snapshot *pub.Snapshot `json:"snapshot,omitempty"`
	Error    string        `json:"error,omitempty"`
}

package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/DoyleJ11/bracket-spectator/internal/types"
	pub "github.com/DoyleJ11/bracket-spectator/pkg/types"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSnapshot(w http.ResponseWriter, status int, s pub.Snapshot) {
	writeJSON(w, status, types.ServerMessage{Type: "StateSnapshot", Snapshot: &s})
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, types.ServerMessage{Type: "Error", Error: err.Error()})
}

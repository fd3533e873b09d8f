package gateway

import (
	"encoding/json"
	"net/http"
	"time"
)

type createRoomRequest struct {
	TTLSeconds int `json:"ttl_seconds"`
	MaxMembers int `json:"max_members"`
}

type createRoomResponse struct {
	RoomID string `json:"room_id"`
}

type healthResponse struct {
	Status        string `json:"status"`
	Sessions      int    `json:"sessions"`
	Rooms         int    `json:"rooms"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// handleCreateRoom creates an ownerless room for out-of-band distribution of
// the room identifier.
func (g *Gateway) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}

	ttl := g.opts.RoomTTL
	if req.TTLSeconds > 0 {
		ttl = time.Duration(req.TTLSeconds) * time.Second
	}
	maxMembers := g.opts.RoomMax
	if req.MaxMembers != 0 {
		maxMembers = req.MaxMembers
	}

	id, err := g.rooms.Create("", ttl, maxMembers)
	if err != nil {
		http.Error(w, errorCode(err), http.StatusBadRequest)
		return
	}

	g.log.WithField("room", id).Info("room created")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(createRoomResponse{RoomID: string(id)})
}

func (g *Gateway) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(healthResponse{
		Status:        "ok",
		Sessions:      g.registry.Len(),
		Rooms:         g.rooms.Len(),
		UptimeSeconds: int64(time.Since(g.started).Seconds()),
	})
}

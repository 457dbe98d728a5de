package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/batepapo/group-chat-api/api"
	"github.com/batepapo/group-chat-api/chat"
	"github.com/batepapo/group-chat-api/config"
	"github.com/batepapo/group-chat-api/models"
)

// Participant exported for testing purposes
type Participant struct {
	Manager *chat.Manager
}

// JoinHandler registers a new participant and announces the join to the room
func (p Participant) JoinHandler(w http.ResponseWriter, r *http.Request) {
	var req models.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	participant, err := p.Manager.Join(r.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrValidation):
			config.ErrorStatus("name is required", http.StatusUnprocessableEntity, w, err)
		case errors.Is(err, chat.ErrDuplicateName):
			config.ErrorStatus("name already in use", http.StatusConflict, w, err)
		default:
			config.ErrorStatus("failed to join", http.StatusInternalServerError, w, err)
		}
		return
	}

	b, err := json.Marshal(participant)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// ListParticipantsHandler returns all active participants
func (p Participant) ListParticipantsHandler(w http.ResponseWriter, r *http.Request) {
	dbResp, err := p.Manager.Participants(r.Context())
	if err != nil {
		config.ErrorStatus("failed to get participants", http.StatusInternalServerError, w, err)
		return
	}
	// Because the frontend requires that the data elements exist, if
	// len == 0 then we will just return an empty data object
	if len(dbResp) == 0 {
		dbResp = []models.Participant{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// HeartbeatHandler renews presence for the identity in the User header. A 404
// here means the participant was evicted and must rejoin.
func (p Participant) HeartbeatHandler(w http.ResponseWriter, r *http.Request) {
	name := api.Identity(r.Context())

	if err := p.Manager.Heartbeat(r.Context(), name); err != nil {
		switch {
		case errors.Is(err, chat.ErrNotFound):
			config.ErrorStatus("participant not found, please rejoin", http.StatusNotFound, w, err)
		default:
			config.ErrorStatus("failed to heartbeat", http.StatusInternalServerError, w, err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"response": "ok"}`))
}

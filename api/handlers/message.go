package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/batepapo/group-chat-api/api"
	"github.com/batepapo/group-chat-api/chat"
	"github.com/batepapo/group-chat-api/config"
	"github.com/batepapo/group-chat-api/models"
)

// Message exported for testing purposes
type Message struct {
	Admitter *chat.Admitter
}

// ListMessagesHandler returns the messages visible to the identity in the
// User header, in chronological order. An optional limit query parameter
// keeps only that many of the most recent visible messages.
func (m Message) ListMessagesHandler(w http.ResponseWriter, r *http.Request) {
	identity := api.Identity(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			config.ErrorStatus("limit must be a positive integer", http.StatusUnprocessableEntity, w, err)
			return
		}
		limit = n
	}

	dbResp, err := m.Admitter.Visible(r.Context(), identity, limit)
	if err != nil {
		config.ErrorStatus("failed to get messages", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Message{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SubmitMessageHandler admits a message from the identity in the User header
func (m Message) SubmitMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	sender := api.Identity(r.Context())

	msg, err := m.Admitter.Submit(r.Context(), sender, req.To, req.Text, req.Kind)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrValidation):
			config.ErrorStatus("invalid message", http.StatusUnprocessableEntity, w, err)
		case errors.Is(err, chat.ErrUnknownSender):
			config.ErrorStatus("sender is not in the room, please rejoin", http.StatusUnprocessableEntity, w, err)
		default:
			config.ErrorStatus("failed to submit message", http.StatusInternalServerError, w, err)
		}
		return
	}

	b, err := json.Marshal(msg)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// DeleteMessageHandler removes a message; only its author may do so
func (m Message) DeleteMessageHandler(w http.ResponseWriter, r *http.Request) {
	messageID := mux.Vars(r)["message_id"]
	requester := api.Identity(r.Context())

	if err := m.Admitter.Remove(r.Context(), messageID, requester); err != nil {
		switch {
		case errors.Is(err, chat.ErrNotFound):
			config.ErrorStatus("message not found", http.StatusNotFound, w, err)
		case errors.Is(err, chat.ErrForbidden):
			config.ErrorStatus("only the author may delete a message", http.StatusUnauthorized, w, err)
		default:
			config.ErrorStatus("failed to delete message", http.StatusInternalServerError, w, err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"response": "message deleted"}`))
}

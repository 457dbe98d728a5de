package handlers_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/batepapo/group-chat-api/api"
	"github.com/batepapo/group-chat-api/api/handlers"
	"github.com/batepapo/group-chat-api/chat"
	"github.com/batepapo/group-chat-api/models"
)

func TestMessage_SubmitMessageHandler(t *testing.T) {
	store := &MockStore{}
	store.On("FindParticipant", mock.Anything, "ana").
		Return(&models.Participant{Name: "ana"}, nil)
	store.On("AppendMessage", mock.Anything, mock.Anything).
		Return(models.Message{ID: primitive.NewObjectID(), From: "ana", To: "bob", Text: "hi", Kind: models.KindPrivateMessage}, nil)

	m := handlers.Message{Admitter: chat.NewAdmitter(store)}

	body := bytes.NewBufferString(`{"to": "bob", "text": "hi", "kind": "private-message"}`)
	req, err := http.NewRequest("POST", "/api/v1/messages", body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("User", "ana")

	rr := httptest.NewRecorder()
	handler := api.RequireIdentity(http.HandlerFunc(m.SubmitMessageHandler))
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"from":"ana"`)
}

func TestMessage_SubmitMessageHandlerEmptyText(t *testing.T) {
	store := &MockStore{}

	m := handlers.Message{Admitter: chat.NewAdmitter(store)}

	body := bytes.NewBufferString(`{"to": "all", "text": "", "kind": "message"}`)
	req, err := http.NewRequest("POST", "/api/v1/messages", body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("User", "ana")

	rr := httptest.NewRecorder()
	handler := api.RequireIdentity(http.HandlerFunc(m.SubmitMessageHandler))
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	store.AssertNotCalled(t, "AppendMessage", mock.Anything, mock.Anything)
}

func TestMessage_SubmitMessageHandlerUnknownSender(t *testing.T) {
	store := &MockStore{}
	store.On("FindParticipant", mock.Anything, "ghost").Return(nil, nil)

	m := handlers.Message{Admitter: chat.NewAdmitter(store)}

	body := bytes.NewBufferString(`{"to": "all", "text": "hi", "kind": "message"}`)
	req, err := http.NewRequest("POST", "/api/v1/messages", body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("User", "ghost")

	rr := httptest.NewRecorder()
	handler := api.RequireIdentity(http.HandlerFunc(m.SubmitMessageHandler))
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	store.AssertNotCalled(t, "AppendMessage", mock.Anything, mock.Anything)
}

func TestMessage_ListMessagesHandler(t *testing.T) {
	store := &MockStore{}
	store.On("ListMessages", mock.Anything).Return([]models.Message{
		{From: "ana", To: "all", Text: "hello", Kind: models.KindMessage},
		{From: "ana", To: "bob", Text: "psst", Kind: models.KindPrivateMessage},
	}, nil)

	m := handlers.Message{Admitter: chat.NewAdmitter(store)}

	req, err := http.NewRequest("GET", "/api/v1/messages", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("User", "carol")

	rr := httptest.NewRecorder()
	handler := api.RequireIdentity(http.HandlerFunc(m.ListMessagesHandler))
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "hello")
	assert.NotContains(t, rr.Body.String(), "psst")
}

func TestMessage_ListMessagesHandlerBadLimit(t *testing.T) {
	store := &MockStore{}

	m := handlers.Message{Admitter: chat.NewAdmitter(store)}

	for _, limit := range []string{"abc", "-1", "0"} {
		req, err := http.NewRequest("GET", fmt.Sprintf("/api/v1/messages?limit=%s", limit), nil)
		if err != nil {
			t.Fatal(err)
		}
		req.Header.Set("User", "ana")

		rr := httptest.NewRecorder()
		handler := api.RequireIdentity(http.HandlerFunc(m.ListMessagesHandler))
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	}
	store.AssertNotCalled(t, "ListMessages", mock.Anything)
}

func deleteRequest(t *testing.T, id, user string) *http.Request {
	t.Helper()
	req, err := http.NewRequest("DELETE", "/api/v1/messages/"+id, nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("User", user)
	return mux.SetURLVars(req, map[string]string{"message_id": id})
}

func TestMessage_DeleteMessageHandler(t *testing.T) {
	id := primitive.NewObjectID()
	store := &MockStore{}
	store.On("FindMessage", mock.Anything, id.Hex()).
		Return(&models.Message{ID: id, From: "ana", Text: "oops"}, nil)
	store.On("DeleteMessage", mock.Anything, id.Hex()).Return(true, nil)

	m := handlers.Message{Admitter: chat.NewAdmitter(store)}

	rr := httptest.NewRecorder()
	handler := api.RequireIdentity(http.HandlerFunc(m.DeleteMessageHandler))
	handler.ServeHTTP(rr, deleteRequest(t, id.Hex(), "ana"))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMessage_DeleteMessageHandlerForbidden(t *testing.T) {
	id := primitive.NewObjectID()
	store := &MockStore{}
	store.On("FindMessage", mock.Anything, id.Hex()).
		Return(&models.Message{ID: id, From: "ana", Text: "oops"}, nil)

	m := handlers.Message{Admitter: chat.NewAdmitter(store)}

	rr := httptest.NewRecorder()
	handler := api.RequireIdentity(http.HandlerFunc(m.DeleteMessageHandler))
	handler.ServeHTTP(rr, deleteRequest(t, id.Hex(), "bob"))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	store.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything)
}

func TestMessage_DeleteMessageHandlerNotFound(t *testing.T) {
	id := primitive.NewObjectID()
	store := &MockStore{}
	store.On("FindMessage", mock.Anything, id.Hex()).Return(nil, nil)

	m := handlers.Message{Admitter: chat.NewAdmitter(store)}

	rr := httptest.NewRecorder()
	handler := api.RequireIdentity(http.HandlerFunc(m.DeleteMessageHandler))
	handler.ServeHTTP(rr, deleteRequest(t, id.Hex(), "ana"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

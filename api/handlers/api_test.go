package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var a App

func executeRequest(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	return rr
}

func checkResponseCode(t *testing.T, expected, actual int) {
	if expected != actual {
		t.Errorf("Expected response code %d. Got %d\n", expected, actual)
	}
}

func TestUnknownRoute(t *testing.T) {
	a.Config.RequestTimeout = 10 * time.Second
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/asdf", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusNotFound, response.Code)

}

func TestHealthCheckRoute(t *testing.T) {
	a.Config.RequestTimeout = 10 * time.Second
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/health", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)

	if !strings.Contains(response.Body.String(), "alive") {
		t.Errorf("Expected 'alive' in the reponse. Got '%s'", response.Body.String())
	}
}

func TestApp_MessagesRouteMissingIdentity(t *testing.T) {
	a.Config.RequestTimeout = 10 * time.Second
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/api/v1/messages", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusUnprocessableEntity, response.Code)
}

func TestApp_StatusRouteMissingIdentity(t *testing.T) {
	a.Config.RequestTimeout = 10 * time.Second
	a.Router = a.New()
	req, _ := http.NewRequest("POST", "/api/v1/status", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusUnprocessableEntity, response.Code)
}

func TestApp_MessagesRouteMethodNotAllowed(t *testing.T) {
	a.Config.RequestTimeout = 10 * time.Second
	a.Router = a.New()
	req, _ := http.NewRequest("PUT", "/api/v1/messages", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusMethodNotAllowed, response.Code)
}

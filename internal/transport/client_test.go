package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-chat-console/internal/models"
)

func TestClient_Send(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["user_id"] != "u1" || body["message"] != "hello" {
			t.Errorf("unexpected payload: %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"reply": "hi there"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	reply, err := c.Send(context.Background(), "u1", "hello")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if reply != "hi there" {
		t.Errorf("expected 'hi there', got %q", reply)
	}
}

func TestClient_SendNonSuccessCarriesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("model overloaded"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Send(context.Background(), "u1", "hello")

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
	if terr.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", terr.Status)
	}
	if terr.Body != "model overloaded" {
		t.Errorf("expected body detail, got %q", terr.Body)
	}
}

func TestClient_SendNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // unreachable

	c := NewClient(srv.URL, time.Second)
	_, err := c.Send(context.Background(), "u1", "hello")

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
	if terr.Err == nil {
		t.Error("expected wrapped network error")
	}
}

func TestClient_FetchHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chats/u1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]models.Message{
			{ID: "m1", Role: models.RoleUser, Text: "hi"},
			{ID: "m2", Role: models.RoleAssistant, Text: "hello"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	history, err := c.FetchHistory(context.Background(), "u1")
	if err != nil {
		t.Fatalf("fetch history: %v", err)
	}
	if len(history) != 2 || history[0].Text != "hi" || history[1].Role != models.RoleAssistant {
		t.Errorf("unexpected history: %+v", history)
	}
}

func TestClient_FetchHistoryNonSuccessMeansNoHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	history, err := c.FetchHistory(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("expected no error for non-success status, got %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history, got %+v", history)
	}
}

func TestClient_FetchHistoryNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.FetchHistory(context.Background(), "u1")
	if err == nil {
		t.Fatal("expected error for unreachable endpoint")
	}
}

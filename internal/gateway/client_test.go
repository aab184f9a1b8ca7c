package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, mux *http.ServeMux, timeout time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewWithClient(srv.URL+"/", srv.Client(), timeout, nil)
}

func TestStartSendsSelectionAndDecodesSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start_game", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Fatalf("expected json content type, got %q", r.Header.Get("Content-Type"))
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Fatalf("expected a request id header")
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["game_id"] != "zork1.z5" || body["tone"] != "original" || body["llm_provider"] != "anthropic" {
			t.Fatalf("unexpected start body: %+v", body)
		}
		_, _ = io.WriteString(w, `{"id":"s-1","game_response":"West of House","llm_response":"You stand west of a house."}`)
	})
	client := newTestClient(t, mux, time.Second)

	resp, err := client.Start(context.Background(), StartRequest{GameID: "zork1.z5", Tone: "original", Provider: "anthropic"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if resp.SessionID != "s-1" {
		t.Fatalf("expected session s-1, got %q", resp.SessionID)
	}
	if resp.GameResponse != "West of House" || resp.LLMResponse != "You stand west of a house." {
		t.Fatalf("unexpected start response: %+v", resp)
	}
}

func TestStartWithoutSessionIDIsMalformed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start_game", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"game_response":"hi"}`)
	})
	client := newTestClient(t, mux, time.Second)

	_, err := client.Start(context.Background(), StartRequest{GameID: "905.z5"})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestCommandDecodesBothSides(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user_command", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["game_id"] != "s-1" || body["input"] != "go north" {
			t.Fatalf("unexpected command body: %+v", body)
		}
		_, _ = io.WriteString(w, `{"game_command":"north","game_response":"North of House","input_command":"go north","llm_response":"You wander north."}`)
	})
	client := newTestClient(t, mux, time.Second)

	resp, err := client.Command(context.Background(), "s-1", "go north")
	if err != nil {
		t.Fatalf("command: %v", err)
	}
	if resp.GameCommand != "north" || resp.InputCommand != "go north" {
		t.Fatalf("unexpected echoes: %+v", resp)
	}
	if resp.GameResponse != "North of House" || resp.LLMResponse != "You wander north." {
		t.Fatalf("unexpected responses: %+v", resp)
	}
}

func TestTailLogReturnsSnapshot(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/get_log", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["game_state_id"] != "s-1" {
			t.Fatalf("unexpected tail body: %+v", body)
		}
		_, _ = io.WriteString(w, `{"log":"=== User Input ===\nlook\n"}`)
	})
	client := newTestClient(t, mux, time.Second)

	log, err := client.TailLog(context.Background(), "s-1")
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if !strings.Contains(log, "User Input") {
		t.Fatalf("unexpected log: %q", log)
	}
}

func TestNonSuccessStatusIsStatusError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user_command", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "upstream\n  exploded")
	})
	client := newTestClient(t, mux, time.Second)

	_, err := client.Command(context.Background(), "s-1", "look")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusBadGateway || statusErr.Op != "user_command" {
		t.Fatalf("unexpected status error: %+v", statusErr)
	}
	if statusErr.Body != "upstream exploded" {
		t.Fatalf("expected compacted body, got %q", statusErr.Body)
	}
}

func TestUndecodableBodyIsMalformed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/get_log", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>gateway</html>")
	})
	client := newTestClient(t, mux, time.Second)

	if _, err := client.TailLog(context.Background(), "s-1"); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestCommandWithoutResponseFieldsIsMalformed(t *testing.T) {
	for _, body := range []string{`{}`, `null`, `{"detail":"Internal error"}`, `{"game_response":"North of House"}`} {
		mux := http.NewServeMux()
		mux.HandleFunc("/user_command", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, body)
		})
		client := newTestClient(t, mux, time.Second)

		resp, err := client.Command(context.Background(), "s-1", "go north")
		if !errors.Is(err, ErrMalformedResponse) {
			t.Fatalf("body %s: expected ErrMalformedResponse, got %v", body, err)
		}
		if resp != (CommandResponse{}) {
			t.Fatalf("body %s: expected zero response, got %+v", body, resp)
		}
	}
}

func TestCommandAcceptsEmptyResponseText(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user_command", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"game_command":"z","game_response":"","input_command":"wait","llm_response":""}`)
	})
	client := newTestClient(t, mux, time.Second)

	resp, err := client.Command(context.Background(), "s-1", "wait")
	if err != nil {
		t.Fatalf("command: %v", err)
	}
	if resp.GameCommand != "z" || resp.InputCommand != "wait" {
		t.Fatalf("unexpected echoes: %+v", resp)
	}
}

func TestTailLogWithoutLogIsMalformed(t *testing.T) {
	for _, body := range []string{`{}`, `null`, `{"detail":"Internal error"}`} {
		mux := http.NewServeMux()
		mux.HandleFunc("/get_log", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, body)
		})
		client := newTestClient(t, mux, time.Second)

		if _, err := client.TailLog(context.Background(), "s-1"); !errors.Is(err, ErrMalformedResponse) {
			t.Fatalf("body %s: expected ErrMalformedResponse, got %v", body, err)
		}
	}
}

func TestRequestTimeoutIsTransportError(t *testing.T) {
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/user_command", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	client := newTestClient(t, mux, 50*time.Millisecond)
	defer close(release)

	_, err := client.Command(context.Background(), "s-1", "wait")
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestWarmIgnoresBody(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/warm_inference", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, "null")
	})
	client := newTestClient(t, mux, time.Second)

	if err := client.Warm(context.Background()); err != nil {
		t.Fatalf("warm: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one warm call, got %d", calls.Load())
	}
}

func TestBaseURLTrimsTrailingSlash(t *testing.T) {
	client := New("https://example.modal.run/", 0, nil)
	if client.BaseURL() != "https://example.modal.run" {
		t.Fatalf("unexpected base url %q", client.BaseURL())
	}
}

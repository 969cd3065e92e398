package connection

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewHTTPClientAddsScheme(t *testing.T) {
	cases := []struct {
		server string
		want   string
	}{
		{"localhost:6080", "http://localhost:6080"},
		{"http://localhost:6080", "http://localhost:6080"},
		{"https://gate.example.com/", "https://gate.example.com"},
	}

	for _, tc := range cases {
		if got := NewHTTPClient(tc.server).BaseURL(); got != tc.want {
			t.Errorf("NewHTTPClient(%q).BaseURL() = %q, want %q", tc.server, got, tc.want)
		}
	}
}

func TestParseResponseUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); !strings.HasPrefix(got, "transgate-cli/") {
			t.Errorf("User-Agent = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":"OK","message":"Success","request_id":"req-1","data":{"identifier":"user-1","plan":"pro"}}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	resp, err := client.Get(context.Background(), "/sessions/user-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	var out struct {
		Identifier string `json:"identifier"`
		Plan       string `json:"plan"`
	}
	if err := ParseResponse(resp, &out); err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}
	if out.Identifier != "user-1" || out.Plan != "pro" {
		t.Errorf("unexpected data: %+v", out)
	}
}

func TestParseResponseErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"TG-SESS-4040","message":"session not found","request_id":"req-2"}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	resp, err := client.Get(context.Background(), "/sessions/ghost")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	err = ParseResponse(resp, nil)
	if err == nil {
		t.Fatal("ParseResponse() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "TG-SESS-4040") {
		t.Errorf("error = %v, want code TG-SESS-4040", err)
	}
}

func TestParseResponseNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream broke"))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	resp, err := client.Post(context.Background(), "/translate", map[string]string{"text": "x"})
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}

	err = ParseResponse(resp, nil)
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Errorf("error = %v, want status 502 mention", err)
	}
}

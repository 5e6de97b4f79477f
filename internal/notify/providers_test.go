package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewProviderSelection(t *testing.T) {
	if _, ok := NewProvider("", nil).(*LogProvider); !ok {
		t.Fatalf("expected log provider without a webhook URL")
	}
	if _, ok := NewProvider("http://gateway.local/hook", nil).(*WebhookProvider); !ok {
		t.Fatalf("expected webhook provider with a URL")
	}
}

func TestWebhookProviderSend(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected JSON content type, got %q", r.Header.Get("Content-Type"))
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewWebhookProvider(srv.URL, nil)
	if err := p.Send(context.Background(), Group("staff-chat"), "shift taken"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	want := map[string]string{"kind": "group", "recipient": "staff-chat", "message": "shift taken"}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("payload %s: expected %q, got %q", k, v, got[k])
		}
	}
}

func TestWebhookProviderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewWebhookProvider(srv.URL, nil)
	if err := p.Send(context.Background(), Phone("555-0101"), "hello"); err == nil {
		t.Fatalf("expected error on gateway failure")
	}
}

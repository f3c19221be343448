package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeNotifier struct {
	name  string
	err   error
	calls int
}

func (f *fakeNotifier) Name() string { return f.name }
func (f *fakeNotifier) Send(context.Context, string, string) error {
	f.calls++
	return f.err
}

func TestMulti_AttemptsAllChannels(t *testing.T) {
	a := &fakeNotifier{name: "a", err: errors.New("boom")}
	b := &fakeNotifier{name: "b"}
	m := &Multi{Notifiers: []Notifier{a, b}}

	err := m.Send(context.Background(), "title", "body")
	if err == nil {
		t.Fatal("expected error surfaced from failing channel")
	}
	if a.calls != 1 || b.calls != 1 {
		t.Fatalf("expected both channels attempted, got a=%d b=%d", a.calls, b.calls)
	}
}

func TestTelegram_Send(t *testing.T) {
	var gotPath, gotChatID, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = r.ParseForm()
		gotChatID = r.PostForm.Get("chat_id")
		gotText = r.PostForm.Get("text")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	}))
	defer srv.Close()

	tg := &Telegram{Token: "123:abc", ChatID: "42", APIBase: srv.URL}
	if err := tg.Send(context.Background(), "report", "all good"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if gotPath != "/bot123:abc/sendMessage" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotChatID != "42" {
		t.Errorf("unexpected chat_id %q", gotChatID)
	}
	if gotText != "report\n\nall good" {
		t.Errorf("unexpected text %q", gotText)
	}
}

func TestTelegram_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(400)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	tg := &Telegram{Token: "t", ChatID: "x", APIBase: srv.URL}
	err := tg.Send(context.Background(), "report", "body")
	if err == nil {
		t.Fatal("expected error for ok=false response")
	}
}

func TestWebhook_Send(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(204)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL)
	if err := wh.Send(context.Background(), "report", "body text"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if got["title"] != "report" || got["body"] != "body text" {
		t.Fatalf("unexpected payload: %v", got)
	}
}

func TestWebhook_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer srv.Close()

	if err := NewWebhook(srv.URL).Send(context.Background(), "t", "b"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestDispatch_NilNotifierFallsBack(t *testing.T) {
	// Must not panic and must not error; the report lands in the log.
	Dispatch(context.Background(), nil, "title", "body")
}

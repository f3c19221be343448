package checkin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
)

func TestPerform_AlreadyCheckedIn_NoPost(t *testing.T) {
	var posts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			posts++
			w.WriteHeader(500)
			return
		}
		_, _ = w.Write([]byte(`<html><body>
			Already checked in today!
			<div class="reward-amount">0.07 元</div>
		</body></html>`))
	}))
	defer srv.Close()

	o := Orchestrator{Client: resty.New(), CheckinURL: srv.URL}
	msg, err := o.Perform(context.Background(), "account1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if posts != 0 {
		t.Fatalf("expected no POST when already checked in, got %d", posts)
	}
	if !strings.Contains(msg, "0.07 元") {
		t.Fatalf("expected reward in message, got %q", msg)
	}
}

func TestPerform_AlreadyCheckedIn_NoReward(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("今日已签到"))
	}))
	defer srv.Close()

	o := Orchestrator{Client: resty.New(), CheckinURL: srv.URL}
	msg, err := o.Perform(context.Background(), "account1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !strings.Contains(msg, "no reward info") {
		t.Fatalf("expected extraction-failure note, got %q", msg)
	}
}

func TestPerform_CheckinSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err != nil || r.PostForm.Get("checkin") != "1" {
				w.WriteHeader(400)
				return
			}
			_, _ = w.Write([]byte(`Check-in successful! <div class="reward-amount">1.5 元</div>`))
			return
		}
		_, _ = w.Write([]byte("<html><body>Click the button to check in</body></html>"))
	}))
	defer srv.Close()

	o := Orchestrator{Client: resty.New(), CheckinURL: srv.URL}
	msg, err := o.Perform(context.Background(), "account1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !strings.Contains(msg, "1.5 元") {
		t.Fatalf("expected reward from POST body in message, got %q", msg)
	}
}

func TestPerform_RewardReextractedFromPostBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_, _ = w.Write([]byte(`签到成功 <div class="reward-amount">2.0 元</div>`))
			return
		}
		// Pre-action page shows a stale amount; it must not win.
		_, _ = w.Write([]byte(`<div class="reward-amount">9.9 元</div>`))
	}))
	defer srv.Close()

	o := Orchestrator{Client: resty.New(), CheckinURL: srv.URL}
	msg, err := o.Perform(context.Background(), "account1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !strings.Contains(msg, "2.0 元") {
		t.Fatalf("expected POST-body reward, got %q", msg)
	}
}

func TestPerform_NoSuccessMarker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_, _ = w.Write([]byte("<html><body>something went wrong</body></html>"))
			return
		}
		_, _ = w.Write([]byte("please check in"))
	}))
	defer srv.Close()

	o := Orchestrator{Client: resty.New(), CheckinURL: srv.URL}
	_, err := o.Perform(context.Background(), "account1")
	if !errors.Is(err, ErrNoSuccessMarker) {
		t.Fatalf("expected ErrNoSuccessMarker, got %v", err)
	}
}

func TestPerform_PageFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(503)
	}))
	defer srv.Close()

	o := Orchestrator{Client: resty.New(), CheckinURL: srv.URL}
	_, err := o.Perform(context.Background(), "account1")
	var se *StatusError
	if !errors.As(err, &se) || se.Code != 503 {
		t.Fatalf("expected StatusError 503, got %v", err)
	}
}

func TestPerform_PostStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(429)
			return
		}
		_, _ = w.Write([]byte("please check in"))
	}))
	defer srv.Close()

	o := Orchestrator{Client: resty.New(), CheckinURL: srv.URL}
	_, err := o.Perform(context.Background(), "account1")
	var se *StatusError
	if !errors.As(err, &se) || se.Code != 429 || !strings.Contains(se.Error(), "429") {
		t.Fatalf("expected StatusError 429, got %v", err)
	}
}

func TestPerform_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	o := Orchestrator{Client: resty.New(), CheckinURL: srv.URL}
	if _, err := o.Perform(context.Background(), "account1"); err == nil {
		t.Fatal("expected transport error")
	}
}

package quotes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nhooyr.io/websocket"
)

// quoteServer accepts one connection, checks the subscribe message, and
// then feeds the given quotes.
func quoteServer(t *testing.T, wantCode string, feed []Quote) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			t.Errorf("accept: %v", err)
			return
		}
		defer conn.CloseNow()

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		_, data, err := conn.Read(ctx)
		if err != nil {
			t.Errorf("read subscribe: %v", err)
			return
		}
		var sub subscribeMsg
		if err := json.Unmarshal(data, &sub); err != nil {
			t.Errorf("decode subscribe: %v", err)
			return
		}
		if sub.Action != "subscribe" || sub.Code != wantCode {
			t.Errorf("subscribe = %+v, want subscribe/%s", sub, wantCode)
		}

		for _, q := range feed {
			raw, _ := json.Marshal(q)
			if err := conn.Write(ctx, websocket.MessageText, raw); err != nil {
				return
			}
		}
		// Hold the connection open until the client goes away.
		conn.Read(ctx)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestDialSubscribesAndReceives(t *testing.T) {
	url := quoteServer(t, "005930", []Quote{
		{Code: "005930", Price: 71000, ChangeRate: 1.25, At: "2026-03-01T12:00:00Z"},
	})

	s, err := Dial(context.Background(), url, "005930")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer s.Close()

	select {
	case q := <-s.Quotes():
		if q.Code != "005930" || q.Price != 71000 {
			t.Errorf("quote = %+v", q)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no quote received")
	}
}

func TestCloseEndsQuoteChannel(t *testing.T) {
	url := quoteServer(t, "005930", nil)

	s, err := Dial(context.Background(), url, "005930")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}

	s.Close()
	// Safe to call again.
	s.Close()

	select {
	case _, ok := <-s.Quotes():
		if ok {
			t.Error("received a quote after Close")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("quote channel never closed")
	}
}

func TestDialDeadEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	srv.Close()

	if _, err := Dial(context.Background(), url, "005930"); err == nil {
		t.Fatal("Dial to a dead endpoint succeeded")
	}
}

func TestMalformedTicksAreSkipped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.CloseNow()

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		conn.Read(ctx) // subscribe

		conn.Write(ctx, websocket.MessageText, []byte("{garbage"))
		raw, _ := json.Marshal(Quote{Code: "X", Price: 10})
		conn.Write(ctx, websocket.MessageText, raw)
		conn.Read(ctx)
	}))
	t.Cleanup(srv.Close)

	s, err := Dial(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), "X")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer s.Close()

	select {
	case q := <-s.Quotes():
		// The garbage tick was dropped, the good one came through.
		if q.Code != "X" {
			t.Errorf("quote = %+v", q)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("stream stalled on a malformed tick")
	}
}

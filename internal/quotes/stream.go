// Package quotes streams live product prices over a WebSocket. The
// stream is strictly advisory: the stock-detail screen falls back to
// the cached product snapshot when the feed is unavailable, so every
// failure here is logged and swallowed.
package quotes

import (
	"context"
	"encoding/json"
	"time"

	"nhooyr.io/websocket"

	"github.com/Team-GIVY/givy-cli/internal/applog"
)

// Quote is one price tick for a product code.
type Quote struct {
	Code       string  `json:"code"`
	Price      float64 `json:"price"`
	ChangeRate float64 `json:"changeRate"`
	At         string  `json:"at"`
}

type subscribeMsg struct {
	Action string `json:"action"`
	Code   string `json:"code"`
}

// Stream is a live subscription for a single product code. There is no
// reconnect loop: the screen that opened the stream closes it on leave
// and a broken feed simply stops ticking.
type Stream struct {
	conn   *websocket.Conn
	cancel context.CancelFunc
	quotes chan Quote
}

// Dial connects, subscribes to the product code, and starts the read
// loop. The dial itself is bounded so a dead endpoint cannot stall a
// screen transition.
func Dial(ctx context.Context, url, code string) (*Stream, error) {
	dialCtx, cancelDial := context.WithTimeout(ctx, 5*time.Second)
	defer cancelDial()

	conn, _, err := websocket.Dial(dialCtx, url, nil)
	if err != nil {
		return nil, err
	}

	streamCtx, cancel := context.WithCancel(ctx)

	sub, _ := json.Marshal(subscribeMsg{Action: "subscribe", Code: code})
	if err := conn.Write(streamCtx, websocket.MessageText, sub); err != nil {
		cancel()
		conn.CloseNow()
		return nil, err
	}

	s := &Stream{
		conn:   conn,
		cancel: cancel,
		quotes: make(chan Quote, 16),
	}
	applog.Info("quotes.connected", "code", code)
	go s.readLoop(streamCtx, code)
	return s, nil
}

// Quotes returns the tick channel. It is closed when the stream ends.
func (s *Stream) Quotes() <-chan Quote {
	return s.quotes
}

// Close tears the stream down. Safe to call more than once.
func (s *Stream) Close() {
	s.cancel()
	s.conn.CloseNow()
}

func (s *Stream) readLoop(ctx context.Context, code string) {
	defer close(s.quotes)
	defer s.conn.CloseNow()

	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			if ctx.Err() == nil {
				applog.Error("quotes.read", err, "code", code)
			}
			return
		}
		var q Quote
		if err := json.Unmarshal(data, &q); err != nil {
			applog.Error("quotes.parse", err)
			continue
		}
		select {
		case s.quotes <- q:
		default:
			// Slow consumer: drop the tick, a newer one is coming.
		}
	}
}

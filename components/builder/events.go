// components/builder/events.go
//
// Websocket change feed.
//
// Context
// -------
// A connected client first receives {"kind":"snapshot","state":{…}} and
// then one JSON message per editor.Event.  The feed is read-only; edits go
// through the REST routes.  The socket closes when the client disconnects,
// when it falls more than sendBuffer events behind, or when the server
// shuts down.  When the session leaves the cache (site deleted, evicted)
// the socket closes with 1001 going away and the client reconnects to the
// new session.
package builder

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yanizio/sitebuilder/internal/editor"
)

const (
	sendBuffer = 64
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 16384,
	CheckOrigin:     sameOrigin,
}

// sameOrigin accepts requests without an Origin header (non-browser
// clients) and browser requests whose Origin host matches Host.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}

type snapshotMessage struct {
	Kind  string          `json:"kind"`
	State editor.Snapshot `json:"state"`
}

func (c *Component) events(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.log.Debugw("websocket upgrade failed", "err", err)
		return // Upgrade already replied
	}
	defer conn.Close()

	// The server's write timeout was armed before the hijack.
	_ = conn.NetConn().SetDeadline(time.Time{})

	send := make(chan any, sendBuffer)
	overflow, gone := make(chan struct{}), make(chan struct{})
	var overflowOnce, goneOnce sync.Once
	push := func(msg any) {
		select {
		case send <- msg:
		default:
			overflowOnce.Do(func() { close(overflow) })
		}
	}
	unsubscribe := s.Subscribe(func(ev editor.Event) {
		if ev.Kind == editor.EventClosed {
			goneOnce.Do(func() { close(gone) })
			return
		}
		push(ev)
	})
	defer unsubscribe()
	if cur, ok := c.sessions.Peek(s.Key()); !ok || cur != s {
		goneOnce.Do(func() { close(gone) }) // evicted before Subscribe
	}
	push(snapshotMessage{Kind: "snapshot", State: s.State()})

	// Reader: only pongs and close frames are expected.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case msg := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-overflow:
			c.log.Warnw("event feed overflow, closing", "site", s.Key().SiteID)
			closeFeed(conn, websocket.CloseTryAgainLater, "too slow")
			return
		case <-gone:
			closeFeed(conn, websocket.CloseGoingAway, "session closed")
			return
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func closeFeed(conn *websocket.Conn, code int, reason string) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
}

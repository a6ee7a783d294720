package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/hireboard/api/internal/events"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// WSHandler pushes pipeline-changed events to admin dashboards. The
// event only signals "refetch the board"; the HTTP snapshot stays the
// single source of truth.
type WSHandler struct {
	redis    *redis.Client
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(rdb *redis.Client, log *logrus.Logger) *WSHandler {
	return &WSHandler{
		redis: rdb,
		log:   log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeText(b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (h *WSHandler) BoardFeed(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote the response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub := h.redis.Subscribe(ctx, events.ChannelBoard)
	defer sub.Close()

	// Redis -> WS
	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if err := wc.writeText([]byte(msg.Payload)); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	// Read loop only detects the peer going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

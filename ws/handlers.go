package ws

import (
	"net/http"
	"time"

	"github.com/c14220110/poliklinik-dashboard/internal/common/middlewares"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Dashboard dilayani dari origin lain di belakang reverse proxy.
		return true
	},
}

// ServeWS must sit behind JWTMiddleware; the caller's role decides which
// events the connection receives.
func ServeWS(hub *Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middlewares.ClaimsFrom(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Token tidak ditemukan")
		}
		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			// Upgrade sudah menulis response error ke client.
			hub.log.Warn().Err(err).Msg("ws upgrade failed")
			return nil
		}
		client := &Client{Conn: conn, Send: make(chan []byte, 256), Role: claims.Role}
		select {
		case hub.register <- client:
		case <-hub.done:
			hub.log.Warn().Msg("ws connection refused: hub stopped")
			conn.Close()
			return nil
		}

		// Jalankan goroutine untuk membaca dan menulis pesan
		go client.writePump()
		go client.readPump(hub)
		return nil
	}
}

// readPump hanya menjaga koneksi tetap hidup; pesan dari client diabaikan.
func (c *Client) readPump(hub *Hub) {
	defer func() {
		select {
		case hub.unregister <- c:
		case <-hub.done:
		}
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(512)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

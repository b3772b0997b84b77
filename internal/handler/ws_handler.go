/*
Package handler provides the HTTP handler function for WebSocket connection
upgrading and initialization.

This file contains HandleWebSocket, which rate limits the upgrade, switches
the HTTP connection to WebSocket, and starts the client's read and write
pumps. Identity is not required here: visitors connect anonymously and may
authenticate later over the socket itself.
*/
package handler

import (
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"pawhaven/internal/app/chat"
	"pawhaven/internal/pkg/errs"
	"pawhaven/internal/pkg/limiter"
	"pawhaven/internal/pkg/logx"
	"pawhaven/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc to process support chat
// connection requests.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := chat.NewClient(deps.Hub, conn)

		go client.WritePump()

		deps.Hub.Register(client)

		logx.Info("Support chat connection established", "remote_ip", ip)

		client.ReadPump()
	}
}

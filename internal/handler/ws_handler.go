package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"footchat/internal/app/chat"
	"footchat/internal/pkg/errs"
	"footchat/internal/pkg/limiter"
	"footchat/internal/pkg/logx"
	"footchat/internal/pkg/resp"
)

// HandleWebSocket upgrades the connection and runs the client pumps. The
// upgrade itself is unauthenticated: every join/leave/send event carries its
// own token and is authorized individually, so a connection holds no
// privilege beyond what its next event can prove.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := limiter.ClientIP(r)

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := chat.NewClient(deps.Gateway, conn, deps.Authorizer, deps.Messages)

		deps.Gateway.Register(client)

		go client.WritePump()

		client.ReadPump()
	}
}

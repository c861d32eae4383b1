package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"footchat/internal/pkg/auth/jwt"
	"footchat/internal/pkg/limiter"
	"footchat/internal/pkg/logx"
	"footchat/internal/pkg/resp"
)

const (
	// RegisterRate limits account creation per IP.
	RegisterRate  = 0.05
	RegisterBurst = 2

	// ConnectRate limits WebSocket upgrades per IP.
	ConnectRate  = 0.2
	ConnectBurst = 5
)

// Router builds the HTTP routing table: CORS, request logging, rate limits,
// the REST API under /api, and the WebSocket endpoint at /ws.
func Router(deps *AppDeps) http.Handler {
	registerLimiter := limiter.NewIPRateLimiter(rate.Limit(RegisterRate), RegisterBurst)
	connectLimiter := limiter.NewIPRateLimiter(rate.Limit(ConnectRate), ConnectBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]string{
			"status":  "ok",
			"service": "footchat-server",
		})
	})

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(auth chi.Router) {
			auth.With(registerLimiter.Middleware).Post("/register", HandleRegister(deps))
			auth.Post("/login", HandleLogin(deps))
			auth.Post("/refresh", HandleRefresh(deps))
		})

		api.Group(func(priv chi.Router) {
			priv.Use(jwt.Authenticator(deps.Config.JWTSecret))
			priv.Use(RequireUser(deps))

			priv.Route("/communities", func(communities chi.Router) {
				communities.Get("/", HandleListCommunities(deps))
				communities.Post("/", HandleCreateCommunity(deps))
				communities.Get("/mine", HandleMyCommunities(deps))
				communities.Get("/{id}", HandleGetCommunity(deps))
				communities.Post("/{id}/join", HandleJoinCommunity(deps))
				communities.Post("/{id}/leave", HandleLeaveCommunity(deps))
				communities.Get("/{id}/messages", HandleListMessages(deps))
				communities.Post("/{id}/messages", HandleSendMessage(deps))
			})

			priv.Delete("/messages/{id}", HandleDeleteMessage(deps))

			priv.Route("/user", func(user chi.Router) {
				user.Get("/profile", HandleGetProfile(deps))
				user.Post("/avatar", HandleUpdateAvatar(deps))
				user.Post("/avatar/presign", HandlePresignAvatarURL(deps))
				user.Get("/avatar/download", HandleAvatarDownloadURL(deps))
			})
		})
	})

	r.Get("/ws", HandleWebSocket(wsUpgrader, connectLimiter, deps))

	return r
}
